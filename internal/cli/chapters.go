package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"syllabus-admin/internal/domain"
)

// NewChaptersCmd groups the chapter operations.
func NewChaptersCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "View and edit syllabus chapters",
	}
	cmd.AddCommand(newChaptersListCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newChaptersGetCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newChaptersPutCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newChaptersExportCmd(configPath, baseURL, token, timeout))
	return cmd
}

func newChaptersListCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all chapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChaptersList(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *token, *timeout)
		},
	}
}

func newChaptersGetCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <chapter-id>",
		Short: "Show one chapter in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChaptersGet(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *token, *timeout, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record as JSON")
	return cmd
}

func newChaptersPutCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "put <chapter-id>",
		Short: "Create or update a chapter from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChaptersPut(cmd, *configPath, *baseURL, *token, *timeout, args[0], file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "chapter content JSON, - for stdin")
	return cmd
}

func newChaptersExportCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every chapter with its questions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChaptersExport(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *token, *timeout, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "write the export here instead of stdout")
	return cmd
}

func runChaptersList(ctx context.Context, out io.Writer, configPath, baseURL, token, timeout string) error {
	service, err := buildService(configPath, baseURL, timeout)
	if err != nil {
		return err
	}
	session, err := resolveSession(token)
	if err != nil {
		return err
	}
	chapters, err := service.ListChapters(ctx, session)
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		fmt.Fprintln(out, "No chapters found. Create one with 'chapters put'.")
		return nil
	}
	for _, chapter := range chapters {
		created := ""
		if !chapter.CreatedAt.IsZero() {
			created = chapter.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%4d  %-40s  %s\n", chapter.ChapterID, chapter.ChapterTitle, created)
	}
	return nil
}

func runChaptersGet(ctx context.Context, out io.Writer, configPath, baseURL, token, timeout, arg string, asJSON bool) error {
	chapterID, err := parseID(arg, "chapter id")
	if err != nil {
		return err
	}
	service, err := buildService(configPath, baseURL, timeout)
	if err != nil {
		return err
	}
	session, err := resolveSession(token)
	if err != nil {
		return err
	}
	chapter, err := service.GetChapter(ctx, session, chapterID)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, chapter)
	}
	printChapter(out, chapter)
	return nil
}

func runChaptersPut(cmd *cobra.Command, configPath, baseURL, token, timeout, arg, file string) error {
	chapterID, err := parseID(arg, "chapter id")
	if err != nil {
		return err
	}
	var content domain.ChapterContent
	if err := readJSON(cmd, file, &content); err != nil {
		return err
	}
	service, err := buildService(configPath, baseURL, timeout)
	if err != nil {
		return err
	}
	session, err := resolveSession(token)
	if err != nil {
		return err
	}
	message, err := service.UpsertChapter(cmd.Context(), session, chapterID, content)
	if err != nil {
		return err
	}
	if message == "" {
		message = fmt.Sprintf("Chapter %d saved", chapterID)
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func runChaptersExport(ctx context.Context, out io.Writer, configPath, baseURL, token, timeout, file string) error {
	service, err := buildService(configPath, baseURL, timeout)
	if err != nil {
		return err
	}
	session, err := resolveSession(token)
	if err != nil {
		return err
	}
	bundles, err := service.ExportSyllabus(ctx, session)
	if err != nil {
		return err
	}
	if file == "" {
		return printJSON(out, bundles)
	}
	data, err := json.MarshalIndent(bundles, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, append(data, '\n'), 0o644); err != nil {
		return err
	}
	questions := 0
	for _, bundle := range bundles {
		questions += len(bundle.MCQs)
	}
	log.Printf("exported %d chapters (%d questions) to %s", len(bundles), questions, file)
	return nil
}

func printChapter(out io.Writer, chapter domain.Chapter) {
	fmt.Fprintf(out, "Chapter %d: %s\n", chapter.ChapterID, chapter.ChapterTitle)
	if !chapter.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Created: %s\n", chapter.CreatedAt.Format("2006-01-02 15:04"))
	}
	printSection(out, "Summary", chapter.Summary)
	printSection(out, "Chapter text", chapter.ChapterText)
	printList(out, "Important things", chapter.ImportantThings)
	printList(out, "Key learnings", chapter.KeyLearnings)
	printList(out, "Exercises & activities", chapter.ExercisesActivities)
	printList(out, "Quotes", chapter.Quotes)
}

func printSection(out io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(out, "\n%s:\n%s\n", title, body)
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
