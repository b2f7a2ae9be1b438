package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"syllabus-admin/internal/domain"
)

// NewMCQsCmd groups the multiple-choice question operations.
func NewMCQsCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcqs",
		Short: "View and edit a chapter's multiple-choice questions",
	}
	cmd.AddCommand(newMCQsListCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newMCQsPutCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newMCQsEditCmd(configPath, baseURL, token, timeout))
	cmd.AddCommand(newMCQsSeedCmd(configPath, baseURL, token, timeout))
	return cmd
}

func newMCQsListCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <chapter-id>",
		Short: "List the questions of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCQsList(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *token, *timeout, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw records as JSON")
	return cmd
}

func newMCQsPutCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "put <chapter-id>",
		Short: "Submit a batch of questions from a JSON file",
		Long: "Submit a batch of questions for one chapter. Records without an id " +
			"are created, records with one update the matching question.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCQsPut(cmd, *configPath, *baseURL, *token, *timeout, args[0], file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "questions JSON array, - for stdin")
	return cmd
}

func newMCQsEditCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "edit <chapter-id> <mcq-id>",
		Short: "Rewrite one existing question from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCQsEdit(cmd, *configPath, *baseURL, *token, *timeout, args[0], args[1], file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "question JSON object, - for stdin")
	return cmd
}

func newMCQsSeedCmd(configPath, baseURL, token, timeout *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <chapter-id>",
		Short: "Create the demonstration question pair for a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCQsSeed(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *token, *timeout, args[0])
		},
	}
}

func runMCQsList(ctx context.Context, out io.Writer, configPath, baseURL, token, timeout, arg string, asJSON bool) error {
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
	mcqs, err := service.ListMCQs(ctx, session, chapterID)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, mcqs)
	}
	if len(mcqs) == 0 {
		fmt.Fprintf(out, "No questions for chapter %d. Add some with 'mcqs put' or 'mcqs seed'.\n", chapterID)
		return nil
	}
	for i, mcq := range mcqs {
		printMCQ(out, i+1, mcq)
	}
	return nil
}

func runMCQsPut(cmd *cobra.Command, configPath, baseURL, token, timeout, arg, file string) error {
	chapterID, err := parseID(arg, "chapter id")
	if err != nil {
		return err
	}
	var submissions []domain.MCQSubmission
	if err := readJSON(cmd, file, &submissions); err != nil {
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
	message, err := service.UpsertMCQs(cmd.Context(), session, chapterID, submissions)
	if err != nil {
		return err
	}
	if message == "" {
		message = fmt.Sprintf("%d questions saved", len(submissions))
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func runMCQsEdit(cmd *cobra.Command, configPath, baseURL, token, timeout, chapterArg, mcqArg, file string) error {
	chapterID, err := parseID(chapterArg, "chapter id")
	if err != nil {
		return err
	}
	mcqID, err := parseID(mcqArg, "question id")
	if err != nil {
		return err
	}
	var submission domain.MCQSubmission
	if err := readJSON(cmd, file, &submission); err != nil {
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
	message, err := service.UpdateMCQ(cmd.Context(), session, chapterID, mcqID, submission)
	if err != nil {
		return err
	}
	if message == "" {
		message = fmt.Sprintf("Question %d updated", mcqID)
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func runMCQsSeed(ctx context.Context, out io.Writer, configPath, baseURL, token, timeout, arg string) error {
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
	message, err := service.SeedSampleMCQs(ctx, session, chapterID)
	if err != nil {
		return err
	}
	if message == "" {
		message = fmt.Sprintf("Seeded sample questions for chapter %d", chapterID)
	}
	fmt.Fprintln(out, message)
	return nil
}

func printMCQ(out io.Writer, position int, mcq domain.MCQ) {
	fmt.Fprintf(out, "%d. %s (id %d)\n", position, mcq.Question, mcq.ID)
	for i, option := range mcq.Options {
		marker := ""
		if option == mcq.CorrectAnswer {
			marker = "  (correct)"
		}
		fmt.Fprintf(out, "   %d) %s%s\n", i+1, option, marker)
	}
	if mcq.Explanation != "" {
		fmt.Fprintf(out, "   Explanation: %s\n", mcq.Explanation)
	}
	if !mcq.CreatedAt.IsZero() {
		fmt.Fprintf(out, "   Created: %s\n", mcq.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)
}
