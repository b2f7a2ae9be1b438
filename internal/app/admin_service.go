package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"syllabus-admin/internal/domain"
)

// SyllabusAPI is the slice of the remote service the admin use cases need.
// internal/infra/syllabus implements it over HTTP, internal/infra/memory
// in memory for tests.
type SyllabusAPI interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	ListChapters(ctx context.Context, session domain.Session) ([]domain.Chapter, error)
	GetChapter(ctx context.Context, session domain.Session, chapterID int) (domain.Chapter, error)
	UpsertChapter(ctx context.Context, session domain.Session, chapterID int, content domain.ChapterContent) (string, error)
	ListMCQs(ctx context.Context, session domain.Session, chapterID int) ([]domain.MCQ, error)
	UpsertMCQs(ctx context.Context, session domain.Session, chapterID int, submissions []domain.MCQSubmission) (string, error)
}

// exportConcurrency bounds parallel MCQ fetches during a syllabus export.
const exportConcurrency = 4

// AdminService contains the admin use cases. It owns the pre-submission
// checks the server does not perform and otherwise passes operations
// through to the API.
type AdminService struct {
	api SyllabusAPI
}

func NewAdminService(api SyllabusAPI) *AdminService {
	return &AdminService{api: api}
}

// Login checks that both fields are present before going to the network.
// The server has the final word on the credentials themselves.
func (s *AdminService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	return s.api.Login(ctx, email, password)
}

// ListChapters returns every chapter of the syllabus.
func (s *AdminService) ListChapters(ctx context.Context, session domain.Session) ([]domain.Chapter, error) {
	return s.api.ListChapters(ctx, session)
}

// GetChapter returns one chapter by id.
func (s *AdminService) GetChapter(ctx context.Context, session domain.Session, chapterID int) (domain.Chapter, error) {
	return s.api.GetChapter(ctx, session, chapterID)
}

// UpsertChapter writes a chapter after checking it has a usable identity
// and a title. The id is caller-supplied: writing to a new id creates the
// chapter.
func (s *AdminService) UpsertChapter(ctx context.Context, session domain.Session, chapterID int, content domain.ChapterContent) (string, error) {
	if chapterID < 1 {
		return "", fmt.Errorf("%w: chapter id must be a positive number", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(content.ChapterTitle) == "" {
		return "", fmt.Errorf("%w: chapter title is required", domain.ErrInvalidInput)
	}
	return s.api.UpsertChapter(ctx, session, chapterID, content)
}

// ListMCQs returns the questions of one chapter.
func (s *AdminService) ListMCQs(ctx context.Context, session domain.Session, chapterID int) ([]domain.MCQ, error) {
	return s.api.ListMCQs(ctx, session, chapterID)
}

// UpsertMCQs submits a batch of questions for one chapter. Every record
// must pass the form checks; a single bad record rejects the whole batch
// before anything is sent.
func (s *AdminService) UpsertMCQs(ctx context.Context, session domain.Session, chapterID int, submissions []domain.MCQSubmission) (string, error) {
	if len(submissions) == 0 {
		return "", fmt.Errorf("%w: no questions to submit", domain.ErrInvalidInput)
	}
	for i, sub := range submissions {
		if err := validateMCQ(sub); err != nil {
			return "", fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return s.api.UpsertMCQs(ctx, session, chapterID, submissions)
}

// UpdateMCQ rewrites a single existing question. The record is forced onto
// the given id and shipped as a one-element batch, the shape the bulk
// endpoint expects.
func (s *AdminService) UpdateMCQ(ctx context.Context, session domain.Session, chapterID, mcqID int, submission domain.MCQSubmission) (string, error) {
	if mcqID == 0 {
		return "", fmt.Errorf("%w: an existing question id is required", domain.ErrInvalidInput)
	}
	submission.ID = mcqID
	if err := validateMCQ(submission); err != nil {
		return "", err
	}
	return s.api.UpsertMCQs(ctx, session, chapterID, []domain.MCQSubmission{submission})
}

// SeedSampleMCQs pushes the demonstration question set for a chapter.
func (s *AdminService) SeedSampleMCQs(ctx context.Context, session domain.Session, chapterID int) (string, error) {
	return s.api.UpsertMCQs(ctx, session, chapterID, SampleMCQs(chapterID))
}

// ExportSyllabus fetches every chapter together with its questions. MCQ
// fetches run concurrently, bounded so the export stays polite to the
// server. Bundles come back in chapter-list order.
func (s *AdminService) ExportSyllabus(ctx context.Context, session domain.Session) ([]domain.ChapterBundle, error) {
	chapters, err := s.api.ListChapters(ctx, session)
	if err != nil {
		return nil, err
	}
	bundles := make([]domain.ChapterBundle, len(chapters))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, chapter := range chapters {
		g.Go(func() error {
			mcqs, err := s.api.ListMCQs(ctx, session, chapter.ChapterID)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", chapter.ChapterID, err)
			}
			bundles[i] = domain.ChapterBundle{Chapter: chapter, MCQs: mcqs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundles, nil
}

// validateMCQ applies the checks the submission form always ran: question
// text, a full option set, and a correct answer that is one of the
// options.
func validateMCQ(sub domain.MCQSubmission) error {
	if strings.TrimSpace(sub.Question) == "" {
		return fmt.Errorf("%w: question text is required", domain.ErrInvalidInput)
	}
	if len(sub.Options) == 0 {
		return fmt.Errorf("%w: at least one option is required", domain.ErrInvalidInput)
	}
	for _, opt := range sub.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: options must not be empty", domain.ErrInvalidInput)
		}
	}
	for _, opt := range sub.Options {
		if opt == sub.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("%w: correct answer must be one of the options", domain.ErrInvalidInput)
}

// SampleMCQs builds the demonstration question pair for a chapter, the
// same records the seeding tool has always written.
func SampleMCQs(chapterID int) []domain.MCQSubmission {
	return []domain.MCQSubmission{
		{
			Question: fmt.Sprintf("What is the main topic of Chapter %d?", chapterID),
			Options: []string{
				"Introduction to the subject",
				"Advanced concepts",
				"Practical applications",
				"Summary and conclusion",
			},
			CorrectAnswer: "Introduction to the subject",
			Explanation:   "This is a test MCQ created for demonstration purposes.",
		},
		{
			Question: fmt.Sprintf("Which of the following is most important in Chapter %d?", chapterID),
			Options: []string{
				"Understanding the basics",
				"Memorizing facts",
				"Speed reading",
				"Taking notes",
			},
			CorrectAnswer: "Understanding the basics",
			Explanation:   "Understanding the basics is fundamental to learning any new concept.",
		},
	}
}
