// Package memory provides an in-memory stand-in for the remote syllabus
// API so the layers above can be exercised without HTTP.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"syllabus-admin/internal/domain"
)

// account is one credential set the fake accepts at login.
type account struct {
	password string
	username string
	role     domain.Role
}

// SyllabusStore implements app.SyllabusAPI backed by maps. It follows the
// remote service's contract: login issues bearer tokens for known
// accounts, chapter upserts create or replace under the caller's id, and
// MCQ upserts assign ids to records that arrive without one. Records are
// copied on the way in and out; callers never share state with the store.
type SyllabusStore struct {
	mu       sync.Mutex
	accounts map[string]account
	tokens   map[string]bool // issued and trusted tokens
	chapters map[int]domain.Chapter
	mcqs     map[int][]domain.MCQ
	issued   int
	nextMCQ  int
	clock    func() time.Time
}

func NewSyllabusStore() *SyllabusStore {
	return &SyllabusStore{
		accounts: make(map[string]account),
		tokens:   make(map[string]bool),
		chapters: make(map[int]domain.Chapter),
		mcqs:     make(map[int][]domain.MCQ),
		clock:    time.Now,
	}
}

// AddAccount registers credentials Login will accept.
func (s *SyllabusStore) AddAccount(email, password, username string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, username: username, role: role}
}

// TrustToken marks a token as valid without a login, mirroring tokens
// minted out of band.
func (s *SyllabusStore) TrustToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
}

func (s *SyllabusStore) Login(_ context.Context, email, password string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	if !ok || acct.password != password {
		return domain.Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrAuthFailed)
	}
	s.issued++
	token := fmt.Sprintf("memtoken-%d", s.issued)
	s.tokens[token] = true
	return domain.Session{Token: token, Username: acct.username, Role: acct.role}, nil
}

func (s *SyllabusStore) ListChapters(_ context.Context, session domain.Session) ([]domain.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized(session) {
		return nil, fmt.Errorf("%w: server returned 401 Unauthorized", domain.ErrFetchFailed)
	}
	chapters := make([]domain.Chapter, 0, len(s.chapters))
	for _, ch := range s.chapters {
		chapters = append(chapters, copyChapter(ch))
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].ChapterID < chapters[j].ChapterID })
	return chapters, nil
}

func (s *SyllabusStore) GetChapter(_ context.Context, session domain.Session, chapterID int) (domain.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized(session) {
		return domain.Chapter{}, fmt.Errorf("%w: server returned 401 Unauthorized", domain.ErrFetchFailed)
	}
	chapter, ok := s.chapters[chapterID]
	if !ok {
		return domain.Chapter{}, fmt.Errorf("%w: server returned 404 Not Found", domain.ErrFetchFailed)
	}
	return copyChapter(chapter), nil
}

func (s *SyllabusStore) UpsertChapter(_ context.Context, session domain.Session, chapterID int, content domain.ChapterContent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized(session) {
		return "", fmt.Errorf("%w: server returned 401 Unauthorized", domain.ErrUpdateFailed)
	}
	createdAt := domain.Timestamp{Time: s.clock()}
	if existing, ok := s.chapters[chapterID]; ok {
		createdAt = existing.CreatedAt
	}
	s.chapters[chapterID] = copyChapter(domain.Chapter{
		ChapterID:           chapterID,
		ChapterTitle:        content.ChapterTitle,
		Summary:             content.Summary,
		ChapterText:         content.ChapterText,
		ImportantThings:     content.ImportantThings,
		KeyLearnings:        content.KeyLearnings,
		ExercisesActivities: content.ExercisesActivities,
		Quotes:              content.Quotes,
		CreatedAt:           createdAt,
	})
	return fmt.Sprintf("Chapter %d saved", chapterID), nil
}

func (s *SyllabusStore) ListMCQs(_ context.Context, session domain.Session, chapterID int) ([]domain.MCQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized(session) {
		return nil, fmt.Errorf("%w: server returned 401 Unauthorized", domain.ErrFetchFailed)
	}
	mcqs := make([]domain.MCQ, 0, len(s.mcqs[chapterID]))
	for _, mcq := range s.mcqs[chapterID] {
		mcqs = append(mcqs, copyMCQ(mcq))
	}
	return mcqs, nil
}

func (s *SyllabusStore) UpsertMCQs(_ context.Context, session domain.Session, chapterID int, submissions []domain.MCQSubmission) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized(session) {
		return "", fmt.Errorf("%w: server returned 401 Unauthorized", domain.ErrUpdateFailed)
	}
	for _, sub := range submissions {
		if sub.ID != 0 && s.replaceMCQ(chapterID, sub) {
			continue
		}
		id := sub.ID
		if id == 0 {
			s.nextMCQ++
			id = s.nextMCQ
		}
		s.mcqs[chapterID] = append(s.mcqs[chapterID], copyMCQ(domain.MCQ{
			ID:            id,
			Question:      sub.Question,
			Options:       sub.Options,
			CorrectAnswer: sub.CorrectAnswer,
			Explanation:   sub.Explanation,
			CreatedAt:     domain.Timestamp{Time: s.clock()},
		}))
	}
	return fmt.Sprintf("%d questions saved", len(submissions)), nil
}

// replaceMCQ rewrites the stored record carrying sub's id, keeping its
// creation time. Reports whether a record was found.
func (s *SyllabusStore) replaceMCQ(chapterID int, sub domain.MCQSubmission) bool {
	for i, existing := range s.mcqs[chapterID] {
		if existing.ID != sub.ID {
			continue
		}
		s.mcqs[chapterID][i] = copyMCQ(domain.MCQ{
			ID:            sub.ID,
			Question:      sub.Question,
			Options:       sub.Options,
			CorrectAnswer: sub.CorrectAnswer,
			Explanation:   sub.Explanation,
			CreatedAt:     existing.CreatedAt,
		})
		return true
	}
	return false
}

func (s *SyllabusStore) authorized(session domain.Session) bool {
	return s.tokens[session.Token]
}

// copyChapter detaches the slice fields so callers cannot reach into
// store state.
func copyChapter(ch domain.Chapter) domain.Chapter {
	ch.ImportantThings = append([]string(nil), ch.ImportantThings...)
	ch.KeyLearnings = append([]string(nil), ch.KeyLearnings...)
	ch.ExercisesActivities = append([]string(nil), ch.ExercisesActivities...)
	ch.Quotes = append([]string(nil), ch.Quotes...)
	return ch
}

func copyMCQ(mcq domain.MCQ) domain.MCQ {
	mcq.Options = append([]string(nil), mcq.Options...)
	return mcq
}
