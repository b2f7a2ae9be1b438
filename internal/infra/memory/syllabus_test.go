package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"syllabus-admin/internal/domain"
)

func TestLoginIssuesDistinctTokens(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	first, err := store.Login(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	second, err := store.Login(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.Token == "" || first.Token == second.Token {
		t.Fatalf("expected distinct tokens, got %q and %q", first.Token, second.Token)
	}

	if _, err := store.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestRejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	bogus := domain.Session{Token: "forged"}

	if _, err := store.ListChapters(ctx, bogus); !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if _, err := store.UpsertChapter(ctx, bogus, 1, domain.ChapterContent{ChapterTitle: "x"}); !errors.Is(err, domain.ErrUpdateFailed) {
		t.Fatalf("expected update error, got %v", err)
	}
}

func TestTrustTokenAuthorizesDirectSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.TrustToken("external")

	if _, err := store.ListChapters(ctx, domain.Session{Token: "external"}); err != nil {
		t.Fatalf("expected trusted token accepted, got %v", err)
	}
}

func TestChaptersSortedAndCreatedAtStable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	session := login(t, store)

	if _, err := store.UpsertChapter(ctx, session, 9, domain.ChapterContent{ChapterTitle: "Nine"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := store.UpsertChapter(ctx, session, 2, domain.ChapterContent{ChapterTitle: "Two"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	chapters, err := store.ListChapters(ctx, session)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(chapters) != 2 || chapters[0].ChapterID != 2 || chapters[1].ChapterID != 9 {
		t.Fatalf("expected chapters sorted by id, got %+v", chapters)
	}

	created := chapters[1].CreatedAt
	if created.IsZero() {
		t.Fatalf("expected created_at set")
	}
	if _, err := store.UpsertChapter(ctx, session, 9, domain.ChapterContent{ChapterTitle: "Nine, revised"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	chapter, err := store.GetChapter(ctx, session, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if chapter.ChapterTitle != "Nine, revised" {
		t.Fatalf("expected title replaced, got %+v", chapter)
	}
	if !chapter.CreatedAt.Equal(created.Time) {
		t.Fatalf("expected created_at stable across updates, got %v then %v", created, chapter.CreatedAt)
	}
}

func TestGetChapterMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	session := login(t, store)

	if _, err := store.GetChapter(ctx, session, 404); !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestUpsertMCQsAssignsAndReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	session := login(t, store)

	msg, err := store.UpsertMCQs(ctx, session, 3, []domain.MCQSubmission{
		{Question: "Q1", Options: []string{"a"}, CorrectAnswer: "a"},
		{Question: "Q2", Options: []string{"b"}, CorrectAnswer: "b"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if msg == "" {
		t.Fatalf("expected outcome message")
	}

	mcqs, err := store.ListMCQs(ctx, session, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mcqs) != 2 || mcqs[0].ID != 1 || mcqs[1].ID != 2 {
		t.Fatalf("expected ids assigned in order, got %+v", mcqs)
	}

	if _, err := store.UpsertMCQs(ctx, session, 3, []domain.MCQSubmission{
		{ID: 1, Question: "Q1 revised", Options: []string{"a", "c"}, CorrectAnswer: "c"},
	}); err != nil {
		t.Fatalf("upsert with id: %v", err)
	}
	mcqs, err = store.ListMCQs(ctx, session, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mcqs) != 2 || mcqs[0].Question != "Q1 revised" || mcqs[0].ID != 1 {
		t.Fatalf("expected record 1 replaced in place, got %+v", mcqs)
	}
}

func TestMCQsScopedToChapter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	session := login(t, store)

	if _, err := store.UpsertMCQs(ctx, session, 1, []domain.MCQSubmission{
		{Question: "Q", Options: []string{"a"}, CorrectAnswer: "a"},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	mcqs, err := store.ListMCQs(ctx, session, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mcqs) != 0 {
		t.Fatalf("expected no questions for other chapter, got %+v", mcqs)
	}
}

func TestStoreStateIsDetachedFromCallers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	session := login(t, store)

	things := []string{"sleep"}
	options := []string{"a", "b"}
	if _, err := store.UpsertChapter(ctx, session, 1, domain.ChapterContent{
		ChapterTitle:    "One",
		ImportantThings: things,
	}); err != nil {
		t.Fatalf("upsert chapter: %v", err)
	}
	if _, err := store.UpsertMCQs(ctx, session, 1, []domain.MCQSubmission{
		{Question: "Q", Options: options, CorrectAnswer: "a"},
	}); err != nil {
		t.Fatalf("upsert mcqs: %v", err)
	}
	things[0] = "tampered"
	options[0] = "tampered"

	mcqs, err := store.ListMCQs(ctx, session, 1)
	if err != nil {
		t.Fatalf("list mcqs: %v", err)
	}
	if mcqs[0].Options[0] != "a" {
		t.Fatalf("input mutation reached the store: %+v", mcqs[0])
	}
	mcqs[0].Options[0] = "tampered"

	chapter, err := store.GetChapter(ctx, session, 1)
	if err != nil {
		t.Fatalf("get chapter: %v", err)
	}
	if chapter.ImportantThings[0] != "sleep" {
		t.Fatalf("input mutation reached the store: %+v", chapter)
	}
	chapter.ImportantThings[0] = "tampered"

	listed, err := store.ListChapters(ctx, session)
	if err != nil {
		t.Fatalf("list chapters: %v", err)
	}
	listed[0].ImportantThings[0] = "tampered"

	fresh, err := store.ListMCQs(ctx, session, 1)
	if err != nil {
		t.Fatalf("list mcqs: %v", err)
	}
	if fresh[0].Options[0] != "a" {
		t.Fatalf("read mutation reached the store: %+v", fresh[0])
	}
	chapter, err = store.GetChapter(ctx, session, 1)
	if err != nil {
		t.Fatalf("get chapter: %v", err)
	}
	if chapter.ImportantThings[0] != "sleep" {
		t.Fatalf("read mutation reached the store: %+v", chapter)
	}
}

func newTestStore() *SyllabusStore {
	store := NewSyllabusStore()
	store.AddAccount("admin@example.com", "s3cret", "Admin One", domain.RoleAdmin)
	tick := 0
	store.clock = func() time.Time {
		tick++
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(tick) * time.Minute)
	}
	return store
}

func login(t *testing.T, store *SyllabusStore) domain.Session {
	t.Helper()
	session, err := store.Login(context.Background(), "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return session
}
