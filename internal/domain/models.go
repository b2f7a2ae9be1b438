package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access level the login endpoint reports for an account.
type Role string

// RoleAdmin is the only role the admin tooling names; any other value the
// server reports is carried through verbatim.
const RoleAdmin Role = "Admin"

// Session is the authenticated context attached to every authorized call.
// The zero value means "not logged in". The calling layer owns the
// lifecycle: construct on login (or from a raw token), discard to log out.
type Session struct {
	Token    string
	Username string
	Role     Role
}

// Chapter is one syllabus unit. Its identity is caller-supplied, not
// server-generated: writing to a new chapter_id creates the chapter.
type Chapter struct {
	ChapterID           int       `json:"chapter_id"`
	ChapterTitle        string    `json:"chapter_title"`
	Summary             string    `json:"summary"`
	ChapterText         string    `json:"chapter_text"`
	ImportantThings     []string  `json:"important_things"`
	KeyLearnings        []string  `json:"key_learnings"`
	ExercisesActivities []string  `json:"exercises_activities"`
	Quotes              []string  `json:"quotes"`
	CreatedAt           Timestamp `json:"created_at"`
}

// Content extracts the writable fields of a chapter, the shape an upsert
// submits.
func (c Chapter) Content() ChapterContent {
	return ChapterContent{
		ChapterTitle:        c.ChapterTitle,
		Summary:             c.Summary,
		ChapterText:         c.ChapterText,
		ImportantThings:     c.ImportantThings,
		KeyLearnings:        c.KeyLearnings,
		ExercisesActivities: c.ExercisesActivities,
		Quotes:              c.Quotes,
	}
}

// ChapterContent carries the writable chapter fields and is the body of a
// chapter upsert. The server owns chapter_id (taken from the URL) and
// created_at, so neither appears here.
type ChapterContent struct {
	ChapterTitle        string   `json:"chapter_title"`
	Summary             string   `json:"summary"`
	ChapterText         string   `json:"chapter_text"`
	ImportantThings     []string `json:"important_things"`
	KeyLearnings        []string `json:"key_learnings"`
	ExercisesActivities []string `json:"exercises_activities"`
	Quotes              []string `json:"quotes"`
}

// MCQ is a multiple-choice question belonging to exactly one chapter.
// Option order is display-significant. The id is server-assigned.
type MCQ struct {
	ID            int       `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
}

// MCQSubmission is one record of an MCQ upsert. A zero ID is omitted from
// the wire and tells the server to create the question; a concrete ID asks
// it to update that question. The client never enforces this convention.
type MCQSubmission struct {
	ID            int      `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// ChapterBundle pairs a chapter with its full question set. It is the unit
// of a syllabus export.
type ChapterBundle struct {
	Chapter Chapter `json:"chapter"`
	MCQs    []MCQ   `json:"mcqs"`
}

// Timestamp wraps time.Time to tolerate the datetime shapes the upstream
// emits: RFC 3339 with or without fractional seconds, plus the
// timezone-less form produced for naive datetimes.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}
