// Package syllabus implements the HTTP client for the remote syllabus
// management API: login plus chapter and MCQ reads and upserts, all wrapped
// in the service's succeeded/data/message envelope.
package syllabus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"syllabus-admin/internal/domain"
)

// DefaultTimeout bounds every API call unless the caller picks another.
const DefaultTimeout = 10 * time.Second

// Identity reported for sessions built from a raw token. The API only
// reveals who a token belongs to at login time.
const (
	directUsername = "Direct Access"
	directRole     = domain.RoleAdmin
)

// Client talks to the syllabus management API. It holds only the base URL
// and timeout; the bearer credential travels with each call inside the
// Session, so a single Client can serve concurrent callers with different
// sessions.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the API at baseURL. A non-positive timeout
// falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// SessionFromToken builds a session from a pre-obtained bearer token
// without calling the login endpoint. The token is not verified here; the
// first authorized call will reject a bad one.
func SessionFromToken(token string) domain.Session {
	return domain.Session{
		Token:    token,
		Username: directUsername,
		Role:     directRole,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserRole string `json:"user_role"`
}

// Login exchanges credentials for a session. Field checks are the caller's
// job; whatever arrives here is sent as-is and the server has the final
// word. All failure modes wrap domain.ErrAuthFailed.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password}).
		Post("/api/login")
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	var data loginData
	if err := env.decodeData(&data); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	if data.Token == "" {
		return domain.Session{}, fmt.Errorf("%w: response carried no token", domain.ErrAuthFailed)
	}
	return domain.Session{
		Token:    data.Token,
		Username: data.Username,
		Role:     domain.Role(data.UserRole),
	}, nil
}

// ListChapters fetches every chapter. An empty syllabus is a successful
// empty slice, not an error.
func (c *Client) ListChapters(ctx context.Context, session domain.Session) ([]domain.Chapter, error) {
	resp, err := c.authorized(ctx, session).Get("/api/all-chapters")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	chapters := []domain.Chapter{}
	if env.hasData() {
		if err := env.decodeData(&chapters); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
	}
	return chapters, nil
}

// GetChapter fetches one chapter by id.
func (c *Client) GetChapter(ctx context.Context, session domain.Session, chapterID int) (domain.Chapter, error) {
	resp, err := c.authorized(ctx, session).Get(fmt.Sprintf("/api/syllabus/%d", chapterID))
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK)
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	var chapter domain.Chapter
	if err := env.decodeData(&chapter); err != nil {
		return domain.Chapter{}, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return chapter, nil
}

// UpsertChapter writes the full content of a chapter, creating it when the
// id is new. The server answers 200 for an update and 201 for a creation;
// both count as success. Returns the server's outcome message.
func (c *Client) UpsertChapter(ctx context.Context, session domain.Session, chapterID int, content domain.ChapterContent) (string, error) {
	resp, err := c.authorized(ctx, session).
		SetBody(content).
		Put(fmt.Sprintf("/api/syllabus/%d", chapterID))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK, http.StatusCreated)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	return env.Message, nil
}

// ListMCQs fetches the questions of one chapter. A chapter without
// questions is a successful empty slice, not an error.
func (c *Client) ListMCQs(ctx context.Context, session domain.Session, chapterID int) ([]domain.MCQ, error) {
	resp, err := c.authorized(ctx, session).Get(fmt.Sprintf("/api/mcqs/%d", chapterID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	mcqs := []domain.MCQ{}
	if env.hasData() {
		if err := env.decodeData(&mcqs); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
	}
	return mcqs, nil
}

// UpsertMCQs submits a batch of questions for one chapter in a single
// call. Records without an id are created, records with one updated; the
// submission order is preserved on the wire. Unlike the chapter endpoint,
// this one acknowledges with 200 only. Returns the server's outcome
// message.
func (c *Client) UpsertMCQs(ctx context.Context, session domain.Session, chapterID int, submissions []domain.MCQSubmission) (string, error) {
	resp, err := c.authorized(ctx, session).
		SetBody(submissions).
		Put(fmt.Sprintf("/api/mcqs/%d", chapterID))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	env, err := unwrap(resp.StatusCode(), resp.Status(), resp.Body(), http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	return env.Message, nil
}

// authorized starts a request carrying the session's bearer token. An
// inactive session sends no Authorization header and earns the server's
// 401.
func (c *Client) authorized(ctx context.Context, session domain.Session) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if session.Token != "" {
		req.SetAuthToken(session.Token)
	}
	return req
}
