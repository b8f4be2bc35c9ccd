package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nijaru/yt-blog/blog"
	"github.com/nijaru/yt-blog/captions"
	"github.com/nijaru/yt-blog/errors"
)

// Session is one browser's working state between requests.
type Session struct {
	ID         string               `json:"id"`
	Transcript *captions.Transcript `json:"transcript,omitempty"`
	Draft      *blog.Draft          `json:"draft,omitempty"`
	LastError  string               `json:"last_error,omitempty"`
	ErrorKind  errors.Kind          `json:"error_kind,omitempty"`
	Notice     string               `json:"notice,omitempty"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Store persists sessions. Get returns a not-found error for unknown and
// expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) (int, error)
}

func New() *Session {
	return &Session{
		ID:        uuid.New().String(),
		UpdatedAt: time.Now(),
	}
}

// Succeed records a completed run. The draft always belongs to the transcript
// saved next to it.
func (s *Session) Succeed(transcript *captions.Transcript, draft *blog.Draft, notice string) {
	s.Transcript = transcript
	s.Draft = draft
	s.LastError = ""
	s.ErrorKind = ""
	s.Notice = notice
}

// Fail records a failed run and clears any earlier result.
func (s *Session) Fail(err error) {
	s.Transcript = nil
	s.Draft = nil
	s.Notice = ""
	s.ErrorKind = errors.KindOf(err)

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		s.LastError = appErr.Error()
	} else {
		s.LastError = "Unexpected error: " + err.Error()
	}
}

// Flash is the notice and error to show once.
type Flash struct {
	Notice    string
	Error     string
	ErrorKind errors.Kind
}

// TakeFlash returns the pending notice and error and clears them.
func (s *Session) TakeFlash() Flash {
	f := Flash{Notice: s.Notice, Error: s.LastError, ErrorKind: s.ErrorKind}
	s.Notice, s.LastError, s.ErrorKind = "", "", ""
	return f
}

func (s *Session) clone() *Session {
	c := *s
	return &c
}

// ValidID reports whether id looks like an id produced by New.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
