package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindMissingAPIKey        Kind = "missing_api_key"
	KindExtractorUnavailable Kind = "extractor_unavailable"
	KindNoCaptions           Kind = "no_captions"
	KindProvider             Kind = "provider"
	KindNotFound             Kind = "not_found"
	KindInternal             Kind = "internal"
)

var (
	ErrMissingAPIKey        = stderrors.New("GROQ_API_KEY not found")
	ErrExtractorUnavailable = stderrors.New("caption extractor not configured")
	ErrNoCaptions           = stderrors.New("no English subtitles found")
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"kind"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func E(kind Kind, code int, op string, err error, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(KindInvalidInput, http.StatusBadRequest, op, err, message)
}

func NotFound(op string, err error, message string) *AppError {
	return E(KindNotFound, http.StatusNotFound, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return E(KindInternal, http.StatusInternalServerError, op, err, message)
}

func MissingAPIKey(op string) *AppError {
	return E(KindMissingAPIKey, http.StatusServiceUnavailable, op, ErrMissingAPIKey,
		"GROQ_API_KEY not found! Add it to your .env file")
}

func ExtractorUnavailable(op string) *AppError {
	return E(KindExtractorUnavailable, http.StatusServiceUnavailable, op, ErrExtractorUnavailable,
		"Caption extractor is not available")
}

func NoCaptions(op string) *AppError {
	return E(KindNoCaptions, http.StatusNotFound, op, ErrNoCaptions,
		"Failed to extract transcript")
}

func Provider(op string, err error) *AppError {
	return E(KindProvider, http.StatusBadGateway, op, err, "Error generating blog")
}

// KindOf returns the Kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Wrap and Wrapf annotate err with a message and a stack trace.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Errorf formats a new error that records the call stack.
func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
