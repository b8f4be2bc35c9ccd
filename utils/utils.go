package utils

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nijaru/yt-blog/errors"
	"github.com/sirupsen/logrus"
)

// PreviewLimit is how much of a transcript the page shows.
const PreviewLimit = 2000

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithError writes err as a JSON error body. AppErrors keep their code
// and user-facing message; anything else becomes a 500.
func RespondWithError(w http.ResponseWriter, err error) {
	respondWithError(w, err, false)
}

// RespondWithErrorCause is RespondWithError that also reports the underlying
// cause of provider and internal failures, the same text the page shows.
func RespondWithErrorCause(w http.ResponseWriter, err error) {
	respondWithError(w, err, true)
}

func respondWithError(w http.ResponseWriter, err error, withCause bool) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		appErr = errors.Internal("utils.RespondWithError", err, "Internal server error")
	}

	logrus.WithFields(logrus.Fields{
		"status_code": appErr.Code,
		"kind":        appErr.Kind,
		"op":          appErr.Op,
		"error":       appErr.Error(),
	}).Error("Request failed")

	message := appErr.Message
	if withCause && (appErr.Kind == errors.KindProvider || appErr.Kind == errors.KindInternal) {
		message = appErr.Error()
	}
	HandleError(w, message, appErr.Code)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
	}
}

// FormatText puts every sentence of text on its own line.
func FormatText(text string) string {
	text = strings.TrimSpace(text)
	var builder strings.Builder
	lineStart := true
	for _, char := range text {
		if lineStart && char == ' ' {
			continue
		}
		lineStart = false
		builder.WriteRune(char)
		if char == '.' || char == '!' || char == '?' {
			builder.WriteRune('\n')
			lineStart = true
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

// Preview cuts text to limit characters and marks the cut with "...".
func Preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
