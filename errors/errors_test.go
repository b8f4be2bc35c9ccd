package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := InvalidInput("op", nil, "test message")

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "test message", err.Error())
}

func TestAppErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("cause error")
	err := Internal("op", cause, "test message")

	assert.Equal(t, "test message: cause error", err.Error())
	assert.True(t, Is(err, cause))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"no captions", NoCaptions("op"), KindNoCaptions},
		{"missing key", MissingAPIKey("op"), KindMissingAPIKey},
		{"extractor", ExtractorUnavailable("op"), KindExtractorUnavailable},
		{"provider", Provider("op", fmt.Errorf("boom")), KindProvider},
		{"wrapped", Wrap(NotFound("op", nil, "gone"), "lookup"), KindNotFound},
		{"plain error", fmt.Errorf("standard error"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := Wrapf(NoCaptions("captions.Fetch"), "video %s", "abc")

	assert.True(t, Is(err, ErrNoCaptions))
	assert.False(t, Is(err, ErrMissingAPIKey))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.True(t, IsNotFound(NotFound("op", nil, "x")))
}

func TestStatusCodeDefaults(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("plain")))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(MissingAPIKey("op")))
	assert.Equal(t, http.StatusBadGateway, StatusCode(Provider("op", nil)))
}

func TestErrorfRecordsStack(t *testing.T) {
	err := Errorf("status %d", 403)

	assert.Equal(t, "status 403", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestErrorfRecordsStack")
}
