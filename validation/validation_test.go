package validation

import (
	"testing"

	"github.com/nijaru/yt-blog/errors"
	"github.com/stretchr/testify/assert"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"empty", "", "", true},
		{"javascript", "javascript:alert(1)", "", true},
		{"not a url", "not-a-url", "", true},
		{"ftp scheme", "ftp://youtube.com/watch?v=dQw4w9WgXcQ", "", true},
		{"other host", "https://example.com/watch?v=dQw4w9WgXcQ", "", true},
		{"lookalike host", "https://notyoutube.com/watch?v=dQw4w9WgXcQ", "", true},
		{"watch without id", "https://www.youtube.com/watch", "", true},
		{"short id", "https://www.youtube.com/watch?v=abc", "", true},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch with extras", " https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42s ", "dQw4w9WgXcQ", false},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"live", "http://youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VideoID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, ValidateURL(tt.url))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, DefaultTitle, Title(""))
	assert.Equal(t, DefaultTitle, Title("   "))
	assert.Equal(t, "Go Tips", Title(" Go Tips "))
}

func TestWatchURL(t *testing.T) {
	id, err := VideoID("https://www.youtube.com/live/dQw4w9WgXcQ")
	assert.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL(id))
}
