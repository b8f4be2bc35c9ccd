package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nijaru/yt-blog/errors"
)

const DefaultTitle = "YouTube Video"

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateURL checks that rawURL is an http(s) YouTube link that names a video.
func ValidateURL(rawURL string) error {
	_, err := VideoID(rawURL)
	return err
}

// VideoID extracts the 11 character video id from the watch, short-link,
// shorts, embed and live URL forms.
func VideoID(rawURL string) (string, error) {
	const op = "validation.VideoID"

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", errors.InvalidInput(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", errors.InvalidInput(op, nil, "URL must start with http or https")
	}

	host := strings.ToLower(parsedURL.Hostname())
	if host == "" {
		return "", errors.InvalidInput(op, nil, "URL must have a host")
	}

	var id string
	switch {
	case host == "youtu.be":
		id = strings.Trim(parsedURL.Path, "/")
	case isYouTubeDomain(host):
		if v := parsedURL.Query().Get("v"); v != "" {
			id = v
			break
		}
		parts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "shorts", "embed", "live", "v":
				id = parts[1]
			}
		}
	default:
		return "", errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	if !videoIDRe.MatchString(id) {
		return "", errors.InvalidInput(op, nil, "YouTube URL must contain a valid video ID")
	}
	return id, nil
}

// WatchURL is the canonical watch page for a video id. Every accepted URL form
// maps to it, so downstream clients only ever see one shape.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func isYouTubeDomain(host string) bool {
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") ||
		host == "youtube-nocookie.com" || strings.HasSuffix(host, ".youtube-nocookie.com")
}

// Title returns the trimmed title, or DefaultTitle when it is blank.
func Title(title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return DefaultTitle
}
