package captions

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// timestampRe matches lines that open with an HH:MM:SS cue time.
	timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
	// headerFieldRe matches "Key: value" metadata lines of the WEBVTT header.
	headerFieldRe = regexp.MustCompile(`^[A-Za-z][A-Za-z-]*:\s`)
)

// Filter strips a raw WebVTT payload down to spoken text. It returns the
// retained lines joined by single spaces and how many lines were kept.
func Filter(raw string) (string, int) {
	var kept []string
	inHeader := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			inHeader = false
			continue
		}
		if strings.HasPrefix(line, "WEBVTT") {
			inHeader = true
			continue
		}
		if inHeader {
			// Only Kind:, Language: and similar fields belong to the header.
			// Anything else means the cues started without a blank line.
			if headerFieldRe.MatchString(line) && !strings.Contains(line, "-->") {
				continue
			}
			inHeader = false
		}
		if isCueMarkup(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, " "), len(kept)
}

func isCueMarkup(line string) bool {
	return strings.Contains(line, "-->") ||
		isDigits(line) ||
		timestampRe.MatchString(line) ||
		strings.HasPrefix(line, "<") ||
		strings.Contains(line, "NOTE")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
