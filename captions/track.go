package captions

import "context"

// Formats exposed for every caption track. Only vtt is consumed.
const (
	FormatVTT   = "vtt"
	FormatSRV3  = "srv3"
	FormatJSON3 = "json3"
)

type Track struct {
	Language  string `json:"language"`
	Ext       string `json:"ext"`
	URL       string `json:"url"`
	Automatic bool   `json:"automatic"`
}

// TrackList is the caption inventory of one video, keyed by language code.
type TrackList struct {
	Title             string             `json:"title"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
}

// Extractor lists the caption tracks available for a video URL.
type Extractor interface {
	Tracks(ctx context.Context, videoURL string) (*TrackList, error)
}

// SelectTrack walks langs in order and returns the first vtt track, looking
// at uploaded subtitles before automatic captions for each language.
func SelectTrack(list *TrackList, langs []string) (Track, bool) {
	if list == nil {
		return Track{}, false
	}
	for _, lang := range langs {
		if t, ok := firstVTT(list.Subtitles[lang]); ok {
			return t, true
		}
		if t, ok := firstVTT(list.AutomaticCaptions[lang]); ok {
			return t, true
		}
	}
	return Track{}, false
}

func firstVTT(tracks []Track) (Track, bool) {
	for _, t := range tracks {
		if t.Ext == FormatVTT && t.URL != "" {
			return t, true
		}
	}
	return Track{}, false
}
