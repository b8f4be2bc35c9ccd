package captions

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kkdai/youtube/v2"
	"github.com/nijaru/yt-blog/errors"
)

// kindASR marks automatically generated caption tracks.
const kindASR = "asr"

var exposedFormats = []string{FormatVTT, FormatSRV3, FormatJSON3}

// VideoClient is the subset of youtube.Client used for caption discovery.
type VideoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

type YouTubeExtractor struct {
	client VideoClient
}

// NewYouTubeExtractor wires a kkdai/youtube client to httpClient.
func NewYouTubeExtractor(httpClient *http.Client) *YouTubeExtractor {
	return &YouTubeExtractor{client: &youtube.Client{HTTPClient: httpClient}}
}

func NewYouTubeExtractorWithClient(client VideoClient) *YouTubeExtractor {
	return &YouTubeExtractor{client: client}
}

func (e *YouTubeExtractor) Tracks(ctx context.Context, videoURL string) (*TrackList, error) {
	video, err := e.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, errors.Wrap(err, "youtube video info")
	}
	return trackListFromVideo(video), nil
}

func trackListFromVideo(video *youtube.Video) *TrackList {
	list := &TrackList{
		Title:             video.Title,
		Subtitles:         make(map[string][]Track),
		AutomaticCaptions: make(map[string][]Track),
	}

	for _, ct := range video.CaptionTracks {
		if ct.BaseURL == "" || ct.LanguageCode == "" {
			continue
		}
		automatic := ct.Kind == kindASR
		for _, ext := range exposedFormats {
			track := Track{
				Language:  ct.LanguageCode,
				Ext:       ext,
				URL:       withFormat(ct.BaseURL, ext),
				Automatic: automatic,
			}
			if automatic {
				list.AutomaticCaptions[ct.LanguageCode] = append(list.AutomaticCaptions[ct.LanguageCode], track)
			} else {
				list.Subtitles[ct.LanguageCode] = append(list.Subtitles[ct.LanguageCode], track)
			}
		}
	}

	return list
}

// withFormat sets the fmt query parameter of a timedtext base URL.
func withFormat(baseURL, ext string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + "&fmt=" + ext
	}
	q := u.Query()
	q.Set("fmt", ext)
	u.RawQuery = q.Encode()
	return u.String()
}
