package captions

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/nijaru/yt-blog/errors"
	"github.com/sirupsen/logrus"
)

// Transcript is the plain spoken text of one caption track.
type Transcript struct {
	Text       string `json:"text"`
	Lines      int    `json:"lines"`
	Language   string `json:"language"`
	Automatic  bool   `json:"automatic"`
	VideoTitle string `json:"video_title,omitempty"`
}

type Config struct {
	Languages []string
	MaxBytes  int64
}

type Service struct {
	extractor  Extractor
	httpClient *http.Client
	config     Config
	logger     *logrus.Logger
}

// NewService builds the caption fetcher. A nil extractor is allowed and makes
// every Fetch fail with ErrExtractorUnavailable.
func NewService(extractor Extractor, httpClient *http.Client, config Config, logger *logrus.Logger) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		extractor:  extractor,
		httpClient: httpClient,
		config:     config,
		logger:     logger,
	}
}

// Fetch resolves the preferred caption track for videoURL, downloads it and
// filters it to plain text.
func (s *Service) Fetch(ctx context.Context, videoURL string) (*Transcript, error) {
	const op = "captions.Fetch"
	logger := s.logger.WithContext(ctx).WithField("url", videoURL)

	if s.extractor == nil {
		return nil, errors.ExtractorUnavailable(op)
	}

	list, err := s.extractor.Tracks(ctx, videoURL)
	if err != nil {
		logger.WithError(err).Warn("Caption track lookup failed")
		return nil, errors.Internal(op, err, "Error with caption extractor")
	}

	track, ok := SelectTrack(list, s.config.Languages)
	if !ok {
		logger.WithField("languages", s.config.Languages).Info("No matching caption track")
		return nil, errors.NoCaptions(op)
	}

	logger = logger.WithFields(logrus.Fields{
		"language":  track.Language,
		"automatic": track.Automatic,
	})
	logger.Debug("Downloading caption track")

	raw, err := s.download(ctx, track.URL)
	if err != nil {
		logger.WithError(err).Warn("Caption download failed")
		return nil, errors.Internal(op, err, "Error downloading captions")
	}

	text, lines := Filter(raw)
	if lines == 0 {
		logger.Info("Caption track contained no spoken text")
		return nil, errors.NoCaptions(op)
	}

	logger.WithField("lines", lines).Info("Transcript extracted")
	return &Transcript{
		Text:       text,
		Lines:      lines,
		Language:   track.Language,
		Automatic:  track.Automatic,
		VideoTitle: list.Title,
	}, nil
}

func (s *Service) download(ctx context.Context, trackURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "build caption request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "fetch caption track")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("caption track returned status %d", resp.StatusCode)
	}

	limit := s.config.MaxBytes
	if limit <= 0 {
		limit = 8 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", errors.Wrap(err, "read caption track")
	}
	// The size cap can split a multi-byte rune at the end.
	return strings.ToValidUTF8(string(body), ""), nil
}
