// Package pipeline runs the caption fetch and blog synthesis stages for one
// video, stopping at the first failure.
package pipeline

import (
	"context"
	"time"

	"github.com/nijaru/yt-blog/blog"
	"github.com/nijaru/yt-blog/captions"
	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/validation"
	"github.com/sirupsen/logrus"
)

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoURL string) (*captions.Transcript, error)
}

type BlogGenerator interface {
	Generate(ctx context.Context, transcript, title string) (*blog.Draft, error)
}

type Request struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Result struct {
	Transcript *captions.Transcript
	Draft      *blog.Draft
}

type Service struct {
	fetcher   TranscriptFetcher
	generator BlogGenerator
	logger    *logrus.Logger
}

// NewService wires the two stages. A nil generator means no API key was
// configured; Run then fails with ErrMissingAPIKey before touching the network.
func NewService(fetcher TranscriptFetcher, generator BlogGenerator, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
	}
}

// CanGenerate reports whether Run can reach the completion stage.
func (s *Service) CanGenerate() bool {
	return s.generator != nil
}

func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	const op = "pipeline.Run"

	if s.generator == nil {
		return nil, errors.MissingAPIKey(op)
	}

	title := validation.Title(req.Title)
	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"op":    op,
		"url":   req.URL,
		"title": title,
	})
	start := time.Now()

	transcript, err := s.Transcript(ctx, req.URL)
	if err != nil {
		logger.WithError(err).Warn("Transcript stage failed")
		return nil, err
	}

	draft, err := s.generator.Generate(ctx, transcript.Text, title)
	if err != nil {
		logger.WithError(err).Warn("Blog stage failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"lines":    transcript.Lines,
		"duration": time.Since(start),
	}).Info("Pipeline run completed")

	return &Result{Transcript: transcript, Draft: draft}, nil
}

// Transcript runs only the caption stage. The fetcher gets the canonical
// watch URL of the validated id, not the URL as typed.
func (s *Service) Transcript(ctx context.Context, videoURL string) (*captions.Transcript, error) {
	id, err := validation.VideoID(videoURL)
	if err != nil {
		return nil, err
	}
	return s.fetcher.Fetch(ctx, validation.WatchURL(id))
}
