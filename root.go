package main

import (
	"io"
	"net/http"

	"github.com/nijaru/yt-blog/blog"
	"github.com/nijaru/yt-blog/captions"
	"github.com/nijaru/yt-blog/config"
	"github.com/nijaru/yt-blog/logger"
	"github.com/nijaru/yt-blog/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yt-blog",
		Short: "Turn YouTube captions into a blog post",
		Long: `yt-blog fetches the English captions of a YouTube video and asks a
Groq-hosted model to write a blog post from them.

Run "yt-blog serve" for the web UI, or "yt-blog generate URL" for a one-shot
run in the terminal. Configuration comes from the environment and .env.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newTranscriptCommand())

	return cmd
}

// newPipeline wires the caption and blog stages from cfg. Without an API key
// the blog stage is left out and the pipeline reports the missing key.
func newPipeline(cfg *config.Config, log *logrus.Logger) *pipeline.Service {
	captionClient := &http.Client{Timeout: cfg.Captions.HTTPTimeout}
	fetcher := captions.NewService(
		captions.NewYouTubeExtractor(captionClient),
		captionClient,
		captions.Config{
			Languages: cfg.Captions.Languages,
			MaxBytes:  cfg.Captions.MaxBytes,
		},
		log,
	)

	if !cfg.HasAPIKey() {
		log.Warn("GROQ_API_KEY is not set, blog generation is disabled")
		return pipeline.NewService(fetcher, nil, log)
	}

	completer := blog.NewOpenAICompleter(
		cfg.Blog.APIKey,
		cfg.Blog.BaseURL,
		&http.Client{Timeout: cfg.Blog.HTTPTimeout},
	)
	generator := blog.NewGenerator(completer, blog.Config{
		Model:       cfg.Blog.Model,
		Temperature: cfg.Blog.Temperature,
		MaxTokens:   cfg.Blog.MaxTokens,
		CharBudget:  cfg.Blog.CharBudget,
	}, log)

	return pipeline.NewService(fetcher, generator, log)
}

// loadCLI loads configuration and a logger whose console output goes to
// stderr.
func loadCLI(stderr io.Writer) (*config.Config, *logrus.Logger, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log, closer, err := logger.NewWithConsole(stderr, cfg.LogDir, level)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closer, nil
}
