package blog

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/nijaru/yt-blog/errors"
	"github.com/sirupsen/logrus"
)

var (
	errNoChoices    = stderrors.New("provider returned no choices")
	errEmptyContent = stderrors.New("provider returned empty content")
)

// Draft is one generated blog post.
type Draft struct {
	Markdown   string    `json:"markdown"`
	Title      string    `json:"title"`
	Model      string    `json:"model"`
	TokensUsed int       `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}

type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	CharBudget  int
}

type Generator struct {
	completer Completer
	config    Config
	logger    *logrus.Logger
	now       func() time.Time
}

func NewGenerator(completer Completer, config Config, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Generator{
		completer: completer,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate caps transcript at the configured budget and asks the provider
// for a blog post about it. Any provider failure is returned as a provider
// error; there are no retries.
func (g *Generator) Generate(ctx context.Context, transcript, title string) (*Draft, error) {
	const op = "blog.Generate"

	capped := Truncate(transcript, g.config.CharBudget)
	logger := g.logger.WithContext(ctx).WithFields(logrus.Fields{
		"model":       g.config.Model,
		"title":       title,
		"input_chars": len([]rune(capped)),
		"truncated":   len(capped) < len(transcript),
	})

	start := time.Now()
	resp, err := g.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		Prompt:       BuildPrompt(capped, title),
		Model:        g.config.Model,
		Temperature:  g.config.Temperature,
		MaxTokens:    g.config.MaxTokens,
	})
	logger = logger.WithField("duration", time.Since(start))
	if err != nil {
		logger.WithError(err).Error("Blog generation failed")
		return nil, errors.Provider(op, err)
	}

	markdown := strings.TrimSpace(resp.Text)
	if markdown == "" {
		logger.Error("Provider returned an empty blog")
		return nil, errors.Provider(op, errEmptyContent)
	}

	model := resp.ModelName
	if model == "" {
		model = g.config.Model
	}

	logger.WithFields(logrus.Fields{
		"tokens_used":   resp.TokensUsed,
		"finish_reason": resp.FinishReason,
	}).Info("Blog generated")

	return &Draft{
		Markdown:   markdown,
		Title:      title,
		Model:      model,
		TokensUsed: resp.TokensUsed,
		CreatedAt:  g.now(),
	}, nil
}
