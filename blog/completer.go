package blog

import "context"

type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	Model        string
	Temperature  float32
	MaxTokens    int
}

type CompletionResponse struct {
	Text         string
	FinishReason string
	TokensUsed   int
	ModelName    string
}

// Completer issues one non-streaming chat completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
