package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no language model is configured. Callers
// treat it as the signal to take their deterministic fallback path.
var ErrUnavailable = errors.New("language model unavailable")

// Provider is the chat-completion seam between the pipeline and whichever
// model backend is configured.
type Provider interface {
	// Complete sends one system/user message pair and returns the model output.
	Complete(ctx context.Context, system, user string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

type Response struct {
	Content string
	Usage   Usage
}
