package llm

import "context"

// Client is a minimal inference interface to allow pluggable backends.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}
