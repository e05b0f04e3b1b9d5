// Package chat produces in-character replies via an OpenAI-compatible chat
// completion API.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/john-codes/matue-skill/internal/httpc"
)

// Completer generates a reply for a user utterance.
// An empty utterance is valid and forwarded as-is.
type Completer interface {
	Reply(ctx context.Context, utterance string) (string, error)
}

// Client is the OpenAI-backed Completer.
type Client struct {
	api    *openai.Client
	config *Config
	logger *slog.Logger
}

// NewClient creates a new chat client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	} else {
		apiCfg.HTTPClient = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		config: cfg,
		logger: cfg.Logger.With("component", "chat.client"),
	}, nil
}

// Reply issues one synchronous completion request with the persona as the
// system message and the utterance as the user message, and returns the
// first completion's text. No retries, no streaming.
func (c *Client) Reply(ctx context.Context, utterance string) (string, error) {
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.config.Persona},
			{Role: openai.ChatMessageRoleUser, Content: utterance},
		},
	})
	if err != nil {
		return "", wrapUpstream(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Message: ErrNoChoices.Error(), Err: ErrNoChoices}
	}

	reply := resp.Choices[0].Message.Content

	c.logger.Debug("chat reply",
		"chars_in", len(utterance),
		"chars_out", len(reply),
		"latency_ms", time.Since(start).Milliseconds(),
		"model", c.config.Model,
	)

	return reply, nil
}

// wrapUpstream converts go-openai errors into the package's typed failure.
func wrapUpstream(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    reqErr.Error(),
			Err:        err,
		}
	}

	return &UpstreamError{Message: err.Error(), Err: err}
}

// Verify Client implements Completer at compile time.
var _ Completer = (*Client)(nil)
