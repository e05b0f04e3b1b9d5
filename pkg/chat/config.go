package chat

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultPersona is the fixed system prompt. The skill always answers in
// character; off-topic questions get the canned refusal line.
const DefaultPersona = "Você é um clone do rapper Matuê. Responda sempre com o estilo do Matuê, " +
	"utilizando suas gírias e seu jeito de falar. Responda apenas perguntas que estejam dentro do " +
	"universo do Matuê; caso a pergunta não seja pertinente, responda 'Não faço parte desse universo, meu mano.'"

// DefaultModel is the chat completion model used when none is configured.
const DefaultModel = "gpt-4"

// Config holds chat client configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Persona string

	Timeout    time.Duration
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Option is a functional option for configuring the chat client.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithModel sets the completion model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithPersona sets the system prompt.
func WithPersona(persona string) Option {
	return func(c *Config) {
		c.Persona = persona
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient overrides the HTTP client (mainly for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the structured logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Persona: DefaultPersona,
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}
