// Package config loads process configuration from the environment.
//
// Configuration is read once at startup into an explicit struct that is
// passed into each component's constructor. Components never read the
// environment themselves, which keeps them testable with injected fakes.
package config

import (
	"fmt"
	"os"
)

// Defaults for optional settings.
const (
	DefaultChatModel       = "gpt-4"
	DefaultRegion          = "sa-east-1"
	DefaultFFmpegPath      = "ffmpeg"
	DefaultPort            = "8080"
	DefaultWelcomeAudioURL = "https://john-codes.s3.sa-east-1.amazonaws.com/matue-tts/boas_vindas_alexa.mp3"
)

// Config holds all process configuration for the skill backend.
type Config struct {
	// OpenAI chat completion
	OpenAIAPIKey string
	ChatModel    string

	// ElevenLabs speech synthesis
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// Artifact storage
	BucketName string
	Region     string

	// Audio re-encoding
	FFmpegPath string

	// Skill responses
	WelcomeAudioURL string

	// Process
	LogLevel string
	Port     string
}

// Load reads configuration from the environment.
// It fails with a named error when a required variable is missing.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getenv("OPENAI_MODEL", DefaultChatModel),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
		BucketName:        os.Getenv("BUCKET_NAME"),
		Region:            getenv("AWS_REGION", DefaultRegion),
		FFmpegPath:        getenv("FFMPEG_PATH", DefaultFFmpegPath),
		WelcomeAudioURL:   getenv("WELCOME_AUDIO_URL", DefaultWelcomeAudioURL),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		Port:              getenv("PORT", DefaultPort),
	}

	for _, required := range []struct {
		name  string
		value string
	}{
		{"OPENAI_API_KEY", cfg.OpenAIAPIKey},
		{"ELEVENLABS_API_KEY", cfg.ElevenLabsAPIKey},
		{"ELEVENLABS_VOICE_ID", cfg.ElevenLabsVoiceID},
		{"BUCKET_NAME", cfg.BucketName},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("config: %s environment variable is required", required.name)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
