package config

import "testing"

func setRequired(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ELEVENLABS_API_KEY", "el-test")
	t.Setenv("ELEVENLABS_VOICE_ID", "voice-1")
	t.Setenv("BUCKET_NAME", "mybucket")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChatModel != DefaultChatModel {
		t.Errorf("expected default model %q, got %q", DefaultChatModel, cfg.ChatModel)
	}
	if cfg.Region != DefaultRegion {
		t.Errorf("expected default region %q, got %q", DefaultRegion, cfg.Region)
	}
	if cfg.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("expected default ffmpeg path %q, got %q", DefaultFFmpegPath, cfg.FFmpegPath)
	}
	if cfg.WelcomeAudioURL == "" {
		t.Error("expected a default welcome audio URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("FFMPEG_PATH", "/opt/bin/ffmpeg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("expected model override, got %q", cfg.ChatModel)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("expected region override, got %q", cfg.Region)
	}
	if cfg.FFmpegPath != "/opt/bin/ffmpeg" {
		t.Errorf("expected ffmpeg path override, got %q", cfg.FFmpegPath)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	for _, missing := range []string{
		"OPENAI_API_KEY",
		"ELEVENLABS_API_KEY",
		"ELEVENLABS_VOICE_ID",
		"BUCKET_NAME",
	} {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s is unset", missing)
			}
		})
	}
}
