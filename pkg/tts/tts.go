// Package tts synthesizes speech via the ElevenLabs text-to-speech API.
//
// The skill uses one-shot synthesis only: the full reply text goes out in a
// single request and the complete MP3 buffer comes back. The output format
// is fixed to mp3_22050_32; the transcoder downstream re-encodes it to the
// bitrate the playback device accepts.
package tts

import "context"

// Synthesizer converts text to a complete audio buffer.
type Synthesizer interface {
	// Synthesize issues one synchronous request and returns the raw audio
	// bytes. A non-success provider status yields an *APIError; transport
	// failures yield a wrapped provider error.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// VoiceSettings controls voice characteristics of the generated speech.
type VoiceSettings struct {
	// Stability controls voice consistency (0.0-1.0).
	Stability float64 `json:"stability"`

	// SimilarityBoost controls how closely the voice matches the original (0.0-1.0).
	SimilarityBoost float64 `json:"similarity_boost"`

	// SpeakerBoost enhances speaker clarity.
	SpeakerBoost bool `json:"use_speaker_boost"`
}

// DefaultVoiceSettings returns the settings the skill ships with.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 1.0,
		SpeakerBoost:    false,
	}
}
