// Package transcode re-encodes synthesized audio into the encoding the
// playback device accepts, by piping bytes through an external ffmpeg
// process. Devices reject higher-bitrate or differently-sampled MP3
// streams, so the output is fixed at 48 kbps / 22050 Hz.
package transcode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

// Fixed target encoding for device-compatible MP3 output.
const (
	DefaultBinary     = "ffmpeg"
	DefaultBitrate    = "48k"
	DefaultSampleRate = 22050
)

// Transcoder converts an audio buffer to the target encoding.
type Transcoder interface {
	// Transcode consumes the input buffer and returns a new buffer in the
	// target encoding. A process launch or stream failure is fatal to the
	// enclosing invocation; there are no retries.
	Transcode(ctx context.Context, input []byte) ([]byte, error)
}

// FFmpeg implements Transcoder by spawning an ffmpeg process with
// stdin/stdout pipes (no temp files).
type FFmpeg struct {
	binary     string
	bitrate    string
	sampleRate int
	logger     *slog.Logger
}

// Option is a functional option for configuring the transcoder.
type Option func(*FFmpeg)

// WithBinary overrides the ffmpeg binary path (mainly for tests).
func WithBinary(path string) Option {
	return func(f *FFmpeg) {
		f.binary = path
	}
}

// WithBitrate overrides the target audio bitrate.
func WithBitrate(bitrate string) Option {
	return func(f *FFmpeg) {
		f.bitrate = bitrate
	}
}

// WithSampleRate overrides the target sample rate in Hz.
func WithSampleRate(rate int) Option {
	return func(f *FFmpeg) {
		f.sampleRate = rate
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FFmpeg) {
		f.logger = logger
	}
}

// NewFFmpeg creates a transcoder with the fixed device-compatible defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	f := &FFmpeg{
		binary:     DefaultBinary,
		bitrate:    DefaultBitrate,
		sampleRate: DefaultSampleRate,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("component", "transcode.ffmpeg")
	return f
}

// Transcode pipes the input through ffmpeg and collects stdout.
//
// The input is streamed to the process stdin from a goroutine and stdout is
// drained concurrently, so neither OS pipe can fill up and deadlock. The
// external contract stays synchronous: Transcode returns only once the
// process has exited.
func (f *FFmpeg) Transcode(ctx context.Context, input []byte) ([]byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, f.binary,
		"-f", "mp3", // input format
		"-i", "pipe:0", // read from stdin
		"-b:a", f.bitrate, // audio bitrate
		"-ar", strconv.Itoa(f.sampleRate), // sample rate
		"-f", "mp3", // output format
		"pipe:1", // write to stdout
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &ProcessError{Stage: "pipe", Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &ProcessError{Stage: "launch", Err: err}
	}

	// Half-close stdin once the input is written so ffmpeg sees EOF and
	// flushes its output. Stdout is drained by the exec runtime while we
	// are still writing.
	writeErr := make(chan error, 1)
	go func() {
		_, werr := stdin.Write(input)
		if cerr := stdin.Close(); werr == nil {
			werr = cerr
		}
		writeErr <- werr
	}()

	if err := cmd.Wait(); err != nil {
		return nil, &ProcessError{
			Stage:  "exit",
			Err:    err,
			Stderr: tail(stderr.String(), 512),
		}
	}
	if werr := <-writeErr; werr != nil {
		return nil, &ProcessError{Stage: "write", Err: werr}
	}

	out := stdout.Bytes()

	f.logger.Debug("transcoded audio",
		"bytes_in", len(input),
		"bytes_out", len(out),
		"bitrate", f.bitrate,
		"sample_rate", f.sampleRate,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return out, nil
}

// tail returns the last n bytes of s for error context.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// ProcessError represents a transcoder subprocess failure.
type ProcessError struct {
	// Stage names the step that failed: pipe, launch, write or exit.
	Stage string

	// Err is the underlying error.
	Err error

	// Stderr holds the tail of the process stderr output, if any.
	Stderr string
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode [%s]: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("transcode [%s]: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Verify FFmpeg implements Transcoder at compile time.
var _ Transcoder = (*FFmpeg)(nil)
