package transcode_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/john-codes/matue-skill/pkg/transcode"
)

// stubBinary writes an executable shell script standing in for ffmpeg.
func stubBinary(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestTranscodePassthrough(t *testing.T) {
	bin := stubBinary(t, "exec cat")
	tr := transcode.NewFFmpeg(transcode.WithBinary(bin))

	in := []byte("ID3fake-mp3-data")
	out, err := tr.Transcode(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("expected passthrough output, got %d bytes", len(out))
	}
}

func TestTranscodeLargeInputDoesNotDeadlock(t *testing.T) {
	// Input far bigger than an OS pipe buffer: the stdin writer and the
	// stdout drain must run concurrently or this blocks forever.
	bin := stubBinary(t, "exec cat")
	tr := transcode.NewFFmpeg(transcode.WithBinary(bin))

	in := bytes.Repeat([]byte("abcdefgh"), 256*1024) // 2 MiB
	out, err := tr.Transcode(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Errorf("expected %d bytes out, got %d", len(in), len(out))
	}
}

func TestTranscodeProcessFailure(t *testing.T) {
	bin := stubBinary(t, `echo "conversion failed" >&2; exit 1`)
	tr := transcode.NewFFmpeg(transcode.WithBinary(bin))

	_, err := tr.Transcode(context.Background(), []byte("data"))
	if err == nil {
		t.Fatal("expected error")
	}

	var procErr *transcode.ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessError, got %T: %v", err, err)
	}
	if procErr.Stage != "exit" {
		t.Errorf("unexpected stage: %q", procErr.Stage)
	}
	if !strings.Contains(procErr.Stderr, "conversion failed") {
		t.Errorf("expected stderr tail in error, got %q", procErr.Stderr)
	}
}

func TestTranscodeLaunchFailure(t *testing.T) {
	tr := transcode.NewFFmpeg(transcode.WithBinary(filepath.Join(t.TempDir(), "missing-binary")))

	_, err := tr.Transcode(context.Background(), []byte("data"))
	if err == nil {
		t.Fatal("expected error")
	}

	var procErr *transcode.ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessError, got %T: %v", err, err)
	}
	if procErr.Stage != "launch" {
		t.Errorf("unexpected stage: %q", procErr.Stage)
	}
}

func TestTranscodeContextCancellation(t *testing.T) {
	bin := stubBinary(t, "sleep 10")
	tr := transcode.NewFFmpeg(transcode.WithBinary(bin))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Transcode(ctx, []byte("data"))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
