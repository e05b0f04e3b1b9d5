package store

import (
	"context"
	"fmt"
	"sync"
)

// Mock implements Uploader for testing.
type Mock struct {
	// UploadFunc is called when Upload is invoked.
	// If nil, returns a unique fake URL per call.
	UploadFunc func(ctx context.Context, data []byte, contentType string) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Upload invocation.
type MockCall struct {
	Bytes       int
	ContentType string
}

// NewMock creates a new mock store.
func NewMock() *Mock {
	return &Mock{}
}

// WithError creates a mock whose Upload always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		UploadFunc: func(ctx context.Context, data []byte, contentType string) (string, error) {
			return "", err
		},
	}
}

// Upload records the call and delegates to UploadFunc.
func (m *Mock) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Bytes: len(data), ContentType: contentType})
	n := len(m.calls)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, contentType)
	}
	return fmt.Sprintf("https://mock-bucket.s3.mock-region.amazonaws.com/mock/%d.mp3", n), nil
}

// Calls returns the recorded Upload invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Upload invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify Mock implements Uploader at compile time.
var _ Uploader = (*Mock)(nil)
