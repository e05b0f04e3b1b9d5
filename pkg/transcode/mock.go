package transcode

import (
	"context"
	"sync"
)

// Mock implements Transcoder for testing.
type Mock struct {
	// TranscodeFunc is called when Transcode is invoked.
	// If nil, returns the input unchanged.
	TranscodeFunc func(ctx context.Context, input []byte) ([]byte, error)

	mu    sync.Mutex
	calls int
}

// NewMock creates a passthrough mock transcoder.
func NewMock() *Mock {
	return &Mock{}
}

// WithError creates a mock whose Transcode always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		TranscodeFunc: func(ctx context.Context, input []byte) ([]byte, error) {
			return nil, err
		},
	}
}

// Transcode records the call and delegates to TranscodeFunc.
func (m *Mock) Transcode(ctx context.Context, input []byte) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.TranscodeFunc != nil {
		return m.TranscodeFunc(ctx, input)
	}
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// CallCount returns the number of Transcode invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Transcoder at compile time.
var _ Transcoder = (*Mock)(nil)
