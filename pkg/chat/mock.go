package chat

import (
	"context"
	"sync"
)

// Mock implements Completer for testing.
type Mock struct {
	// ReplyFunc is called when Reply is invoked.
	// If nil, returns a fixed reply.
	ReplyFunc func(ctx context.Context, utterance string) (string, error)

	mu    sync.Mutex
	calls []string
}

// NewMock creates a mock that echoes a fixed reply.
func NewMock() *Mock {
	return &Mock{}
}

// WithError creates a mock whose Reply always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		ReplyFunc: func(ctx context.Context, utterance string) (string, error) {
			return "", err
		},
	}
}

// Reply records the call and delegates to ReplyFunc.
func (m *Mock) Reply(ctx context.Context, utterance string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, utterance)
	m.mu.Unlock()

	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, utterance)
	}
	return "mock reply", nil
}

// Calls returns the utterances Reply was invoked with.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Reply invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify Mock implements Completer at compile time.
var _ Completer = (*Mock)(nil)
