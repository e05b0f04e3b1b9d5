package skill

import (
	"errors"

	"github.com/john-codes/matue-skill/pkg/chat"
	"github.com/john-codes/matue-skill/pkg/store"
	"github.com/john-codes/matue-skill/pkg/transcode"
	"github.com/john-codes/matue-skill/pkg/tts"
)

// FailureKind names the terminal failure states of the chat pipeline.
// Every kind renders the same class of apology response; the kind only
// changes what is logged server-side, except TTSUpstream which carries its
// own user-facing wording.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindChatUpstream
	KindTTSUpstream
	KindTranscode
	KindStore
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case KindChatUpstream:
		return "chat_upstream_error"
	case KindTTSUpstream:
		return "tts_upstream_error"
	case KindTranscode:
		return "transcode_error"
	case KindStore:
		return "store_error"
	default:
		return "unknown_error"
	}
}

// Classify maps a stage error to its failure kind. A TTS transport failure
// is deliberately not KindTTSUpstream: only a non-success provider status
// carries the structured error body worth surfacing differently.
func Classify(err error) FailureKind {
	var chatErr *chat.UpstreamError
	if errors.As(err, &chatErr) {
		return KindChatUpstream
	}

	var ttsErr *tts.APIError
	if errors.As(err, &ttsErr) {
		return KindTTSUpstream
	}

	var procErr *transcode.ProcessError
	if errors.As(err, &procErr) {
		return KindTranscode
	}

	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return KindStore
	}

	return KindUnknown
}
