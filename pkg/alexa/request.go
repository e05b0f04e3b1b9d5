// Package alexa implements the Alexa Skills Kit request/response envelope
// and a predicate-based request router.
//
// The platform delivers one request envelope per invocation. Handlers are
// plain functions registered with a match predicate; the first matching
// route wins and every dispatch yields a well-formed response, even when a
// handler fails.
package alexa

import "encoding/json"

// Request types delivered by the platform.
const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

// Intent names handled by this skill.
const (
	IntentChat     = "ChatIntent"
	IntentHelp     = "AMAZON.HelpIntent"
	IntentCancel   = "AMAZON.CancelIntent"
	IntentStop     = "AMAZON.StopIntent"
	IntentFallback = "AMAZON.FallbackIntent"
)

// RequestEnvelope is the inbound request object from the Alexa platform.
// It is created by the platform per invocation and consumed once.
type RequestEnvelope struct {
	Version string          `json:"version"`
	Session *Session        `json:"session,omitempty"`
	Context json.RawMessage `json:"context,omitempty"`
	Request Request         `json:"request"`
}

// Session carries per-conversation state from the platform.
type Session struct {
	New        bool              `json:"new"`
	SessionID  string            `json:"sessionId"`
	Attributes map[string]any    `json:"attributes,omitempty"`
	User       map[string]string `json:"user,omitempty"`
}

// Request is the tagged union over the request shapes this skill handles:
// LaunchRequest, IntentRequest and SessionEndedRequest.
type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`

	// SessionEndedRequest only
	Reason string        `json:"reason,omitempty"`
	Error  *SessionError `json:"error,omitempty"`
}

// Intent is a named user goal with optional slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is a named string parameter extracted from the utterance by the
// platform's language model.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionError describes why a session ended abnormally.
type SessionError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RequestType returns the request type of the envelope.
func RequestType(env *RequestEnvelope) string {
	if env == nil {
		return ""
	}
	return env.Request.Type
}

// IntentName returns the intent name, or "" for non-intent requests.
func IntentName(env *RequestEnvelope) string {
	if env == nil || env.Request.Intent == nil {
		return ""
	}
	return env.Request.Intent.Name
}

// SlotValue returns the value of the named slot, or "" when the slot is
// absent or unfilled. An empty slot value is valid, not an error.
func SlotValue(env *RequestEnvelope, name string) string {
	if env == nil || env.Request.Intent == nil {
		return ""
	}
	return env.Request.Intent.Slots[name].Value
}
