package skill

import (
	"context"

	"github.com/john-codes/matue-skill/pkg/alexa"
)

// handleLaunch plays the fixed welcome audio and keeps the session open.
func (s *Skill) handleLaunch(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().
		Speak(alexa.AudioSSML(s.welcomeURL)).
		Reprompt(repromptText).
		WithShouldEndSession(false).
		Build(), nil
}

// handleChat runs the full pipeline for a user query:
// extract utterance → chat reply → synthesize → transcode → upload → SSML.
// Stage failures never propagate; they are converted into the apology
// response here, with the detail logged server-side only.
func (s *Skill) handleChat(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	// An unfilled slot yields "", which is forwarded as-is.
	query := alexa.SlotValue(env, SlotQuery)
	s.logger.Info("chat query", "query", query)

	reply, err := s.chat.Reply(ctx, query)
	if err != nil {
		return s.failure(err), nil
	}
	s.logger.Info("chat reply", "reply", reply)

	audio, err := s.tts.Synthesize(ctx, reply)
	if err != nil {
		return s.failure(err), nil
	}

	encoded, err := s.transcoder.Transcode(ctx, audio)
	if err != nil {
		return s.failure(err), nil
	}

	url, err := s.store.Upload(ctx, encoded, audioContentType)
	if err != nil {
		return s.failure(err), nil
	}
	s.logger.Info("audio published", "url", url)

	return alexa.NewResponseBuilder().
		Speak(alexa.AudioSSML(url)).
		WithSimpleCard(cardTitle, reply).
		Reprompt(repromptText).
		WithShouldEndSession(false).
		Build(), nil
}

// handleHelp explains how to invoke the skill.
func (s *Skill) handleHelp(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().
		Speak(helpText).
		Reprompt(helpText).
		WithShouldEndSession(false).
		Build(), nil
}

// handleCancelStop says goodbye and closes the session.
func (s *Skill) handleCancelStop(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().
		Speak(goodbyeText).
		WithShouldEndSession(true).
		Build(), nil
}

// handleFallback asks the user to try again.
func (s *Skill) handleFallback(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	return alexa.NewResponseBuilder().
		Speak(fallbackText).
		Reprompt(fallbackText).
		WithShouldEndSession(false).
		Build(), nil
}

// handleSessionEnded acknowledges the end of session. The platform ignores
// the body, so an empty envelope is returned.
func (s *Skill) handleSessionEnded(ctx context.Context, env *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	if env.Request.Error != nil {
		s.logger.Warn("session ended with error",
			"reason", env.Request.Reason,
			"error_type", env.Request.Error.Type,
			"error_message", env.Request.Error.Message,
		)
	}
	return alexa.NewResponseBuilder().Build(), nil
}

// handleError is the router-level last line of defense for defects not
// raised as a pipeline failure kind.
func (s *Skill) handleError(ctx context.Context, env *alexa.RequestEnvelope, err error) *alexa.ResponseEnvelope {
	s.logger.Error("dispatch error",
		"request_type", alexa.RequestType(env),
		"intent", alexa.IntentName(env),
		"error", err,
	)
	return alexa.NewResponseBuilder().
		Speak(defectText).
		Reprompt(defectText).
		WithShouldEndSession(false).
		Build()
}

// failure renders the user-facing response for a pipeline stage error.
// All kinds share the generic apology except TTSUpstream, whose provider
// already surfaced a structured error body worth distinct wording.
func (s *Skill) failure(err error) *alexa.ResponseEnvelope {
	kind := Classify(err)
	s.logger.Error("pipeline failed", "kind", kind.String(), "error", err)

	if kind == KindTTSUpstream {
		return alexa.NewResponseBuilder().
			Speak(audioFailText).
			WithShouldEndSession(false).
			Build()
	}

	return alexa.NewResponseBuilder().
		Speak(apologyText).
		Reprompt(retryReprompt).
		WithShouldEndSession(false).
		Build()
}
