// Package skill wires the Alexa request router to the chat → synthesize →
// transcode → upload pipeline and owns the failure policy for the chain.
//
// Each invocation is handled independently and entirely sequentially: no
// stage runs out of order, each stage's output is the next stage's sole
// input, and a failed stage short-circuits everything after it. Whatever
// happens, dispatch always yields a valid response; failure detail is
// logged server-side only.
package skill

import (
	"errors"
	"log/slog"

	"github.com/john-codes/matue-skill/pkg/alexa"
	"github.com/john-codes/matue-skill/pkg/chat"
	"github.com/john-codes/matue-skill/pkg/store"
	"github.com/john-codes/matue-skill/pkg/transcode"
	"github.com/john-codes/matue-skill/pkg/tts"
)

// SlotQuery is the slot carrying the user utterance on ChatIntent.
const SlotQuery = "query"

// User-facing skill texts, matching the published skill.
const (
	cardTitle = "Matuê"

	repromptText  = "Qual é a boa?"
	helpText      = `Você pode dizer algo como: "Pergunte ao Matuê qual a boa."`
	goodbyeText   = "Valeu, falou!"
	fallbackText  = "Desculpe, não entendi bem. Pode tentar de novo?"
	apologyText   = "Desculpe, ocorreu um erro ao processar sua solicitação."
	retryReprompt = "Pode repetir, por favor?"
	audioFailText = "Desculpe, ocorreu um erro ao gerar o áudio."
	defectText    = "Desculpe, ocorreu um erro. Por favor, tente novamente."
)

// audioContentType is the content type of every stored artifact.
const audioContentType = "audio/mpeg"

// ErrMissingDependency is returned by New when a pipeline component is nil.
var ErrMissingDependency = errors.New("skill: all pipeline components are required")

// Config holds the skill's collaborators. Every field except Logger is
// required; components are injected so tests can swap in fakes.
type Config struct {
	Chat       chat.Completer
	TTS        tts.Synthesizer
	Transcoder transcode.Transcoder
	Store      store.Uploader

	// WelcomeAudioURL is the fixed audio played on session launch.
	WelcomeAudioURL string

	Logger *slog.Logger
}

// Skill is the pipeline orchestrator behind the Alexa request router.
type Skill struct {
	chat       chat.Completer
	tts        tts.Synthesizer
	transcoder transcode.Transcoder
	store      store.Uploader
	welcomeURL string
	logger     *slog.Logger
}

// New creates the skill from its collaborators.
func New(cfg Config) (*Skill, error) {
	if cfg.Chat == nil || cfg.TTS == nil || cfg.Transcoder == nil || cfg.Store == nil {
		return nil, ErrMissingDependency
	}
	if cfg.WelcomeAudioURL == "" {
		return nil, errors.New("skill: welcome audio URL required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Skill{
		chat:       cfg.Chat,
		tts:        cfg.TTS,
		transcoder: cfg.Transcoder,
		store:      cfg.Store,
		welcomeURL: cfg.WelcomeAudioURL,
		logger:     logger.With("component", "skill"),
	}, nil
}

// Router builds the request router with one route per request shape the
// skill declares, in priority order, plus the universal error handler.
func (s *Skill) Router() *alexa.Router {
	r := alexa.NewRouter(s.logger)

	r.Handle(alexa.TypeIs(alexa.TypeLaunchRequest), s.handleLaunch)
	r.Handle(alexa.IntentIs(alexa.IntentChat), s.handleChat)
	r.Handle(alexa.IntentIs(alexa.IntentHelp), s.handleHelp)
	r.Handle(alexa.IntentIs(alexa.IntentCancel, alexa.IntentStop), s.handleCancelStop)
	r.Handle(alexa.IntentIs(alexa.IntentFallback), s.handleFallback)
	r.Handle(alexa.TypeIs(alexa.TypeSessionEndedRequest), s.handleSessionEnded)

	r.OnError(s.handleError)

	return r
}
