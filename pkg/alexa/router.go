package alexa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoHandler is returned when no registered predicate matches a request.
// Every request type the skill declares must have a route, so hitting this
// is a configuration defect; the error handler still converts it into a
// valid response.
var ErrNoHandler = errors.New("alexa: no handler matched request")

// HandlerFunc produces the response for a matched request.
type HandlerFunc func(ctx context.Context, env *RequestEnvelope) (*ResponseEnvelope, error)

// Predicate reports whether a route should handle the request.
type Predicate func(env *RequestEnvelope) bool

// ErrorHandlerFunc converts a dispatch failure into a user-facing response.
// It must always return a valid envelope; nothing propagates to the platform.
type ErrorHandlerFunc func(ctx context.Context, env *RequestEnvelope, err error) *ResponseEnvelope

type route struct {
	match  Predicate
	handle HandlerFunc
}

// Router dispatches a request envelope to the first route whose predicate
// matches, in registration order. A universal error handler wraps the whole
// dispatch: handler errors, unmatched requests and handler panics all
// become the error handler's response.
type Router struct {
	routes  []route
	onError ErrorHandlerFunc
	logger  *slog.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger.With("component", "alexa.router")}
}

// Handle registers a route. Routes are evaluated in registration order and
// the first match wins, so register the most specific predicates first.
func (r *Router) Handle(match Predicate, fn HandlerFunc) {
	r.routes = append(r.routes, route{match: match, handle: fn})
}

// OnError sets the universal error handler.
func (r *Router) OnError(fn ErrorHandlerFunc) {
	r.onError = fn
}

// Dispatch routes the request and always returns a valid response.
func (r *Router) Dispatch(ctx context.Context, env *RequestEnvelope) (resp *ResponseEnvelope) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("handler panic", "panic", rec, "request_type", RequestType(env))
			resp = r.fail(ctx, env, fmt.Errorf("alexa: handler panic: %v", rec))
		}
	}()

	for _, rt := range r.routes {
		if !rt.match(env) {
			continue
		}
		out, err := rt.handle(ctx, env)
		if err != nil {
			return r.fail(ctx, env, err)
		}
		return out
	}

	r.logger.Error("no handler matched",
		"request_type", RequestType(env),
		"intent", IntentName(env),
	)
	return r.fail(ctx, env, ErrNoHandler)
}

func (r *Router) fail(ctx context.Context, env *RequestEnvelope, err error) *ResponseEnvelope {
	if r.onError != nil {
		return r.onError(ctx, env, err)
	}
	r.logger.Error("dispatch failed with no error handler registered", "error", err)
	return NewResponseBuilder().
		Speak("Desculpe, ocorreu um erro. Por favor, tente novamente.").
		WithShouldEndSession(false).
		Build()
}

// TypeIs matches requests of the given type.
func TypeIs(requestType string) Predicate {
	return func(env *RequestEnvelope) bool {
		return RequestType(env) == requestType
	}
}

// IntentIs matches intent requests carrying one of the given intent names.
func IntentIs(names ...string) Predicate {
	return func(env *RequestEnvelope) bool {
		if RequestType(env) != TypeIntentRequest {
			return false
		}
		got := IntentName(env)
		for _, name := range names {
			if got == name {
				return true
			}
		}
		return false
	}
}
