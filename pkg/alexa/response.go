package alexa

import (
	"fmt"
	"strings"
)

// ResponseEnvelope is the outbound response object for the Alexa platform.
// Build one with NewResponseBuilder; it is never mutated after Build.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          Response       `json:"response"`
}

// Response holds the speech, card and session directives of a reply.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

// OutputSpeech is SSML to be rendered by the device.
type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

// Card is the visible companion-app card.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Reprompt is spoken when the user stays silent with the session open.
type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech,omitempty"`
}

// SSML wraps text in a <speak> root element unless it already has one.
func SSML(text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "<speak>") {
		return text
	}
	return "<speak>" + text + "</speak>"
}

// AudioSSML builds a speech document that plays the audio at url.
func AudioSSML(url string) string {
	return fmt.Sprintf(`<speak><audio src="%s" /></speak>`, url)
}

// ResponseBuilder assembles a ResponseEnvelope. The zero value keeps the
// session open only when WithShouldEndSession(false) is called, matching
// the platform's default of ending the session.
type ResponseBuilder struct {
	speech     string
	reprompt   string
	card       *Card
	endSession *bool
}

// NewResponseBuilder returns an empty builder.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// Speak sets the spoken output. Plain text is wrapped in SSML.
func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.speech = SSML(text)
	return b
}

// Reprompt sets the reprompt speech. Plain text is wrapped in SSML.
func (b *ResponseBuilder) Reprompt(text string) *ResponseBuilder {
	b.reprompt = SSML(text)
	return b
}

// WithSimpleCard attaches a simple card with the given title and body.
func (b *ResponseBuilder) WithSimpleCard(title, content string) *ResponseBuilder {
	b.card = &Card{Type: "Simple", Title: title, Content: content}
	return b
}

// WithShouldEndSession sets whether the session closes after this response.
func (b *ResponseBuilder) WithShouldEndSession(end bool) *ResponseBuilder {
	b.endSession = &end
	return b
}

// Build renders the envelope.
func (b *ResponseBuilder) Build() *ResponseEnvelope {
	env := &ResponseEnvelope{Version: "1.0"}
	if b.speech != "" {
		env.Response.OutputSpeech = &OutputSpeech{Type: "SSML", SSML: b.speech}
	}
	if b.reprompt != "" {
		env.Response.Reprompt = &Reprompt{
			OutputSpeech: &OutputSpeech{Type: "SSML", SSML: b.reprompt},
		}
	}
	env.Response.Card = b.card
	env.Response.ShouldEndSession = b.endSession
	return env
}
