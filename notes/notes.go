// Package notes turns episode metadata into a chat completion request and
// the model's reply back into structured episode notes.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/a-h/episodenotes/models"
	"github.com/tmc/langchaingo/llms"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.3
)

// ErrMissingAPIKey is returned by Generate when no model has been configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is missing")

// UpstreamError wraps a failed call to the model. Its message is the
// message of the underlying error.
type UpstreamError struct {
	Err error
}

func (e UpstreamError) Error() string {
	return e.Err.Error()
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}

// NewGenerator creates a Generator. A nil llm is allowed, and causes every
// call to Generate to return ErrMissingAPIKey.
func NewGenerator(llm llms.Model, systemPrompt string, userPrompt PromptFunc, temperature float64) *Generator {
	return &Generator{
		llm:          llm,
		systemPrompt: systemPrompt,
		userPrompt:   userPrompt,
		temperature:  temperature,
	}
}

type Generator struct {
	llm          llms.Model
	systemPrompt string
	userPrompt   PromptFunc
	temperature  float64
}

// Generate makes a single call to the model. structured is false when the
// reply could not be read as JSON and the response holds the raw reply.
func (g *Generator) Generate(ctx context.Context, req models.EpisodeNotesRequest) (resp models.EpisodeNotesResponse, structured bool, err error) {
	if g.llm == nil {
		return resp, false, ErrMissingAPIKey
	}
	prompt, err := g.userPrompt(req)
	if err != nil {
		return resp, false, fmt.Errorf("failed to generate prompt: %w", err)
	}
	cr, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, g.systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, llms.WithTemperature(g.temperature))
	if err != nil {
		return resp, false, UpstreamError{Err: err}
	}
	resp, structured = ParseReply(firstChoice(cr))
	return resp, structured, nil
}

func firstChoice(cr *llms.ContentResponse) string {
	if cr == nil || len(cr.Choices) == 0 || cr.Choices[0] == nil {
		return ""
	}
	return cr.Choices[0].Content
}
