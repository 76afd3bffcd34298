package notes

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/a-h/episodenotes/models"
)

const DefaultSystemPrompt = `You are a helpful assistant for TV episode notes. Return ONLY valid JSON with keys: summary (string), key_points (array of strings), questions (array of strings).`

// DefaultUserPrompt is rendered with a models.EpisodeNotesRequest.
const DefaultUserPrompt = `
Show: {{.ShowName}}
Season: {{.Season}}
Episode: {{.Episode}}
Episode name: {{.EpisodeName}}
Overview: {{.Overview}}
User notes: {{.UserNotes}}

Generate a short summary + key points + questions.
Return ONLY JSON.
`

// PromptFunc renders the user turn for a request.
type PromptFunc func(req models.EpisodeNotesRequest) (string, error)

// NewPromptFunc parses the template and checks that it renders against a
// sample request.
func NewPromptFunc(userPrompt string) (PromptFunc, error) {
	t, err := template.New("user").Parse(userPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user prompt template: %w", err)
	}
	pf := func(req models.EpisodeNotesRequest) (string, error) {
		var sb strings.Builder
		if err := t.Execute(&sb, req); err != nil {
			return "", fmt.Errorf("failed to render user prompt: %w", err)
		}
		return sb.String(), nil
	}
	if _, err = pf(models.EpisodeNotesRequest{ShowName: "hello", Season: 1, Episode: 1}); err != nil {
		return nil, fmt.Errorf("invalid user prompt template: %w", err)
	}
	return pf, nil
}
