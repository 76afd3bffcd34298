package notes

import (
	"strings"
	"testing"

	"github.com/a-h/episodenotes/models"
)

func TestDefaultUserPrompt(t *testing.T) {
	pf, err := NewPromptFunc(DefaultUserPrompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	actual, err := pf(models.EpisodeNotesRequest{
		ShowName:    "Foo",
		Season:      1,
		Episode:     2,
		EpisodeName: "Pilot",
		Overview:    "It begins.",
		UserNotes:   "Watch the cold open.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, expected := range []string{
		"Show: Foo\n",
		"Season: 1\n",
		"Episode: 2\n",
		"Episode name: Pilot\n",
		"Overview: It begins.\n",
		"User notes: Watch the cold open.\n",
		"Return ONLY JSON.",
	} {
		if !strings.Contains(actual, expected) {
			t.Errorf("expected prompt to contain %q, got:\n%s", expected, actual)
		}
	}
}

func TestDefaultUserPromptRendersAbsentFieldsAsEmpty(t *testing.T) {
	pf, err := NewPromptFunc(DefaultUserPrompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	actual, err := pf(models.EpisodeNotesRequest{ShowName: "Foo", Season: 1, Episode: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, expected := range []string{"Episode name: \n", "Overview: \n", "User notes: \n"} {
		if !strings.Contains(actual, expected) {
			t.Errorf("expected prompt to contain %q, got:\n%s", expected, actual)
		}
	}
}

func TestNewPromptFuncErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{
			name:     "templates that don't parse are rejected",
			template: "Show: {{.ShowName",
		},
		{
			name:     "templates that reference unknown fields are rejected",
			template: "Show: {{.Title}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPromptFunc(tt.template); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
