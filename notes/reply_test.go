package notes

import (
	"testing"

	"github.com/a-h/episodenotes/models"
	"github.com/google/go-cmp/cmp"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name               string
		text               string
		expected           models.EpisodeNotesResponse
		expectedStructured bool
	}{
		{
			name: "all fields are read verbatim",
			text: `{"summary":"A pilot.","key_points":["intro"],"questions":["who?"]}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "A pilot.",
				KeyPoints: []string{"intro"},
				Questions: []string{"who?"},
			},
			expectedStructured: true,
		},
		{
			name: "text that isn't JSON is returned as the summary",
			text: "Sorry, here's my answer: great show!",
			expected: models.EpisodeNotesResponse{
				Summary:   "Sorry, here's my answer: great show!",
				KeyPoints: []string{},
				Questions: []string{},
			},
		},
		{
			name: "JSON in a code fence is not parsed",
			text: "```json\n{\"summary\":\"A pilot.\"}\n```",
			expected: models.EpisodeNotesResponse{
				Summary:   "```json\n{\"summary\":\"A pilot.\"}\n```",
				KeyPoints: []string{},
				Questions: []string{},
			},
		},
		{
			name: "an empty reply is degraded",
			text: "",
			expected: models.EpisodeNotesResponse{
				Summary:   "",
				KeyPoints: []string{},
				Questions: []string{},
			},
		},
		{
			name: "JSON that isn't an object is degraded",
			text: `["intro","outro"]`,
			expected: models.EpisodeNotesResponse{
				Summary:   `["intro","outro"]`,
				KeyPoints: []string{},
				Questions: []string{},
			},
		},
		{
			name: "a JSON null is degraded",
			text: `null`,
			expected: models.EpisodeNotesResponse{
				Summary:   `null`,
				KeyPoints: []string{},
				Questions: []string{},
			},
		},
		{
			name: "missing fields default to empty",
			text: `{}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "",
				KeyPoints: []string{},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "null fields default to empty",
			text: `{"summary":null,"key_points":null,"questions":null}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "",
				KeyPoints: []string{},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "non-string summaries are converted to JSON text",
			text: `{"summary":{"short": "A pilot."},"key_points":[],"questions":[]}`,
			expected: models.EpisodeNotesResponse{
				Summary:   `{"short":"A pilot."}`,
				KeyPoints: []string{},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "numeric summaries are converted to text",
			text: `{"summary":42}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "42",
				KeyPoints: []string{},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "list elements are converted to text and nulls are dropped",
			text: `{"summary":"s","key_points":["a",1,true,null,{"b":2}],"questions":[]}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "s",
				KeyPoints: []string{"a", "1", "true", `{"b":2}`},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "a string in place of a list becomes a single item",
			text: `{"summary":"s","key_points":"only one","questions":"why?"}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "s",
				KeyPoints: []string{"only one"},
				Questions: []string{"why?"},
			},
			expectedStructured: true,
		},
		{
			name: "other values in place of a list become empty lists",
			text: `{"summary":"s","key_points":3,"questions":{"a":"b"}}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "s",
				KeyPoints: []string{},
				Questions: []string{},
			},
			expectedStructured: true,
		},
		{
			name: "unknown fields are ignored",
			text: `{"summary":"s","key_points":["k"],"questions":["q"],"rating":5}`,
			expected: models.EpisodeNotesResponse{
				Summary:   "s",
				KeyPoints: []string{"k"},
				Questions: []string{"q"},
			},
			expectedStructured: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, structured := ParseReply(tt.text)
			if structured != tt.expectedStructured {
				t.Errorf("expected structured=%v, got %v", tt.expectedStructured, structured)
			}
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Error(diff)
			}
		})
	}
}
