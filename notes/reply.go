package notes

import (
	"bytes"
	"encoding/json"

	"github.com/a-h/episodenotes/models"
)

// ParseReply reads the model's reply text as a JSON object with summary,
// key_points and questions fields.
//
// If the text is not a JSON object, structured is false and the response
// holds the raw text as its summary with empty lists. The caller never
// receives an error for a badly formatted reply.
//
// Fields are coerced rather than validated:
//
//   - summary: strings are used as-is, null or absent is "", anything else
//     is its JSON text.
//   - key_points, questions: each array element is converted with the
//     summary rule, with null elements dropped. A single string becomes a
//     one-element list. Anything else is an empty list.
func ParseReply(text string) (resp models.EpisodeNotesResponse, structured bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		return degraded(text), false
	}
	resp.Summary, _ = coerceText(fields["summary"])
	resp.KeyPoints = coerceTextList(fields["key_points"])
	resp.Questions = coerceTextList(fields["questions"])
	return resp, true
}

func degraded(text string) models.EpisodeNotesResponse {
	return models.EpisodeNotesResponse{
		Summary:   text,
		KeyPoints: []string{},
		Questions: []string{},
	}
}

var null = []byte("null")

// coerceText returns false for absent or null values.
func coerceText(raw json.RawMessage) (s string, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return "", false
	}
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw), true
	}
	return compact.String(), true
}

func coerceTextList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	list := []string{}
	if len(raw) == 0 {
		return list
	}
	switch raw[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return list
		}
		for _, e := range elements {
			if s, ok := coerceText(e); ok {
				list = append(list, s)
			}
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			list = append(list, s)
		}
	}
	return list
}
