package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EpisodeNotesRequest describes the episode to generate notes for.
type EpisodeNotesRequest struct {
	ShowName    string `json:"showName" yaml:"showName"`
	Season      Int    `json:"season" yaml:"season"`
	Episode     Int    `json:"episode" yaml:"episode"`
	EpisodeName string `json:"episodeName" yaml:"episodeName"`
	Overview    string `json:"overview" yaml:"overview"`
	UserNotes   string `json:"userNotes" yaml:"userNotes"`
}

type episodeNotesRequestBody struct {
	ShowName    *string `json:"showName"`
	Season      *Int    `json:"season"`
	Episode     *Int    `json:"episode"`
	EpisodeName *string `json:"episodeName"`
	Overview    *string `json:"overview"`
	UserNotes   *string `json:"userNotes"`
}

// UnmarshalJSON requires showName, season and episode. The remaining
// fields default to the empty string when absent or null.
func (r *EpisodeNotesRequest) UnmarshalJSON(data []byte) error {
	var body episodeNotesRequestBody
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	var missing []string
	if body.ShowName == nil {
		missing = append(missing, "showName")
	}
	if body.Season == nil {
		missing = append(missing, "season")
	}
	if body.Episode == nil {
		missing = append(missing, "episode")
	}
	if len(missing) > 0 {
		return MissingFieldsError{Fields: missing}
	}
	*r = EpisodeNotesRequest{
		ShowName:    *body.ShowName,
		Season:      *body.Season,
		Episode:     *body.Episode,
		EpisodeName: valueOrEmpty(body.EpisodeName),
		Overview:    valueOrEmpty(body.Overview),
		UserNotes:   valueOrEmpty(body.UserNotes),
	}
	return nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MissingFieldsError is returned when required request fields are absent.
type MissingFieldsError struct {
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Int is an integer that can also be decoded from a JSON string such as "3".
type Int int

var ErrNotInteger = errors.New("value is not an integer")

func (i *Int) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return fmt.Errorf("%w: null", ErrNotInteger)
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.Atoi(s); err == nil {
		*i = Int(n)
		return nil
	}
	// Accept numbers like 2.0 or 1e1 that have no fractional part.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return fmt.Errorf("%w: %s", ErrNotInteger, string(data))
	}
	*i = Int(f)
	return nil
}

// EpisodeNotesResponse is the generated notes for an episode.
type EpisodeNotesResponse struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Questions []string `json:"questions"`
}

// MarshalJSON writes empty lists as [] rather than null.
func (r EpisodeNotesResponse) MarshalJSON() ([]byte, error) {
	type response EpisodeNotesResponse
	out := response(r)
	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	if out.Questions == nil {
		out.Questions = []string{}
	}
	return json.Marshal(out)
}
