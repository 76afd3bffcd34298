package post

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/episodenotes/models"
	"github.com/a-h/episodenotes/notes"
	"github.com/a-h/respond"
)

type Generator interface {
	Generate(ctx context.Context, req models.EpisodeNotesRequest) (resp models.EpisodeNotesResponse, structured bool, err error)
}

func New(log *slog.Logger, generator Generator) Handler {
	return Handler{
		log:       log,
		generator: generator,
	}
}

type Handler struct {
	log       *slog.Logger
	generator Generator
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.EpisodeNotesRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Warn("failed to decode body", slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Detail: err.Error()}, http.StatusUnprocessableEntity)
		return
	}

	resp, structured, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, notes.ErrMissingAPIKey) {
			h.log.Error("no API key configured")
		} else {
			h.log.Error("failed to generate notes", slog.Any("error", err))
		}
		respond.WithJSON(w, models.ErrorResponse{Detail: err.Error()}, http.StatusInternalServerError)
		return
	}
	if !structured {
		h.log.Warn("model reply was not JSON, returning raw text",
			slog.String("show", req.ShowName),
			slog.Int("season", int(req.Season)),
			slog.Int("episode", int(req.Episode)),
			slog.Int("replyLength", len(resp.Summary)))
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
