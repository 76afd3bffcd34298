package get

import (
	"net/http"

	"github.com/a-h/episodenotes/models"
	"github.com/a-h/respond"
)

func New() Handler {
	return Handler{}
}

type Handler struct{}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.HealthResponse{OK: true}, http.StatusOK)
}
