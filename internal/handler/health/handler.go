package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/codesoft-bot/backend/pkg/utils"
)

// Handler reports liveness.
type Handler struct {
	now func() time.Time
}

// New returns a health handler using the wall clock.
func New() *Handler {
	return &Handler{now: func() time.Time { return time.Now().UTC() }}
}

// RegisterRoutes mounts GET /health.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now(),
	})
}
