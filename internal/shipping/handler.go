package shipping

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Handler struct {
	repo   *Repository
	logger *slog.Logger
}

func NewHandler(repo *Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) HandleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repo.ListActive(r.Context())
	if err != nil {
		h.logger.Error("failed to list shipping locations", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if locations == nil {
		locations = []domain.ShippingLocation{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
