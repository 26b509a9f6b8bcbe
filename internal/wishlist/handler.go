package wishlist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/galaxy-store-api/internal/auth"
	"github.com/joao-fontenele/galaxy-store-api/internal/catalog"
	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Handler struct {
	repo     *Repository
	products *catalog.Repository
	logger   *slog.Logger
}

func NewHandler(repo *Repository, products *catalog.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	items, err := h.repo.List(r.Context(), p.UserID)
	if err != nil {
		h.logger.Error("failed to list wishlist", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if items == nil {
		items = []domain.WishlistItem{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type addRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product_id", req.ProductID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.repo.Add(r.Context(), p.UserID, req.ProductID); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			h.writeError(w, http.StatusBadRequest, "product already in wishlist")
			return
		}
		h.logger.Error("failed to add wishlist item", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("wishlist item added", "user_id", p.UserID, "product_id", req.ProductID)
	h.writeJSON(w, http.StatusCreated, map[string]string{"message": "product added to wishlist"})
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	removed, err := h.repo.Remove(r.Context(), p.UserID, productID)
	if err != nil {
		h.logger.Error("failed to remove wishlist item", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !removed {
		h.writeError(w, http.StatusNotFound, "item not found in wishlist")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "product removed from wishlist"})
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
