package cart

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/joao-fontenele/galaxy-store-api/internal/auth"
	"github.com/joao-fontenele/galaxy-store-api/internal/catalog"
	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Handler struct {
	repo     *Repository
	products *catalog.Repository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(repo *Repository, products *catalog.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		products: products,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	items, err := h.repo.GetItems(r.Context(), p.UserID)
	if err != nil {
		h.logger.Error("failed to get cart", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if items == nil {
		items = []domain.CartItem{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "product_id and a positive quantity are required")
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

	if !product.InStock || product.Stock < req.Quantity {
		h.writeError(w, http.StatusBadRequest, "insufficient stock")
		return
	}

	if err := h.repo.AddItem(r.Context(), p.UserID, req.ProductID, req.Quantity); err != nil {
		h.logger.Error("failed to add cart item", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondWithCart(w, r, p.UserID)
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "quantity must be a non-negative integer")
		return
	}

	var (
		found bool
		err   error
	)
	if *req.Quantity == 0 {
		found, err = h.repo.RemoveItem(r.Context(), p.UserID, productID)
	} else {
		found, err = h.repo.SetQuantity(r.Context(), p.UserID, productID, *req.Quantity)
	}
	if err != nil {
		h.logger.Error("failed to update cart item", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !found {
		h.writeError(w, http.StatusNotFound, "item not found in cart")
		return
	}

	h.respondWithCart(w, r, p.UserID)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	found, err := h.repo.RemoveItem(r.Context(), p.UserID, productID)
	if err != nil {
		h.logger.Error("failed to remove cart item", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !found {
		h.writeError(w, http.StatusNotFound, "item not found in cart")
		return
	}

	h.respondWithCart(w, r, p.UserID)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	if err := h.repo.Clear(r.Context(), p.UserID); err != nil {
		h.logger.Error("failed to clear cart", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"items": []domain.CartItem{}})
}

func (h *Handler) respondWithCart(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := h.repo.GetItems(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to reload cart", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if items == nil {
		items = []domain.CartItem{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"items": items})
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
