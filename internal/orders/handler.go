package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/joao-fontenele/galaxy-store-api/internal/auth"
	"github.com/joao-fontenele/galaxy-store-api/internal/checkout"
	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Handler struct {
	repo     *Repository
	checkout *checkout.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(repo *Repository, checkoutSvc *checkout.Service, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		checkout: checkoutSvc,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var req checkout.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.writeError(w, http.StatusBadRequest, "invalid field: "+verrs[0].Field())
		} else {
			h.writeError(w, http.StatusBadRequest, "invalid request")
		}
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), p.UserID, req)
	if err != nil {
		var notFound *domain.ProductNotFoundError
		var noStock *domain.InsufficientStockError
		var invalid *domain.ValidationError
		switch {
		case errors.As(err, &notFound):
			h.writeError(w, http.StatusNotFound, notFound.Error())
		case errors.As(err, &noStock):
			h.writeError(w, http.StatusBadRequest, noStock.Error())
		case errors.As(err, &invalid):
			h.writeError(w, http.StatusBadRequest, invalid.Error())
		default:
			h.logger.Error("failed to place order", "error", err, "user_id", p.UserID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	orders, err := h.repo.ListByUser(r.Context(), p.UserID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "user_id", p.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if order.UserID != p.UserID && !p.IsAdmin {
		h.writeError(w, http.StatusForbidden, "access denied")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Status.Valid() {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.repo.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update order status", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list all orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
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
