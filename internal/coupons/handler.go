package coupons

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Handler struct {
	repo     *Repository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(repo *Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

type validateResponse struct {
	Valid  bool         `json:"valid"`
	Coupon couponDetail `json:"coupon"`
}

type couponDetail struct {
	Code        string            `json:"code"`
	Type        domain.CouponType `json:"type"`
	Value       int64             `json:"value"`
	Description string            `json:"description"`
}

// HandleValidate is the public "check my code" endpoint. It never mutates
// the usage counter; redemption is accounted for at checkout.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "missing coupon code")
		return
	}

	coupon, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		h.logger.Error("failed to get coupon", "error", err, "code", code)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if coupon == nil || !coupon.ValidForUse(time.Now().UTC()) {
		h.writeError(w, http.StatusNotFound, "invalid or expired coupon")
		return
	}

	h.writeJSON(w, http.StatusOK, validateResponse{
		Valid: true,
		Coupon: couponDetail{
			Code:        coupon.Code,
			Type:        coupon.Type,
			Value:       coupon.Value,
			Description: coupon.Description,
		},
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list coupons", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if coupons == nil {
		coupons = []domain.Coupon{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"coupons": coupons})
}

type couponRequest struct {
	Code        string     `json:"code" validate:"required,min=3,max=20"`
	Type        string     `json:"type" validate:"required,oneof=percentage fixed shipping"`
	Value       int64      `json:"value" validate:"min=0"`
	Description string     `json:"description" validate:"required,max=200"`
	IsActive    *bool      `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	MaxUsage    *int       `json:"max_usage" validate:"omitempty,min=1"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := &domain.Coupon{
		Code:        req.Code,
		Type:        domain.CouponType(req.Type),
		Value:       req.Value,
		Description: req.Description,
		IsActive:    isActive,
		ExpiresAt:   req.ExpiresAt,
		MaxUsage:    req.MaxUsage,
	}

	if err := h.repo.Create(r.Context(), coupon); err != nil {
		if errors.Is(err, ErrCodeExists) {
			h.writeError(w, http.StatusBadRequest, "coupon code already exists")
			return
		}
		h.logger.Error("failed to create coupon", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("coupon created", "code", coupon.Code, "type", coupon.Type)
	h.writeJSON(w, http.StatusCreated, map[string]any{"coupon": coupon})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing coupon id")
		return
	}

	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.StructExcept(req, "Code"); err != nil {
		h.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon, err := h.repo.Update(r.Context(), id, &domain.Coupon{
		Type:        domain.CouponType(req.Type),
		Value:       req.Value,
		Description: req.Description,
		IsActive:    isActive,
		ExpiresAt:   req.ExpiresAt,
		MaxUsage:    req.MaxUsage,
	})
	if err != nil {
		h.logger.Error("failed to update coupon", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if coupon == nil {
		h.writeError(w, http.StatusNotFound, "coupon not found")
		return
	}

	h.logger.Info("coupon updated", "code", coupon.Code)
	h.writeJSON(w, http.StatusOK, map[string]any{"coupon": coupon})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing coupon id")
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete coupon", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !deleted {
		h.writeError(w, http.StatusNotFound, "coupon not found")
		return
	}

	h.logger.Info("coupon deleted", "id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "coupon deleted"})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid field: " + verrs[0].Field()
	}
	return "invalid request"
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
