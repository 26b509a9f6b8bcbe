package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{
		Category:  q.Get("category"),
		Brand:     q.Get("brand"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	for name, dst := range map[string]**int64{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				return filter, errors.New("invalid " + name)
			}
			*dst = &v
		}
	}

	for name, dst := range map[string]**bool{"inStock": &filter.InStock, "isTrending": &filter.IsTrending, "isPremium": &filter.IsPremium} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, errors.New("invalid " + name)
			}
			*dst = &v
		}
	}

	for name, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				return filter, errors.New("invalid " + name)
			}
			*dst = v
		}
	}

	return filter, nil
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) HandleListTrending(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListTrending(r.Context(), 20)
	if err != nil {
		h.logger.Error("failed to list trending products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) HandleListPremium(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListPremium(r.Context(), 20)
	if err != nil {
		h.logger.Error("failed to list premium products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

type productRequest struct {
	Name               string            `json:"name" validate:"required,max=200"`
	Description        string            `json:"description" validate:"required,max=1000"`
	Price              int64             `json:"price" validate:"min=0"`
	Category           string            `json:"category" validate:"required"`
	Brand              string            `json:"brand" validate:"required"`
	ImageURL           string            `json:"image_url" validate:"required,url"`
	Images             []string          `json:"images"`
	Stock              int               `json:"stock" validate:"min=0"`
	IsPremiumExclusive bool              `json:"is_premium_exclusive"`
	IsTrending         bool              `json:"is_trending"`
	Tags               []string          `json:"tags"`
	Specifications     map[string]string `json:"specifications"`
}

func (req *productRequest) toProduct() *domain.Product {
	images := req.Images
	if len(images) == 0 {
		images = []string{req.ImageURL}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	specs := req.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return &domain.Product{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Category:           req.Category,
		Brand:              req.Brand,
		ImageURL:           req.ImageURL,
		Images:             images,
		Stock:              req.Stock,
		InStock:            req.Stock > 0,
		IsPremiumExclusive: req.IsPremiumExclusive,
		IsTrending:         req.IsTrending,
		Tags:               tags,
		Specifications:     specs,
	}
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (*productRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.writeError(w, http.StatusBadRequest, "invalid field: "+verrs[0].Field())
		} else {
			h.writeError(w, http.StatusBadRequest, "invalid request")
		}
		return nil, false
	}

	for key := range req.Specifications {
		if key == "" {
			h.writeError(w, http.StatusBadRequest, "specification keys must be non-empty")
			return nil, false
		}
	}

	return &req, true
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product := req.toProduct()
	if err := h.repo.Create(r.Context(), product); err != nil {
		h.logger.Error("failed to create product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	h.writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.repo.Update(r.Context(), id, req.toProduct())
	if err != nil {
		h.logger.Error("failed to update product", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)
	h.writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete product", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !deleted {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

type stockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

func (h *Handler) HandleSetStock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "stock must be a non-negative integer")
		return
	}

	product, err := h.repo.SetStock(r.Context(), id, *req.Stock)
	if err != nil {
		h.logger.Error("failed to set stock", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("stock updated", "product_id", id, "stock", product.Stock)
	h.writeJSON(w, http.StatusOK, map[string]any{"product": product})
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
