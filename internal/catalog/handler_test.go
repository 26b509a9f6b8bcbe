package catalog

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func newTestHandler() *Handler {
	return &Handler{
		validate: validator.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestParseListFilter(t *testing.T) {
	t.Run("parses all parameters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet,
			"/products?category=Electronics&minPrice=1000&maxPrice=5000&inStock=true&page=2&limit=10&sortBy=price&sortOrder=desc", nil)

		filter, err := parseListFilter(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filter.Category != "Electronics" {
			t.Fatalf("expected category Electronics, got %q", filter.Category)
		}
		if filter.MinPrice == nil || *filter.MinPrice != 1000 {
			t.Fatalf("expected minPrice 1000, got %v", filter.MinPrice)
		}
		if filter.MaxPrice == nil || *filter.MaxPrice != 5000 {
			t.Fatalf("expected maxPrice 5000, got %v", filter.MaxPrice)
		}
		if filter.InStock == nil || !*filter.InStock {
			t.Fatalf("expected inStock true, got %v", filter.InStock)
		}
		if filter.Page != 2 || filter.Limit != 10 {
			t.Fatalf("expected page 2 limit 10, got %d/%d", filter.Page, filter.Limit)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/products?minPrice=-5", nil)
		if _, err := parseListFilter(r); err == nil {
			t.Fatal("expected error for negative minPrice")
		}
	})

	t.Run("rejects zero page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/products?page=0", nil)
		if _, err := parseListFilter(r); err == nil {
			t.Fatal("expected error for page 0")
		}
	})
}

func TestProductRequestToProduct(t *testing.T) {
	t.Run("derives in_stock from stock", func(t *testing.T) {
		req := &productRequest{Stock: 5}
		if p := req.toProduct(); !p.InStock {
			t.Fatal("expected in_stock true for stock 5")
		}

		req = &productRequest{Stock: 0}
		if p := req.toProduct(); p.InStock {
			t.Fatal("expected in_stock false for stock 0")
		}
	})

	t.Run("defaults images to image_url", func(t *testing.T) {
		req := &productRequest{ImageURL: "https://example.com/a.png"}
		p := req.toProduct()
		if len(p.Images) != 1 || p.Images[0] != req.ImageURL {
			t.Fatalf("expected images to default to image_url, got %v", p.Images)
		}
	})
}

func TestDecodeProductRejectsEmptySpecificationKey(t *testing.T) {
	h := newTestHandler()

	body := `{
		"name": "Widget",
		"description": "a widget",
		"price": 1000,
		"category": "Test",
		"brand": "Acme",
		"image_url": "https://example.com/w.png",
		"stock": 3,
		"specifications": {"": "oops"}
	}`
	r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	if _, ok := h.decodeProduct(rec, r); ok {
		t.Fatal("expected decode to fail on empty specification key")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
