package notifications

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/messaging"
)

func testEvent() domain.OrderCreatedEvent {
	return domain.OrderCreatedEvent{
		OrderID: "order-1",
		UserID:  "user-1",
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Widget", Price: 2500, Quantity: 2},
		},
		Total:     11000,
		Timestamp: time.Now().UTC(),
	}
}

func newHandler(emailURL, apiURL string) *ReceiptHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReceiptHandler(emailURL, apiURL, "service-token", &http.Client{}, logger)
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("sends receipt and advances status", func(t *testing.T) {
		var emailBody map[string]string
		emailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/send" {
				t.Errorf("unexpected email path %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&emailBody); err != nil {
				t.Errorf("failed to decode email body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer emailSrv.Close()

		var statusPath, authHeader string
		var statusBody map[string]string
		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			statusPath = r.Method + " " + r.URL.Path
			authHeader = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&statusBody); err != nil {
				t.Errorf("failed to decode status body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer apiSrv.Close()

		h := newHandler(emailSrv.URL, apiSrv.URL)

		payload, _ := json.Marshal(testEvent())
		if err := h.Handle(ctx, payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if emailBody["to"] == "" || emailBody["body"] == "" {
			t.Fatalf("expected receipt email fields, got %v", emailBody)
		}
		if statusPath != "PATCH /orders/order-1/status" {
			t.Fatalf("unexpected status call %q", statusPath)
		}
		if authHeader != "Bearer service-token" {
			t.Fatalf("unexpected auth header %q", authHeader)
		}
		if statusBody["status"] != string(domain.OrderStatusProcessing) {
			t.Fatalf("expected status processing, got %v", statusBody)
		}
	})

	t.Run("malformed payload is permanent", func(t *testing.T) {
		h := newHandler("http://unreachable.invalid", "http://unreachable.invalid")

		err := h.Handle(ctx, []byte("not json"))
		if err == nil {
			t.Fatal("expected error for malformed payload")
		}
		if !messaging.IsPermanent(err) {
			t.Fatalf("expected permanent error, got %v", err)
		}
	})

	t.Run("email service failure is retryable", func(t *testing.T) {
		emailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer emailSrv.Close()

		h := newHandler(emailSrv.URL, "http://unreachable.invalid")

		payload, _ := json.Marshal(testEvent())
		err := h.Handle(ctx, payload)
		if err == nil {
			t.Fatal("expected error for failing email service")
		}
		if messaging.IsPermanent(err) {
			t.Fatalf("transient failure must stay retryable, got permanent: %v", err)
		}
	})

	t.Run("status update failure is retryable", func(t *testing.T) {
		emailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer emailSrv.Close()

		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer apiSrv.Close()

		h := newHandler(emailSrv.URL, apiSrv.URL)

		payload, _ := json.Marshal(testEvent())
		err := h.Handle(ctx, payload)
		if err == nil {
			t.Fatal("expected error for failing status update")
		}
		if messaging.IsPermanent(err) {
			t.Fatalf("transient failure must stay retryable, got permanent: %v", err)
		}
	})
}
