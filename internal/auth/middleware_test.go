package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func newTestMiddleware() *Middleware {
	return NewMiddleware(testSecret, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRequire(t *testing.T) {
	mw := newTestMiddleware()

	echo := func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("expected principal in context")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(p.UserID))
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "user-1"}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Require(echo)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if rec.Body.String() != "user-1" {
			t.Errorf("expected user-1, got %s", rec.Body.String())
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()

		mw.Require(echo)(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}

		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["error"] == "" {
			t.Error("expected error message in body")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "user-1"}, -time.Minute)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Require(echo)(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token, err := SignToken([]byte("other-secret"), Principal{UserID: "user-1"}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Require(echo)(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	mw := newTestMiddleware()

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("admin passes", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "admin-1", IsAdmin: true}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/coupons", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.RequireAdmin(ok)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "user-1"}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/coupons", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.RequireAdmin(ok)(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}
	})
}

func TestRequirePremium(t *testing.T) {
	mw := newTestMiddleware()

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("admin passes without premium flag", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "admin-1", IsAdmin: true}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/products/premium", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.RequirePremium(ok)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("regular member forbidden", func(t *testing.T) {
		token, err := SignToken(testSecret, Principal{UserID: "user-1"}, time.Hour)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/products/premium", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.RequirePremium(ok)(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}
	})
}
