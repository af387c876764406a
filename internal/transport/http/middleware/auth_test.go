package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leavehub/internal/domain/auth"
)

func protectedHandler(t *testing.T, wantEmployeeID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if wantEmployeeID == "" {
			if ok {
				t.Error("expected no identity in context")
			}
		} else if identity.EmployeeID != wantEmployeeID {
			t.Errorf("expected employee %q, got %q", wantEmployeeID, identity.EmployeeID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthParsesBearerToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", auth.Identity{EmployeeID: "E1", IsAdmin: true}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := Auth("secret")(protectedHandler(t, "E1"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthIgnoresBadToken(t *testing.T) {
	handler := Auth("secret")(protectedHandler(t, ""))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(protectedHandler(t, ""))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	token, err := auth.GenerateToken("secret", auth.Identity{EmployeeID: "E1", IsAdmin: false}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := Auth("secret")(RequireAdmin(protectedHandler(t, "")))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("expected request id in context")
		}
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetRequestID(r.Context()); got != "abc-123" {
			t.Errorf("expected propagated request id, got %q", got)
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
