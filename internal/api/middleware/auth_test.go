package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// --- stubs ---

type stubSessions struct {
	revoked map[string]bool
	err     error
}

func (s *stubSessions) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *stubSessions) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[tokenID], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-1",
		"email": "alice@example.com",
		"role":  "employer",
		"jti":   "tok-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

// --- Auth ---

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", validClaims())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", &stubSessions{revoked: map[string]bool{}})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(KeyUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(KeyEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if c.Get(KeyRole) != "employer" {
			t.Fatalf("role not set")
		}
		if c.Get(KeyTokenID) != "tok-1" {
			t.Fatalf("token_id not set")
		}
		if exp, _ := c.Get(KeyTokenExp).(time.Time); exp.IsZero() {
			t.Fatalf("token_exp not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noSubject := validClaims()
	delete(noSubject, "sub")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"invalid header format", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + signToken(t, "other", validClaims())},
		{"expired", "Bearer " + signToken(t, "secret", expired)},
		{"no subject", "Bearer " + signToken(t, "secret", noSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runAuth(t, Auth("secret", nil), tt.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	sessions := &stubSessions{revoked: map[string]bool{"tok-1": true}}
	header := "Bearer " + signToken(t, "secret", validClaims())

	rec, called := runAuth(t, Auth("secret", sessions), header)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SessionStoreError(t *testing.T) {
	sessions := &stubSessions{err: errors.New("redis down")}
	header := "Bearer " + signToken(t, "secret", validClaims())

	rec, called := runAuth(t, Auth("secret", sessions), header)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

// --- OptionalAuth ---

func TestOptionalAuth(t *testing.T) {
	valid := "Bearer " + signToken(t, "secret", validClaims())

	tests := []struct {
		name       string
		header     string
		sessions   *stubSessions
		wantUserID string
	}{
		{"anonymous", "", nil, ""},
		{"valid token", valid, &stubSessions{revoked: map[string]bool{}}, "user-1"},
		{"invalid token", "Bearer junk", nil, ""},
		{"revoked token", valid, &stubSessions{revoked: map[string]bool{"tok-1": true}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var sessions *stubSessions
			if tt.sessions != nil {
				sessions = tt.sessions
			}
			var mw echo.MiddlewareFunc
			if sessions == nil {
				mw = OptionalAuth("secret", nil)
			} else {
				mw = OptionalAuth("secret", sessions)
			}

			var got string
			err := mw(func(c echo.Context) error {
				got, _ = c.Get(KeyUserID).(string)
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantUserID {
				t.Fatalf("expected user %q, got %q", tt.wantUserID, got)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}
