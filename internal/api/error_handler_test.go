package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"job not found", domain.ErrJobNotFound, http.StatusNotFound, "job not found"},
		{"wrapped resume error hides detail", fmt.Errorf("%w: xref missing", domain.ErrInvalidResume), http.StatusUnprocessableEntity, domain.ErrInvalidResume.Error()},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"bad login", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"role locked", domain.ErrRoleAlreadySet, http.StatusConflict, "role already set"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, domain.ErrFileTooLarge.Error()},
		{"missing resume", domain.ErrResumeRequired, http.StatusBadRequest, domain.ErrResumeRequired.Error()},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"), http.StatusUnprocessableEntity, "title is required"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}
