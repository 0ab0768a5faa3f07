package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// SessionHandler reports who is signed in and which navigation links apply.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Session returns the current session state. Authentication is optional.
//
// @Summary      Current session and navigation
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	id, ok := lookupIdentity(c)
	resp := sessionResponse{
		Authenticated: ok,
		Links:         domain.Navigation(ok),
	}
	if ok {
		resp.User = &sessionUser{ID: id.UserID, Email: id.Email, Role: string(id.Role)}
	}
	return c.JSON(http.StatusOK, resp)
}
