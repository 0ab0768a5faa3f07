package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/api/middleware"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// identity is the caller as described by the Auth middleware.
type identity struct {
	UserID   string
	Email    string
	Role     domain.Role
	TokenID  string
	TokenExp time.Time
}

// ctxIdentity extracts the claims injected by Auth. A missing user id means
// the middleware did not run or the route is anonymous.
func ctxIdentity(c echo.Context) (identity, error) {
	id, ok := lookupIdentity(c)
	if !ok {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func lookupIdentity(c echo.Context) (identity, bool) {
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if userID == "" {
		return identity{}, false
	}
	email, _ := c.Get(middleware.KeyEmail).(string)
	role, _ := c.Get(middleware.KeyRole).(string)
	tokenID, _ := c.Get(middleware.KeyTokenID).(string)
	exp, _ := c.Get(middleware.KeyTokenExp).(time.Time)
	return identity{
		UserID:   userID,
		Email:    email,
		Role:     domain.Role(role),
		TokenID:  tokenID,
		TokenExp: exp,
	}, true
}
