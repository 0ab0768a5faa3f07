package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// Context keys set by Auth and OptionalAuth.
const (
	KeyUserID   = "user_id"
	KeyEmail    = "email"
	KeyRole     = "role"
	KeyTokenID  = "token_id"
	KeyTokenExp = "token_exp"
)

// Auth validates the JWT, rejects revoked sessions and injects claims into
// context. sessions may be nil, in which case revocation is not checked.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw, ok := bearerToken(authHeader)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parseToken(raw, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if sessions != nil && claims.tokenID != "" {
				revoked, err := sessions.IsRevoked(c.Request().Context(), claims.tokenID)
				if err != nil {
					return fmt.Errorf("check session: %w", err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
				}
			}

			claims.apply(c)
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a valid, live token is presented and
// otherwise lets the request through anonymously.
func OptionalAuth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return next(c)
			}
			claims, err := parseToken(raw, jwtSecret)
			if err != nil {
				return next(c)
			}
			if sessions != nil && claims.tokenID != "" {
				if revoked, err := sessions.IsRevoked(c.Request().Context(), claims.tokenID); err != nil || revoked {
					return next(c)
				}
			}
			claims.apply(c)
			return next(c)
		}
	}
}

type tokenClaims struct {
	userID    string
	email     string
	role      string
	tokenID   string
	expiresAt time.Time
}

func (t tokenClaims) apply(c echo.Context) {
	c.Set(KeyUserID, t.userID)
	c.Set(KeyEmail, t.email)
	c.Set(KeyRole, t.role)
	c.Set(KeyTokenID, t.tokenID)
	c.Set(KeyTokenExp, t.expiresAt)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseToken(raw, secret string) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return tokenClaims{}, jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return tokenClaims{}, jwt.ErrTokenInvalidClaims
	}
	out := tokenClaims{userID: sub}
	out.email, _ = claims["email"].(string)
	out.role, _ = claims["role"].(string)
	out.tokenID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	return out, nil
}
