package ports

import (
	"context"
	"time"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// AuthResult is returned on a successful login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
	Role      domain.Role
}

// SessionStore remembers revoked tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	IssueToken(userID, email string, role domain.Role) (string, time.Time, error)
}
