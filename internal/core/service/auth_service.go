package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration, login and logout.
type AuthService struct {
	repo      ports.AuthRepository
	profiles  ports.ProfileRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	repo ports.AuthRepository,
	profiles ports.ProfileRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		profiles:  profiles,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register creates the auth user and then its profile. A profile failure does
// not undo the user: the dashboard creates a missing profile on first visit.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:        user.ID,
		Role:      in.Role,
		FullName:  strings.TrimSpace(in.FullName),
		Email:     email,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(in.Role)).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and issues a token carrying the profile role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleUnset
	profile, err := s.profiles.FindByID(ctx, user.ID)
	switch {
	case err == nil:
		role = profile.Role
	case errors.Is(err, domain.ErrProfileNotFound):
		s.log.Warn().Str("user_id", user.ID).Msg("login without profile")
	default:
		return nil, err
	}

	token, exp, err := s.IssueToken(user.ID, user.Email, role)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, ExpiresAt: exp, User: user, Role: role}, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrUnauthenticated
	}
	if !expiresAt.After(s.now()) {
		return nil
	}
	return s.sessions.Revoke(ctx, tokenID, expiresAt)
}

// IssueToken signs an HS256 token for the given identity.
func (s *AuthService) IssueToken(userID, email string, role domain.Role) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
