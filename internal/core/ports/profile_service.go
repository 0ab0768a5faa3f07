package ports

import (
	"context"
	"io"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// UpdateProfileInput carries the profile-edit form. Nil fields are left unchanged.
type UpdateProfileInput struct {
	FullName *string
	Username *string
	Website  *string
	// Role may only be set while the stored role is unset.
	Role *domain.Role
}

// UploadAvatarInput carries an avatar image for the caller's profile.
type UploadAvatarInput struct {
	UserID   string
	Email    string
	FileName string
	Content  io.Reader
}

type ProfileService interface {
	Get(ctx context.Context, userID, email string) (*domain.Profile, error)
	Update(ctx context.Context, userID, email string, input UpdateProfileInput) (*domain.Profile, error)
	UploadAvatar(ctx context.Context, input UploadAvatarInput) (*domain.Profile, error)
}
