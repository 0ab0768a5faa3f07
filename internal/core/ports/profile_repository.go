package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// ProfileRepository persists one profile per auth user.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// FindByIDs returns the profiles that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error)
	// Update overwrites the stored profile. Last write wins.
	Update(ctx context.Context, p *domain.Profile) error
}
