package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Job, error)
	// List returns jobs matching filter, newest first.
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
}
