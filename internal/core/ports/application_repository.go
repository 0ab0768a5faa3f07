package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// ListByCandidate returns a candidate's applications, newest first.
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Application, error)
	// ListByJobIDs returns the applications for any of jobIDs, newest first.
	ListByJobIDs(ctx context.Context, jobIDs []string) ([]*domain.Application, error)
	// DeleteByJobID removes every application of a job and reports how many went.
	DeleteByJobID(ctx context.Context, jobID string) (int64, error)
}
