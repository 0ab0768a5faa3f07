package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// SubmitApplicationInput carries the apply form of the job detail page.
type SubmitApplicationInput struct {
	JobID          string
	CandidateID    string
	CandidateEmail string
	FileName       string
	// Resume is the raw uploaded file. Empty means no file was attached.
	Resume []byte
}

type ApplicationService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*domain.Application, error)
}

// DashboardService assembles the role-dependent dashboard.
type DashboardService interface {
	Load(ctx context.Context, userID, email string) (*domain.Dashboard, error)
}
