package ports

import (
	"context"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// JobInput carries the dashboard job form.
type JobInput struct {
	Title       string
	Company     string
	Location    string
	Type        string
	Description string
	// IsActive is optional; new jobs default to active.
	IsActive *bool
}

// ListJobsInput carries the public listing query.
type ListJobsInput struct {
	Search string
	Limit  int
}

// JobDetail is a job joined with its employer's contact email.
type JobDetail struct {
	*domain.Job
	EmployerEmail string `json:"employer_email"`
}

type JobService interface {
	ListJobs(ctx context.Context, input ListJobsInput) ([]*domain.Job, error)
	FeaturedJobs(ctx context.Context) ([]*domain.Job, error)
	GetJob(ctx context.Context, id string) (*JobDetail, error)
	CreateJob(ctx context.Context, employerID string, input JobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, employerID, jobID string, input JobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID string) error
}
