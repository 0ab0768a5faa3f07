package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/api/metrics"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type JobService struct {
	jobs     ports.JobRepository
	apps     ports.ApplicationRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewJobService(
	jobs ports.JobRepository,
	apps ports.ApplicationRepository,
	profiles ports.ProfileRepository,
	logger zerolog.Logger,
) *JobService {
	return &JobService{jobs: jobs, apps: apps, profiles: profiles, logger: logger}
}

// ListJobs returns active jobs, newest first, optionally filtered by title.
func (s *JobService) ListJobs(ctx context.Context, in ports.ListJobsInput) ([]*domain.Job, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.jobs.List(ctx, domain.JobFilter{
		ActiveOnly: true,
		Search:     strings.TrimSpace(in.Search),
		Limit:      limit,
	})
}

// FeaturedJobs returns the newest active jobs for the home page.
func (s *JobService) FeaturedJobs(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx, domain.JobFilter{ActiveOnly: true, Limit: domain.FeaturedJobsLimit})
}

// GetJob returns a job with its employer's email. A missing employer profile
// leaves the email empty rather than failing the page.
func (s *JobService) GetJob(ctx context.Context, id string) (*ports.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.JobDetail{Job: job}
	employer, err := s.profiles.FindByID(ctx, job.EmployerID)
	switch {
	case err == nil:
		detail.EmployerEmail = employer.Email
	case errors.Is(err, domain.ErrProfileNotFound):
		s.logger.Warn().Str("job_id", job.ID).Str("employer_id", job.EmployerID).Msg("job without employer profile")
	default:
		return nil, err
	}
	return detail, nil
}

// CreateJob posts a new job owned by employerID.
func (s *JobService) CreateJob(ctx context.Context, employerID string, in ports.JobInput) (*domain.Job, error) {
	if employerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	job := &domain.Job{
		ID:         uuid.NewString(),
		EmployerID: employerID,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	applyJobInput(job, in)

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("employer_id", employerID).Msg("failed to create job")
		return nil, err
	}

	metrics.JobMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("job_id", job.ID).Str("employer_id", employerID).Msg("job created")
	return job, nil
}

// UpdateJob overwrites the form fields of a job owned by employerID.
func (s *JobService) UpdateJob(ctx context.Context, employerID, jobID string, in ports.JobInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	applyJobInput(job, in)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	metrics.JobMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("job_id", job.ID).Msg("job updated")
	return job, nil
}

// DeleteJob removes a job owned by employerID together with its applications.
func (s *JobService) DeleteJob(ctx context.Context, employerID, jobID string) error {
	job, err := s.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return err
	}

	removed, err := s.apps.DeleteByJobID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("delete job applications: %w", err)
	}
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	metrics.JobMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("job_id", job.ID).Int64("applications_removed", removed).Msg("job deleted")
	return nil
}

func (s *JobService) ownedJob(ctx context.Context, employerID, jobID string) (*domain.Job, error) {
	if employerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func applyJobInput(job *domain.Job, in ports.JobInput) {
	job.Title = strings.TrimSpace(in.Title)
	job.Company = strings.TrimSpace(in.Company)
	job.Location = strings.TrimSpace(in.Location)
	job.Description = in.Description
	job.Type = in.Type
	if job.Type == "" {
		job.Type = domain.JobTypeFullTime
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
}
