package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// DashboardService detects the caller's role and loads the matching
// collections: posted jobs and their applicants for employers, own
// applications for everyone else.
type DashboardService struct {
	profiles ports.ProfileRepository
	jobs     ports.JobRepository
	apps     ports.ApplicationRepository
	log      zerolog.Logger
}

func NewDashboardService(
	profiles ports.ProfileRepository,
	jobs ports.JobRepository,
	apps ports.ApplicationRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{profiles: profiles, jobs: jobs, apps: apps, log: log}
}

func (s *DashboardService) Load(ctx context.Context, userID, email string) (*domain.Dashboard, error) {
	profile, err := ensureProfile(ctx, s.profiles, s.log, userID, email)
	if err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{Profile: profile}
	if profile.Role == domain.RoleEmployer {
		err = s.loadEmployer(ctx, dash)
	} else {
		err = s.loadCandidate(ctx, dash)
	}
	if err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *DashboardService) loadEmployer(ctx context.Context, dash *domain.Dashboard) error {
	jobs, err := s.jobs.List(ctx, domain.JobFilter{EmployerID: dash.Profile.ID})
	if err != nil {
		return fmt.Errorf("list posted jobs: %w", err)
	}
	dash.Jobs = jobs
	dash.Applications = []domain.ApplicationView{}
	if len(jobs) == 0 {
		return nil
	}

	jobsByID := make(map[string]*domain.Job, len(jobs))
	jobIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		jobsByID[j.ID] = j
		jobIDs = append(jobIDs, j.ID)
	}

	apps, err := s.apps.ListByJobIDs(ctx, jobIDs)
	if err != nil {
		return fmt.Errorf("list job applications: %w", err)
	}

	candidates, err := s.profiles.FindByIDs(ctx, uniqueIDs(apps, func(a *domain.Application) string { return a.CandidateID }))
	if err != nil {
		return fmt.Errorf("load candidate profiles: %w", err)
	}
	candidatesByID := make(map[string]*domain.Profile, len(candidates))
	for _, c := range candidates {
		candidatesByID[c.ID] = c
	}

	for _, a := range apps {
		view := domain.ApplicationView{Application: *a}
		if j, ok := jobsByID[a.JobID]; ok {
			view.Job = jobSummary(j)
		}
		if c, ok := candidatesByID[a.CandidateID]; ok {
			view.Candidate = &domain.CandidateSummary{
				ID:        c.ID,
				FullName:  c.FullName,
				Email:     c.Email,
				AvatarURL: c.AvatarURL,
			}
		}
		dash.Applications = append(dash.Applications, view)
	}
	return nil
}

func (s *DashboardService) loadCandidate(ctx context.Context, dash *domain.Dashboard) error {
	apps, err := s.apps.ListByCandidate(ctx, dash.Profile.ID)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}

	jobs, err := s.jobs.FindByIDs(ctx, uniqueIDs(apps, func(a *domain.Application) string { return a.JobID }))
	if err != nil {
		return fmt.Errorf("load applied jobs: %w", err)
	}
	jobsByID := make(map[string]*domain.Job, len(jobs))
	for _, j := range jobs {
		jobsByID[j.ID] = j
	}

	dash.Applications = make([]domain.ApplicationView, 0, len(apps))
	for _, a := range apps {
		view := domain.ApplicationView{Application: *a}
		if j, ok := jobsByID[a.JobID]; ok {
			view.Job = jobSummary(j)
		}
		dash.Applications = append(dash.Applications, view)
	}
	return nil
}

func jobSummary(j *domain.Job) *domain.JobSummary {
	return &domain.JobSummary{ID: j.ID, Title: j.Title, Company: j.Company}
}

func uniqueIDs(apps []*domain.Application, key func(*domain.Application) string) []string {
	seen := make(map[string]struct{}, len(apps))
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		id := key(a)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
