package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/api/metrics"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
	"github.com/anurag-po/CODSOFT/internal/pkg/filename"
)

const resumeContentType = "application/pdf"

// ApplicationService runs the apply sequence of the job detail page:
// upload resume, insert application, queue the employer notification.
type ApplicationService struct {
	jobs          ports.JobRepository
	apps          ports.ApplicationRepository
	profiles      ports.ProfileRepository
	storage       ports.FileStorage
	validator     ports.DocumentValidator
	queue         ports.NotificationQueue
	publicBaseURL string
	maxResume     int64
	log           zerolog.Logger
	now           func() time.Time
}

// ApplicationServiceDeps groups the collaborators of ApplicationService.
type ApplicationServiceDeps struct {
	Jobs          ports.JobRepository
	Applications  ports.ApplicationRepository
	Profiles      ports.ProfileRepository
	Storage       ports.FileStorage
	Validator     ports.DocumentValidator
	Queue         ports.NotificationQueue
	PublicBaseURL string
	MaxResume     int64
}

func NewApplicationService(deps ApplicationServiceDeps, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		jobs:          deps.Jobs,
		apps:          deps.Applications,
		profiles:      deps.Profiles,
		storage:       deps.Storage,
		validator:     deps.Validator,
		queue:         deps.Queue,
		publicBaseURL: deps.PublicBaseURL,
		maxResume:     deps.MaxResume,
		log:           log,
		now:           time.Now,
	}
}

// Submit stores the resume, records the application and queues a
// best-effort email to the employer. Once the row is inserted the call
// succeeds regardless of what happens to the notification. If the insert
// fails the uploaded resume is left in the bucket.
func (s *ApplicationService) Submit(ctx context.Context, in ports.SubmitApplicationInput) (*domain.Application, error) {
	if in.CandidateID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Resume) == 0 {
		return nil, domain.ErrResumeRequired
	}
	if s.maxResume > 0 && int64(len(in.Resume)) > s.maxResume {
		return nil, domain.ErrFileTooLarge
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidatePDF(in.Resume); err != nil {
		return nil, err
	}

	// 1. Upload resume.
	name := s.resumeObjectName(in.FileName)
	if _, err := s.storage.Put(ctx, domain.BucketResumes, name, resumeContentType, bytes.NewReader(in.Resume)); err != nil {
		return nil, fmt.Errorf("resume upload failed: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues(domain.BucketResumes).Inc()
	resumeURL := publicObjectURL(s.publicBaseURL, domain.BucketResumes, name)

	// 2. Create application record.
	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		CandidateID: in.CandidateID,
		ResumeURL:   resumeURL,
		Status:      domain.ApplicationStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		s.log.Warn().Err(err).
			Str("bucket", domain.BucketResumes).
			Str("object", name).
			Msg("application insert failed; uploaded resume orphaned")
		return nil, fmt.Errorf("create application: %w", err)
	}
	metrics.ApplicationsSubmittedTotal.Inc()

	// 3. Notify employer (fail-safe).
	s.notify(ctx, job, app, in.CandidateEmail)

	s.log.Info().
		Str("application_id", app.ID).
		Str("job_id", job.ID).
		Str("candidate_id", app.CandidateID).
		Msg("application submitted")
	return app, nil
}

func (s *ApplicationService) notify(ctx context.Context, job *domain.Job, app *domain.Application, candidateEmail string) {
	employer, err := s.profiles.FindByID(ctx, job.EmployerID)
	if err != nil {
		reason := "employer_lookup_failed"
		if errors.Is(err, domain.ErrProfileNotFound) {
			reason = "employer_not_found"
		}
		metrics.NotificationsTotal.WithLabelValues(reason).Inc()
		s.log.Warn().Err(err).Str("application_id", app.ID).Msg("notification skipped")
		return
	}
	if employer.Email == "" {
		metrics.NotificationsTotal.WithLabelValues("employer_without_email").Inc()
		s.log.Warn().Str("application_id", app.ID).Msg("notification skipped: employer has no email")
		return
	}

	ok := s.queue.Enqueue(domain.ApplicationNotification{
		ApplicationID: app.ID,
		EmployerEmail: employer.Email,
		JobTitle:      job.Title,
		CandidateName: candidateEmail,
		ResumeURL:     app.ResumeURL,
	})
	if !ok {
		s.log.Warn().Str("application_id", app.ID).Msg("notification dropped: queue full")
	}
}

// resumeObjectName prefixes the uploaded name with the upload time in ms.
func (s *ApplicationService) resumeObjectName(original string) string {
	clean, err := filename.Sanitize(original)
	if err != nil {
		clean = "resume.pdf"
	}
	return fmt.Sprintf("%d_%s", s.now().UnixMilli(), clean)
}
