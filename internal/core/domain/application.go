package domain

import "time"

const ApplicationStatusPending = "pending"

// Application is one submission of a resume to a job. Duplicate
// (job, candidate) pairs are allowed.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	ResumeURL   string    `json:"resume_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
