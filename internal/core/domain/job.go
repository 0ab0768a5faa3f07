package domain

import "time"

const (
	JobTypeFullTime  = "Full-time"
	JobTypePartTime  = "Part-time"
	JobTypeContract  = "Contract"
	JobTypeFreelance = "Freelance"
)

// FeaturedJobsLimit is the number of postings shown on the home page.
const FeaturedJobsLimit = 3

// Job is a posting owned by exactly one employer.
type Job struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobFilter narrows a job listing. Zero values mean "no filter".
type JobFilter struct {
	EmployerID string
	ActiveOnly bool
	// Search is matched case-insensitively as a substring of the title.
	Search string
	Limit  int
}
