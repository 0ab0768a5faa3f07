package domain

// JobSummary is the slice of a job joined onto application rows.
type JobSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// CandidateSummary is the slice of a candidate profile joined onto
// application rows in the employer dashboard.
type CandidateSummary struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ApplicationView is an application joined with its job and, for employers,
// the candidate who submitted it.
type ApplicationView struct {
	Application
	Job       *JobSummary       `json:"job,omitempty"`
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

// Dashboard is the role-dependent landing view of a signed-in user.
type Dashboard struct {
	Profile      *Profile          `json:"profile"`
	Jobs         []*Job            `json:"jobs,omitempty"`
	Applications []ApplicationView `json:"applications"`
}
