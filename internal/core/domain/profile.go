package domain

import "time"

// Role gates which dashboard a user sees and whether they may post jobs.
type Role string

const (
	RoleUnset     Role = ""
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// Profile is the public face of a user. ID equals the auth user ID.
type Profile struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName falls back to the email when no full name was given.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
