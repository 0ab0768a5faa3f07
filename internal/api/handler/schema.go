package handler

import (
	"time"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"      validate:"required,oneof=candidate employer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Role      string       `json:"role,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *sessionUser     `json:"user,omitempty"`
	Links         []domain.NavLink `json:"links"`
}

// --- Jobs ---

type jobRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Company     string `json:"company"     validate:"required,max=200"`
	Location    string `json:"location"    validate:"max=200"`
	Type        string `json:"type"        validate:"omitempty,oneof=Full-time Part-time Contract Freelance"`
	Description string `json:"description" validate:"max=20000"`
	IsActive    *bool  `json:"is_active"`
}

type listJobsQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" validate:"gte=0,lte=100"`
}

type jobListResponse struct {
	Jobs  []*domain.Job `json:"jobs"`
	Count int           `json:"count"`
}

// --- Profile ---

type updateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
	Username *string `json:"username"  validate:"omitempty,max=100"`
	Website  *string `json:"website"   validate:"omitempty,url"`
	Role     *string `json:"role"      validate:"omitempty,oneof=candidate employer"`
}

type profileResponse struct {
	Profile *domain.Profile `json:"profile"`
	// Token is a replacement session token, set when the role changed.
	Token string `json:"token,omitempty"`
}

// --- Relay ---

type notifyRequest struct {
	EmployerEmail string `json:"employerEmail" validate:"required,email"`
	JobTitle      string `json:"jobTitle"      validate:"required"`
	CandidateName string `json:"candidateName" validate:"required"`
	ResumeURL     string `json:"resumeUrl"     validate:"required"`
}
