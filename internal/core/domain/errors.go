package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")

	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrRoleAlreadySet  = errors.New("role already set")

	ErrJobNotFound = errors.New("job not found")

	ErrResumeRequired = errors.New("resume file is required")
	ErrInvalidResume  = errors.New("resume must be a readable PDF document")
	ErrInvalidAvatar  = errors.New("avatar must be a PNG, JPEG, GIF or WebP image")
	ErrFileTooLarge   = errors.New("file exceeds the upload size limit")

	ErrUnknownBucket  = errors.New("unknown storage bucket")
	ErrObjectNotFound = errors.New("object not found")

	ErrMailerNotConfigured = errors.New("mailer not configured")
)
