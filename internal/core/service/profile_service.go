package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/api/metrics"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ProfileService reads and edits the caller's own profile.
type ProfileService struct {
	profiles       ports.ProfileRepository
	storage        ports.FileStorage
	publicBaseURL  string
	maxUploadBytes int64
	log            zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	storage ports.FileStorage,
	publicBaseURL string,
	maxUploadBytes int64,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:       profiles,
		storage:        storage,
		publicBaseURL:  publicBaseURL,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Get returns the caller's profile, creating an unset-role one if missing.
func (s *ProfileService) Get(ctx context.Context, userID, email string) (*domain.Profile, error) {
	return ensureProfile(ctx, s.profiles, s.log, userID, email)
}

// Update applies the non-nil fields of in to the caller's profile.
func (s *ProfileService) Update(ctx context.Context, userID, email string, in ports.UpdateProfileInput) (*domain.Profile, error) {
	p, err := ensureProfile(ctx, s.profiles, s.log, userID, email)
	if err != nil {
		return nil, err
	}

	if in.Role != nil && *in.Role != p.Role {
		if !in.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		if p.Role != domain.RoleUnset {
			return nil, domain.ErrRoleAlreadySet
		}
		p.Role = *in.Role
	}
	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Username != nil {
		p.Username = strings.TrimSpace(*in.Username)
	}
	if in.Website != nil {
		p.Website = strings.TrimSpace(*in.Website)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// UploadAvatar stores an image in the avatars bucket and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, in ports.UploadAvatarInput) (*domain.Profile, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	content, err := readLimited(in.Content, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(content)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, domain.ErrInvalidAvatar
	}

	p, err := ensureProfile(ctx, s.profiles, s.log, in.UserID, in.Email)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	if _, err := s.storage.Put(ctx, domain.BucketAvatars, name, contentType, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues(domain.BucketAvatars).Inc()

	p.AvatarURL = publicObjectURL(s.publicBaseURL, domain.BucketAvatars, name)
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("user_id", p.ID).Str("object", name).Msg("avatar uploaded")
	return p, nil
}

// ensureProfile loads the profile for userID, creating it with an unset role
// the first time a signed-in user without one shows up.
func ensureProfile(ctx context.Context, repo ports.ProfileRepository, log zerolog.Logger, userID, email string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	p, err := repo.FindByID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p = &domain.Profile{
		ID:        userID,
		Role:      domain.RoleUnset,
		Email:     email,
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, p); err != nil {
		if !errors.Is(err, domain.ErrProfileExists) {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		// A concurrent first visit created it between the lookup and the insert.
		if p, err = repo.FindByID(ctx, userID); err != nil {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		return p, nil
	}
	log.Info().Str("user_id", userID).Msg("profile created on first visit")
	return p, nil
}

// readLimited reads r fully, failing with ErrFileTooLarge past limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, domain.ErrFileTooLarge
	}
	return data, nil
}

func publicObjectURL(base, bucket, name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimRight(base, "/"), url.PathEscape(bucket), url.PathEscape(name))
}
