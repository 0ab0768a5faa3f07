package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

const profileColumns = `id, role, full_name, username, email, avatar_url, website, updated_at`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, nullString(string(p.Role)), p.FullName, nullString(p.Username), p.Email,
		nullString(p.AvatarURL), nullString(p.Website), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	if len(ids) == 0 {
		return []*domain.Profile{}, nil
	}
	in, args := inClause(ids, 1)
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id IN (`+in+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer rows.Close()

	out := []*domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET role = $2, full_name = $3, username = $4, email = $5,
		 avatar_url = $6, website = $7, updated_at = $8 WHERE id = $1`,
		p.ID, nullString(string(p.Role)), p.FullName, nullString(p.Username), p.Email,
		nullString(p.AvatarURL), nullString(p.Website), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*domain.Profile, error) {
	var (
		p                               domain.Profile
		role, username, avatar, website sql.NullString
	)
	if err := s.Scan(&p.ID, &role, &p.FullName, &username, &p.Email, &avatar, &website, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Role = domain.Role(role.String)
	p.Username = username.String
	p.AvatarURL = avatar.String
	p.Website = website.String
	return &p, nil
}
