package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

const jobColumns = `id, employer_id, title, company, location, type, description, is_active, created_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.EmployerID, j.Title, j.Company, j.Location, j.Type, j.Description, j.IsActive, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Job, error) {
	if len(ids) == 0 {
		return []*domain.Job{}, nil
	}
	in, args := inClause(ids, 1)
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id IN (`+in+`)`, args...)
}

func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	query, args := listJobsQuery(filter)
	return r.query(ctx, query, args...)
}

// listJobsQuery builds the listing statement for filter.
func listJobsQuery(filter domain.JobFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.EmployerID != "" {
		args = append(args, filter.EmployerID)
		where = append(where, fmt.Sprintf("employer_id = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + jobColumns + ` FROM jobs`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

func (r *JobRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer rows.Close()

	out := []*domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = $2, company = $3, location = $4, type = $5,
		 description = $6, is_active = $7 WHERE id = $1`,
		j.ID, j.Title, j.Company, j.Location, j.Type, j.Description, j.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func scanJob(s scanner) (*domain.Job, error) {
	var j domain.Job
	if err := s.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Location,
		&j.Type, &j.Description, &j.IsActive, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}
