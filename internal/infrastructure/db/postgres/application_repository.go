package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

const applicationColumns = `id, job_id, candidate_id, resume_url, status, created_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.CandidateID, a.ResumeURL, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Application, error) {
	return r.query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`,
		candidateID,
	)
}

func (r *ApplicationRepository) ListByJobIDs(ctx context.Context, jobIDs []string) ([]*domain.Application, error) {
	if len(jobIDs) == 0 {
		return []*domain.Application{}, nil
	}
	in, args := inClause(jobIDs, 1)
	return r.query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id IN (`+in+`) ORDER BY created_at DESC`,
		args...,
	)
}

func (r *ApplicationRepository) DeleteByJobID(ctx context.Context, jobID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("delete applications: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete applications: %w", err)
	}
	return n, nil
}

func (r *ApplicationRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer rows.Close()

	out := []*domain.Application{}
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumeURL, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
