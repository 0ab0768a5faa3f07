package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

// --- users ---

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "a@b.io", "hash", now, now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{
		ID: "u1", Email: "a@b.io", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("ghost@b.io").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByEmail(context.Background(), "ghost@b.io"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

// --- profiles ---

func TestProfileRepository_FindByIDMapsNulls(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "role", "full_name", "username", "email", "avatar_url", "website", "updated_at"}).
		AddRow("u1", nil, "", nil, "a@b.io", nil, nil, now)
	mock.ExpectQuery("SELECT id, role, full_name").WithArgs("u1").WillReturnRows(rows)

	p, err := repo.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != domain.RoleUnset || p.Email != "a@b.io" || p.AvatarURL != "" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	expectationsMet(t, mock)
}

func TestProfileRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec("INSERT INTO profiles").WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &domain.Profile{ID: "u1", UpdatedAt: time.Now().UTC()})
	if !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec("UPDATE profiles SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Profile{ID: "ghost", Role: domain.RoleCandidate})
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestProfileRepository_FindByIDsUsesInClause(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	rows := sqlmock.NewRows([]string{"id", "role", "full_name", "username", "email", "avatar_url", "website", "updated_at"}).
		AddRow("u1", "candidate", "Ada", nil, "ada@b.io", nil, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN ($1, $2)")).
		WithArgs("u1", "u2").
		WillReturnRows(rows)

	got, err := repo.FindByIDs(context.Background(), []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Role != domain.RoleCandidate {
		t.Fatalf("unexpected profiles: %+v", got)
	}
	expectationsMet(t, mock)
}

// --- jobs ---

func TestListJobsQuery(t *testing.T) {
	query, args := listJobsQuery(domain.JobFilter{ActiveOnly: true, Search: "50%_off", Limit: 3})

	want := "SELECT " + jobColumns + " FROM jobs WHERE is_active AND title ILIKE $1 ORDER BY created_at DESC LIMIT $2"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 2 || args[0] != `%50\%\_off%` || args[1] != 3 {
		t.Fatalf("unexpected args: %v", args)
	}

	query, args = listJobsQuery(domain.JobFilter{EmployerID: "emp-1"})
	if query != "SELECT "+jobColumns+" FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC" || len(args) != 1 {
		t.Fatalf("unexpected employer query: %s %v", query, args)
	}
}

func TestJobRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJobRepository(db)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "employer_id", "title", "company", "location", "type", "description", "is_active", "created_at"}).
		AddRow("j1", "emp-1", "Go Developer", "Acme", "Remote", "Full-time", "Build APIs", true, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE is_active ORDER BY created_at DESC LIMIT $1")).
		WithArgs(domain.FeaturedJobsLimit).
		WillReturnRows(rows)

	jobs, err := repo.List(context.Background(), domain.JobFilter{ActiveOnly: true, Limit: domain.FeaturedJobsLimit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go Developer" || !jobs[0].IsActive {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	expectationsMet(t, mock)
}

func TestJobRepository_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJobRepository(db)

	mock.ExpectExec("DELETE FROM jobs").WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

// --- applications ---

func TestApplicationRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	app := &domain.Application{
		ID: "a1", JobID: "j1", CandidateID: "c1",
		ResumeURL: "http://x/resumes/1_cv.pdf", Status: domain.ApplicationStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(app.ID, app.JobID, app.CandidateID, app.ResumeURL, app.Status, app.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	expectationsMet(t, mock)
}

func TestApplicationRepository_DeleteByJobID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)

	mock.ExpectExec("DELETE FROM applications").WithArgs("j1").WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteByJobID(context.Background(), "j1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 deleted, got %d", n)
	}
	expectationsMet(t, mock)
}
