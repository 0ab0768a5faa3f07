package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// --- Profiles ---

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile
	createErr error
	updateErr error
	findErr   error
	// concurrent, when set, is stored by Create as if another request won
	// the insert, and Create reports ErrProfileExists.
	concurrent *domain.Profile
}

func newStubProfileRepo(profiles ...*domain.Profile) *stubProfileRepo {
	r := &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		clone := *p
		r.profiles[p.ID] = &clone
	}
	return r
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.concurrent != nil {
		clone := *r.concurrent
		r.profiles[clone.ID] = &clone
		return domain.ErrProfileExists
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

// --- Jobs ---

type stubJobRepo struct {
	jobs       map[string]*domain.Job
	lastFilter domain.JobFilter
	deleted    []string
}

func newStubJobRepo(jobs ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*domain.Job)}
	for _, j := range jobs {
		clone := *j
		r.jobs[j.ID] = &clone
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			clone := *j
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubJobRepo) List(_ context.Context, f domain.JobFilter) ([]*domain.Job, error) {
	r.lastFilter = f
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.EmployerID != "" && j.EmployerID != f.EmployerID {
			continue
		}
		if f.ActiveOnly && !j.IsActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// --- Applications ---

type stubApplicationRepo struct {
	apps      []*domain.Application
	createErr error
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *app
	r.apps = append(r.apps, &clone)
	return nil
}

func (r *stubApplicationRepo) ListByCandidate(_ context.Context, candidateID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.apps {
		if a.CandidateID == candidateID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) ListByJobIDs(_ context.Context, jobIDs []string) ([]*domain.Application, error) {
	want := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		want[id] = true
	}
	var out []*domain.Application
	for _, a := range r.apps {
		if want[a.JobID] {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) DeleteByJobID(_ context.Context, jobID string) (int64, error) {
	kept := r.apps[:0]
	var removed int64
	for _, a := range r.apps {
		if a.JobID == jobID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.apps = kept
	return removed, nil
}

// --- Storage ---

type storedFile struct {
	contentType string
	data        []byte
}

type stubStorage struct {
	files  map[string]storedFile
	putErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{files: make(map[string]storedFile)}
}

func (s *stubStorage) Put(_ context.Context, bucket, name, contentType string, r io.Reader) (int64, error) {
	if s.putErr != nil {
		return 0, s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.files[bucket+"/"+name] = storedFile{contentType: contentType, data: data}
	return int64(len(data)), nil
}

func (s *stubStorage) Open(_ context.Context, bucket, name string) (io.ReadCloser, ports.ObjectInfo, error) {
	f, ok := s.files[bucket+"/"+name]
	if !ok {
		return nil, ports.ObjectInfo{}, domain.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), ports.ObjectInfo{ContentType: f.contentType, Size: int64(len(f.data))}, nil
}

// --- Notifications ---

type stubValidator struct{ err error }

func (v stubValidator) ValidatePDF([]byte) error { return v.err }

type stubQueue struct {
	mu     sync.Mutex
	items  []domain.ApplicationNotification
	reject bool
}

func (q *stubQueue) Enqueue(n domain.ApplicationNotification) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.reject {
		return false
	}
	q.items = append(q.items, n)
	return true
}

type stubMailer struct {
	sent []domain.Email
	err  error
}

func (m *stubMailer) Send(_ context.Context, email domain.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

// --- Sessions ---

type stubSessions struct {
	revoked map[string]time.Time
	err     error
}

func newStubSessions() *stubSessions {
	return &stubSessions{revoked: make(map[string]time.Time)}
}

func (s *stubSessions) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *stubSessions) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, s.err
}

var errBoom = errors.New("boom")
