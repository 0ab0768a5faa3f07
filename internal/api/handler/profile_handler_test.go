package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

type stubProfileService struct {
	getFn    func(ctx context.Context, userID, email string) (*domain.Profile, error)
	updateFn func(ctx context.Context, userID, email string, in ports.UpdateProfileInput) (*domain.Profile, error)
	avatarFn func(ctx context.Context, in ports.UploadAvatarInput) (*domain.Profile, error)
}

func (s *stubProfileService) Get(ctx context.Context, userID, email string) (*domain.Profile, error) {
	return s.getFn(ctx, userID, email)
}

func (s *stubProfileService) Update(ctx context.Context, userID, email string, in ports.UpdateProfileInput) (*domain.Profile, error) {
	return s.updateFn(ctx, userID, email, in)
}

func (s *stubProfileService) UploadAvatar(ctx context.Context, in ports.UploadAvatarInput) (*domain.Profile, error) {
	return s.avatarFn(ctx, in)
}

type stubDashboardService struct {
	loadFn func(ctx context.Context, userID, email string) (*domain.Dashboard, error)
}

func (s *stubDashboardService) Load(ctx context.Context, userID, email string) (*domain.Dashboard, error) {
	return s.loadFn(ctx, userID, email)
}

func TestProfileHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		getFn: func(_ context.Context, userID, email string) (*domain.Profile, error) {
			return &domain.Profile{ID: userID, Email: email, Role: domain.RoleCandidate}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodGet, "/v1/profile", "")
	signIn(c, "u1", "u1@example.com", domain.RoleCandidate)
	if err := NewProfileHandler(stub, nil, 0).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Profile domain.Profile `json:"profile"`
		Token   string         `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Profile.ID != "u1" || resp.Profile.Email != "u1@example.com" || resp.Token != "" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProfileHandler_Update_FieldsKeepToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		updateFn: func(_ context.Context, userID, _ string, in ports.UpdateProfileInput) (*domain.Profile, error) {
			if in.FullName == nil || *in.FullName != "Ann" || in.Username != nil || in.Role != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Profile{ID: userID, FullName: *in.FullName, Role: domain.RoleCandidate}, nil
		},
	}
	auth := &stubAuthService{
		issueFn: func(string, string, domain.Role) (string, time.Time, error) {
			t.Fatalf("token must not be reissued when the role is unchanged")
			return "", time.Time{}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodPut, "/v1/profile", `{"full_name":"Ann"}`)
	signIn(c, "u1", "", domain.RoleCandidate)
	if err := NewProfileHandler(stub, auth, 0).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileHandler_Update_RoleReissuesToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		updateFn: func(_ context.Context, userID, _ string, in ports.UpdateProfileInput) (*domain.Profile, error) {
			if in.Role == nil || *in.Role != domain.RoleEmployer {
				t.Fatalf("expected employer role in input, got %+v", in.Role)
			}
			return &domain.Profile{ID: userID, Role: *in.Role}, nil
		},
	}
	auth := &stubAuthService{
		issueFn: func(userID, email string, role domain.Role) (string, time.Time, error) {
			if userID != "u1" || email != "u1@example.com" || role != domain.RoleEmployer {
				t.Fatalf("unexpected token args: %s %s %s", userID, email, role)
			}
			return "fresh-token", time.Now().Add(time.Hour), nil
		},
	}

	c, rec := jsonContext(e, http.MethodPut, "/v1/profile", `{"role":"employer"}`)
	signIn(c, "u1", "u1@example.com", domain.RoleUnset)
	if err := NewProfileHandler(stub, auth, 0).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["token"] != "fresh-token" {
		t.Fatalf("expected fresh token, got %v", resp["token"])
	}
}

func TestProfileHandler_Update_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		updateFn: func(context.Context, string, string, ports.UpdateProfileInput) (*domain.Profile, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProfileHandler(stub, &stubAuthService{}, 0)

	for _, body := range []string{`{"role":"admin"}`, `{"website":"not a url"}`} {
		c, _ := jsonContext(e, http.MethodPut, "/v1/profile", body)
		signIn(c, "u1", "", domain.RoleUnset)
		if got := httpStatus(handler.Update(c)); got != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", body, got)
		}
	}
}

func TestProfileHandler_Update_RoleAlreadySet(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		updateFn: func(context.Context, string, string, ports.UpdateProfileInput) (*domain.Profile, error) {
			return nil, domain.ErrRoleAlreadySet
		},
	}

	c, _ := jsonContext(e, http.MethodPut, "/v1/profile", `{"role":"employer"}`)
	signIn(c, "u1", "", domain.RoleCandidate)
	if err := NewProfileHandler(stub, &stubAuthService{}, 0).Update(c); !errors.Is(err, domain.ErrRoleAlreadySet) {
		t.Fatalf("expected ErrRoleAlreadySet, got %v", err)
	}
}

func TestProfileHandler_UploadAvatar(t *testing.T) {
	e := newTestEcho()
	image := []byte("\x89PNG\r\n\x1a\nfake")
	stub := &stubProfileService{
		avatarFn: func(_ context.Context, in ports.UploadAvatarInput) (*domain.Profile, error) {
			data, err := io.ReadAll(in.Content)
			if err != nil {
				t.Fatalf("read avatar: %v", err)
			}
			if in.UserID != "u1" || in.FileName != "me.png" || string(data) != string(image) {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Profile{ID: "u1", AvatarURL: "https://jobs.test/storage/v1/object/public/avatars/x.png"}, nil
		},
	}

	c, rec := multipartContext(t, e, "/v1/profile/avatar", "avatar", "me.png", image)
	signIn(c, "u1", "", domain.RoleCandidate)
	if err := NewProfileHandler(stub, nil, 1024).UploadAvatar(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = multipartContext(t, e, "/v1/profile/avatar", "", "", nil)
	signIn(c, "u1", "", domain.RoleCandidate)
	if got := httpStatus(NewProfileHandler(stub, nil, 1024).UploadAvatar(c)); got != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", got)
	}
}

// --- Dashboard ---

func TestDashboardHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubDashboardService{
		loadFn: func(_ context.Context, userID, email string) (*domain.Dashboard, error) {
			if userID != "emp-1" || email != "hr@acme.test" {
				t.Fatalf("unexpected args: %s %s", userID, email)
			}
			return &domain.Dashboard{
				Profile:      &domain.Profile{ID: userID, Role: domain.RoleEmployer},
				Jobs:         []*domain.Job{{ID: "j1"}},
				Applications: []domain.ApplicationView{},
			}, nil
		},
	}

	c, rec := jsonContext(e, http.MethodGet, "/v1/dashboard", "")
	signIn(c, "emp-1", "hr@acme.test", domain.RoleEmployer)
	if err := NewDashboardHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if apps, ok := resp["applications"].([]any); !ok || len(apps) != 0 {
		t.Fatalf("expected empty applications array, got %v", resp["applications"])
	}
	if jobs, ok := resp["jobs"].([]any); !ok || len(jobs) != 1 {
		t.Fatalf("expected one job, got %v", resp["jobs"])
	}
}

func TestDashboardHandler_Unauthenticated(t *testing.T) {
	e := newTestEcho()

	c, _ := jsonContext(e, http.MethodGet, "/v1/dashboard", "")
	if got := httpStatus(NewDashboardHandler(&stubDashboardService{}).Get(c)); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}
