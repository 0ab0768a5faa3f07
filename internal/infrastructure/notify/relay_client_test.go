package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

func TestRelayClient_Notify(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/notify" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Email sent successfully"}`))
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL+"/", srv.Client())
	err := c.Notify(context.Background(), domain.ApplicationNotification{
		ApplicationID: "app-1",
		EmployerEmail: "boss@acme.io",
		JobTitle:      "Go Developer",
		CandidateName: "cand@example.com",
		ResumeURL:     "http://x/resumes/1_cv.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EmployerEmail != "boss@acme.io" || got.JobTitle != "Go Developer" ||
		got.CandidateName != "cand@example.com" || got.ResumeURL != "http://x/resumes/1_cv.pdf" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestRelayClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to send email"}`))
	}))
	defer srv.Close()

	err := NewRelayClient(srv.URL, srv.Client()).Notify(context.Background(), domain.ApplicationNotification{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Failed to send email") {
		t.Errorf("expected relay error message in %q", err.Error())
	}
}

func TestRelayClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := NewRelayClient(url, nil).Notify(context.Background(), domain.ApplicationNotification{}); err == nil {
		t.Fatal("expected error")
	}
}
