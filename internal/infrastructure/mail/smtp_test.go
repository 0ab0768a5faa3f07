package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

func TestSend_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(Config{})

	err := m.Send(context.Background(), domain.Email{From: "a@b.io", To: "c@d.io"})
	if !errors.Is(err, domain.ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	email := domain.NewApplicationEmail("noreply@jobs.io", domain.ApplicationNotification{
		EmployerEmail: "boss@acme.io",
		JobTitle:      "Go Developer",
		CandidateName: "cand@example.com",
		ResumeURL:     "http://localhost:8080/storage/v1/object/public/resumes/1_cv.pdf",
	})

	msg, err := buildMessage(email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	raw := buf.String()

	for _, want := range []string{
		"Subject: New Application for Go Developer",
		"boss@acme.io",
		"noreply@jobs.io",
		"cand@example.com has applied for Go Developer.",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestBuildMessage_InvalidAddress(t *testing.T) {
	if _, err := buildMessage(domain.Email{From: "not an address", To: "boss@acme.io"}); err == nil {
		t.Fatal("expected invalid sender error")
	}
	if _, err := buildMessage(domain.Email{From: "noreply@jobs.io", To: ""}); err == nil {
		t.Fatal("expected invalid recipient error")
	}
}
