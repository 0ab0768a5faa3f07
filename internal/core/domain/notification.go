package domain

import "fmt"

// ApplicationNotification is the payload relayed to an employer when a
// candidate applies to one of their jobs.
type ApplicationNotification struct {
	ApplicationID string
	EmployerEmail string
	JobTitle      string
	CandidateName string
	ResumeURL     string
}

// Email is a plain-text message ready to hand to a mailer.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// NewApplicationEmail renders the message sent for an application.
func NewApplicationEmail(from string, n ApplicationNotification) Email {
	return Email{
		From:    from,
		To:      n.EmployerEmail,
		Subject: fmt.Sprintf("New Application for %s", n.JobTitle),
		Body: fmt.Sprintf("Hello,\n\n%s has applied for %s.\n\nView Resume: %s",
			n.CandidateName, n.JobTitle, n.ResumeURL),
	}
}
