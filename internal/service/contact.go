package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"builderclub-backend/internal/logger"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"email"`
	Subject string `json:"subject" validate:"max=60"`
	Message string `json:"message" validate:"max=5000"`
}

const contactFromName = "Claude Builder Club Contact"

var contactSubjects = map[string]string{
	"partnership": "Partnership / Collaboration",
	"course":      "Course Integration",
	"sponsorship": "Sponsorship",
	"press":       "Press / Media",
	"general":     "General Inquiry",
}

// SubjectLabel returns the display label for a subject key. Unknown keys are
// shown as given.
func SubjectLabel(subject string) string {
	if label, ok := contactSubjects[subject]; ok {
		return label
	}
	return subject
}

var contactHTML = template.Must(template.New("contact").Parse(`<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#141413;margin-bottom:4px">New contact form submission</h2>
  <p style="color:#b0aea5;font-size:13px;margin-top:0">{{.Club}}</p>
  <hr style="border:none;border-top:1px solid #e8e6dc;margin:16px 0"/>
  <table style="width:100%;font-size:14px;border-collapse:collapse">
    <tr><td style="padding:6px 0;color:#6b6860;width:80px">Name</td><td style="padding:6px 0;color:#141413;font-weight:600">{{.Name}}</td></tr>
    <tr><td style="padding:6px 0;color:#6b6860">Email</td><td style="padding:6px 0"><a href="mailto:{{.Email}}" style="color:#d97757">{{.Email}}</a></td></tr>
    <tr><td style="padding:6px 0;color:#6b6860">Subject</td><td style="padding:6px 0;color:#141413">{{.Subject}}</td></tr>
  </table>
  <hr style="border:none;border-top:1px solid #e8e6dc;margin:16px 0"/>
  <p style="font-size:14px;color:#141413;white-space:pre-wrap">{{.Message}}</p>
</div>`))

type contactService struct {
	email EmailService
	to    string
	club  string
}

func NewContactService(email EmailService, to, clubName string) ContactService {
	return &contactService{email: email, to: to, club: clubName}
}

// Submit forwards the form to the club inbox with the sender as reply-to.
func (s *contactService) Submit(ctx context.Context, in ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return invalid("", "Missing required fields.")
	}
	if err := checkStruct(in); err != nil {
		return err
	}

	label := SubjectLabel(in.Subject)
	var html bytes.Buffer
	err := contactHTML.Execute(&html, map[string]string{
		"Club":    s.club,
		"Name":    in.Name,
		"Email":   in.Email,
		"Subject": label,
		"Message": in.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	mail := Mail{
		To:       s.to,
		ReplyTo:  in.Email,
		FromName: contactFromName,
		Subject:  fmt.Sprintf("[Contact] %s — %s", label, in.Name),
		Text:     fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\n%s", in.Name, in.Email, label, in.Message),
		HTML:     html.String(),
	}
	if err := s.email.Send(ctx, mail); err != nil {
		logger.Error("Failed to send contact email", "error", err)
		return err
	}
	logger.Info("Contact form forwarded", "subject", in.Subject)
	return nil
}
