package contact

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// emailPattern is the local@domain.tld shape accepted by the contact form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var strict = bluemonday.StrictPolicy()

// Submission is one contact form post. It is never persisted.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace and strips markup from the
// single-line fields. The message keeps its text; templates escape it.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    stripTags(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: stripTags(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// stripTags removes markup and unescapes what the policy escaped, leaving
// plain text for subjects and templates (which escape again on output).
// Input that is nothing but markup, such as "<ada@example.com>", is kept
// as typed rather than emptied.
func stripTags(s string) string {
	s = strings.TrimSpace(s)
	if plain := strings.TrimSpace(html.UnescapeString(strict.Sanitize(s))); plain != "" {
		return plain
	}
	return s
}

// Validate checks required fields, then the email shape.
func (s Submission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Message == "" {
		return &ValidationError{Reason: ReasonMissingFields}
	}
	if !IsValidEmail(s.Email) {
		return &ValidationError{Reason: ReasonInvalidEmail}
	}
	return nil
}

// IsValidEmail reports whether addr has the local@domain.tld shape.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// OwnerSubject is the subject line of the notification sent to the owner.
func (s Submission) OwnerSubject() string {
	subject := s.Subject
	if subject == "" {
		subject = "New Message from " + s.Name
	}
	return "Portfolio Contact: " + subject
}
