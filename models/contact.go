package models

import (
	"net/mail"
	"strings"
)

// ContactSubmission is a message sent through the contact form. It is
// delivered to the site owner and never stored.
type ContactSubmission struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Message string  `json:"message"`
	Subject *string `json:"subject,omitempty"`
}

func (c ContactSubmission) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return missing("name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return missing("email")
	}
	addr, err := mail.ParseAddress(c.Email)
	if err != nil || addr.Address != strings.TrimSpace(c.Email) {
		return invalid("email", "must be a valid email address")
	}
	if strings.TrimSpace(c.Message) == "" {
		return missing("message")
	}
	return nil
}

// SubjectOr returns the subject, or fallback when none was given
func (c ContactSubmission) SubjectOr(fallback string) string {
	if c.Subject == nil || strings.TrimSpace(*c.Subject) == "" {
		return fallback
	}
	return *c.Subject
}
