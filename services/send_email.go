package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/models"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(
	`<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
{{with .Subject}}<p><strong>Subject:</strong> {{.}}</p>
{{end}}<p>{{.Message}}</p>`))

// ResendSender emails contact submissions to the site owner through the
// Resend API. Replies go straight to the submitter.
type ResendSender struct {
	apiKey  string
	from    string
	to      string
	baseURL string
	client  *http.Client
}

// NewResendSender returns nil when Resend or the owner address is not configured
func NewResendSender(cfg config.ResendConfig, ownerEmail string) *ResendSender {
	if !cfg.Enabled() || ownerEmail == "" {
		return nil
	}
	return &ResendSender{
		apiKey:  cfg.APIKey,
		from:    cfg.FromEmail,
		to:      ownerEmail,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled is false for the nil sender returned without credentials
func (s *ResendSender) Enabled() bool {
	return s != nil
}

func (s *ResendSender) Name() string {
	return "email"
}

func (s *ResendSender) Deliver(ctx context.Context, submission models.ContactSubmission) error {
	subject := "New message from " + submission.Name
	if submission.Subject != nil && strings.TrimSpace(*submission.Subject) != "" {
		subject = "Contact: " + *submission.Subject
	}

	var body bytes.Buffer
	err := contactEmailTemplate.Execute(&body, struct {
		Name, Email, Subject string
		Message              template.HTML
	}{
		Name:    submission.Name,
		Email:   submission.Email,
		Subject: submission.SubjectOr(""),
		Message: paragraphs(submission.Message),
	})
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	return s.SendEmail(ctx, ResendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: subject,
		Html:    body.String(),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", submission.Name, submission.Email, submission.Message),
		ReplyTo: submission.Email,
	})
}

// paragraphs escapes user text and keeps its line breaks
func paragraphs(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.TrimSpace(text))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// SendEmail sends an email using the Resend API
func (s *ResendSender) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	if len(payload.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
