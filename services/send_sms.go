package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/models"
)

const smsPreviewLength = 120

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioNotifier texts the site owner a short preview of each contact message
type TwilioNotifier struct {
	api  messageCreator
	from string
	to   string
}

// NewTwilioNotifier returns nil when Twilio is not configured
func NewTwilioNotifier(cfg config.TwilioConfig) *TwilioNotifier {
	if !cfg.Enabled() {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioNotifier{
		api:  client.Api,
		from: cfg.FromNumber,
		to:   cfg.OwnerNumber,
	}
}

func (n *TwilioNotifier) Enabled() bool {
	return n != nil
}

func (n *TwilioNotifier) Name() string {
	return "sms"
}

func (n *TwilioNotifier) Deliver(ctx context.Context, submission models.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(smsBody(submission))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

func smsBody(submission models.ContactSubmission) string {
	preview := []rune(submission.Message)
	if len(preview) > smsPreviewLength {
		preview = append(preview[:smsPreviewLength], '…')
	}
	return fmt.Sprintf("New contact from %s <%s>: %s", submission.Name, submission.Email, string(preview))
}
