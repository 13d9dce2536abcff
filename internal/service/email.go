package service

import (
	"context"
	"fmt"
	"net/http"

	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridEmailService struct {
	apiKey   string
	host     string
	from     string
	fromName string
}

// NewSendGridEmailService sends through the SendGrid v3 API. An empty host
// uses the public endpoint.
func NewSendGridEmailService(apiKey, host, fromAddress, fromName string) EmailService {
	if host == "" {
		host = sendgridHost
	}
	return &sendgridEmailService{apiKey: apiKey, host: host, from: fromAddress, fromName: fromName}
}

func (s *sendgridEmailService) Send(ctx context.Context, m Mail) error {
	logger.ExternalServiceCall("sendgrid", "Send", "to", m.To, "subject", m.Subject)

	fromName := s.fromName
	if m.FromName != "" {
		fromName = m.FromName
	}
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(fromName, s.from),
		m.Subject,
		sgmail.NewEmail(m.ToName, m.To),
		m.Text,
		m.HTML,
	)
	if m.ReplyTo != "" {
		msg.SetReplyTo(sgmail.NewEmail("", m.ReplyTo))
	}

	req := sendgrid.GetRequest(s.apiKey, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err == nil && res.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("sendgrid returned status %d: %s", res.StatusCode, res.Body)
	}
	metrics.RecordUpstream("sendgrid", "send", err)
	logger.ExternalServiceResult("sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("%w: failed to send email: %w", ErrUpstream, err)
	}
	return nil
}

type consoleEmailService struct{}

// NewConsoleEmailService logs outgoing mail instead of sending it.
func NewConsoleEmailService() EmailService {
	return consoleEmailService{}
}

func (consoleEmailService) Send(ctx context.Context, m Mail) error {
	logger.Info("Email (console)",
		"to", m.To,
		"reply_to", m.ReplyTo,
		"subject", m.Subject,
		"body", m.Text,
	)
	return nil
}
