package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendEndpoint = "/v3/mail/send"

// SendGrid delivers through the SendGrid v3 API. From must be a verified
// sender identity on the account or the API answers 403.
type SendGrid struct {
	apiKey string
	host   string
}

func NewSendGrid(apiKey, host string) *SendGrid {
	return &SendGrid{apiKey: apiKey, host: host}
}

func (s *SendGrid) Send(ctx context.Context, env Envelope) error {
	if s.apiKey == "" || env.From == "" || env.To == "" {
		return ErrNotConfigured
	}

	req := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(buildMessage(env))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return nil
}

func buildMessage(env Envelope) *sgmail.SGMailV3 {
	var contents []*sgmail.Content
	// text/plain must precede text/html.
	if env.Text != "" {
		contents = append(contents, sgmail.NewContent("text/plain", env.Text))
	}
	if env.HTML != "" {
		contents = append(contents, sgmail.NewContent("text/html", env.HTML))
	}

	m := sgmail.NewV3MailInit(
		sgmail.NewEmail(env.FromName, env.From),
		env.Subject,
		sgmail.NewEmail("", env.To),
		contents...,
	)
	if env.RefID != "" {
		m.Headers = map[string]string{"X-Order-Ref": env.RefID}
	}
	return m
}
