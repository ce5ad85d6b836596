package mail

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured means the provider key, sender or recipient is missing.
// It surfaces on send, not at startup.
var ErrNotConfigured = errors.New("mail configuration incomplete")

type Envelope struct {
	From     string
	FromName string
	To       string
	Subject  string
	Text     string
	HTML     string
	// RefID tags the message for support lookups; sent as X-Order-Ref.
	RefID string
}

type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

// ProviderError is a non-2xx answer from the provider. Body may hold
// provider internals and must not reach API clients.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider returned status %d: %s", e.StatusCode, e.Body)
}
