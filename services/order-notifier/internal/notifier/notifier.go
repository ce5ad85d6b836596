package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-order-system/services/order-notifier/internal/mail"
	"storefront-order-system/shared/pkg/config"
	"storefront-order-system/shared/pkg/metrics"
	"storefront-order-system/shared/pkg/models"
)

const (
	MsgMethodNotAllowed = "method not allowed"
	MsgInvalidBody      = "invalid request body"
	MsgSendFailed       = "failed to send order notification"
	MsgInternal         = "internal server error"
	MsgSent             = "Order notification sent"
)

// Request is one invocation, independent of how it arrived (HTTP or Lambda).
type Request struct {
	Method        string
	Body          []byte
	CorrelationID string
}

type Response struct {
	Status int
	Body   any
}

type SuccessBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

type Config struct {
	From           string
	FromName       string
	To             string
	CurrencySymbol string
	// SendTimeout bounds a single dispatch; zero leaves only the caller's deadline.
	SendTimeout time.Duration
}

type Notifier struct {
	sender   mail.Sender
	renderer Renderer
	cfg      Config
	log      zerolog.Logger
	newRef   func() string
}

func New(sender mail.Sender, renderer Renderer, cfg Config, log zerolog.Logger) *Notifier {
	return &Notifier{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
		newRef:   uuid.NewString,
	}
}

// Submit validates one order and forwards it to the operator mailbox.
// It never retries: each call dispatches at most once.
func (n *Notifier) Submit(ctx context.Context, req Request) (resp Response) {
	log := n.log.With().Str("correlation_id", req.CorrelationID).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("order notification panicked")
			metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
			resp = errorResponse(http.StatusInternalServerError, MsgInternal)
		}
	}()

	if req.Method != http.MethodPost {
		metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return errorResponse(http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}

	order, err := models.DecodeSubmission(req.Body)
	if err != nil {
		log.Warn().Err(err).Msg("order body rejected")
		metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return errorResponse(http.StatusBadRequest, MsgInvalidBody)
	}

	ref := n.newRef()
	log = log.With().Str("ref_id", ref).Logger()

	if order.TotalMismatch() {
		computed, _ := order.ComputedTotal()
		log.Warn().
			Str("supplied_total", order.Total.String()).
			Str("computed_total", computed.String()).
			Msg("order total does not match line items, using computed total")
	}

	env, err := n.envelope(order, ref)
	if err != nil {
		log.Error().Err(err).Msg("render order notification")
		metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return errorResponse(http.StatusInternalServerError, MsgSendFailed)
	}

	if err := n.dispatch(ctx, env); err != nil {
		ev := log.Error().Err(err)
		var pe *mail.ProviderError
		if errors.As(err, &pe) {
			ev = ev.Int("provider_status", pe.StatusCode)
		}
		ev.Msg("order notification not sent")
		metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return errorResponse(http.StatusInternalServerError, MsgSendFailed)
	}

	log.Info().
		Str("customer", order.CustomerName).
		Int("items", len(order.LineItems)).
		Msg("order notification sent")
	metrics.OrderNotificationsTotal.WithLabelValues(metrics.ResultSent).Inc()
	return Response{Status: http.StatusOK, Body: SuccessBody{Success: true, Message: MsgSent}}
}

func (n *Notifier) envelope(order models.OrderSubmission, ref string) (mail.Envelope, error) {
	view := NewView(order, ref, n.cfg.CurrencySymbol)

	body, err := n.renderer.Render(view)
	if err != nil {
		return mail.Envelope{}, err
	}

	env := mail.Envelope{
		From:     n.cfg.From,
		FromName: n.cfg.FromName,
		To:       n.cfg.To,
		Subject:  fmt.Sprintf("New order from %s", view.Name),
		RefID:    ref,
	}
	if n.renderer.Format() == FormatHTML {
		env.HTML = body
	} else {
		env.Text = body
	}
	return env, nil
}

func (n *Notifier) dispatch(ctx context.Context, env mail.Envelope) error {
	if n.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.SendTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		metrics.OrderDispatchDuration.Observe(time.Since(start).Seconds())
	}()
	return n.sender.Send(ctx, env)
}

func errorResponse(status int, msg string) Response {
	return Response{Status: status, Body: ErrorBody{Error: msg}}
}

func ConfigFromEnv(mc config.MailConfig) Config {
	return Config{
		From:           mc.From,
		FromName:       mc.FromName,
		To:             mc.To,
		CurrencySymbol: mc.CurrencySymbol,
		SendTimeout:    mc.SendTimeout,
	}
}
