package dataplatform

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"storefront-order-system/shared/pkg/config"
	"storefront-order-system/shared/pkg/metrics"
	"storefront-order-system/shared/pkg/models"
	"storefront-order-system/shared/pkg/rabbit"
)

const EventPageViewed = "storefront.page_viewed"

type publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any, headers amqp.Table) error
}

// dialFunc opens a publisher on exchange. The returned func releases it.
type dialFunc func(url, exchange string) (publisher, func() error, error)

func dialRabbit(url, exchange string) (publisher, func() error, error) {
	rc, err := rabbit.Connect(url)
	if err != nil {
		return nil, nil, err
	}
	if err := rabbit.DeclareTopic(rc.Ch, exchange); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	return rabbit.NewPublisher(rc.Ch, exchange), rc.Close, nil
}

// Client publishes analytics events. Failures are logged and counted,
// never returned: analytics must not break a page.
type Client struct {
	pub   publisher
	close func() error
	log   zerolog.Logger
}

func (c *Client) Track(ctx context.Context, eventType, traceID string, payload models.PageViewedPayload) {
	evt := models.NewEvent(eventType, traceID, payload)

	ctx, cancel := rabbit.WithTimeout(ctx)
	defer cancel()

	if err := c.pub.PublishJSON(ctx, eventType, evt, amqp.Table{"x-trace-id": traceID}); err != nil {
		metrics.AnalyticsPublishErrorsTotal.Inc()
		c.log.Warn().Err(err).Str("event_id", evt.ID).Str("type", eventType).Msg("analytics publish failed")
	}
}

func (c *Client) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// Initializer creates the client on first use, at most once per process.
// A disabled platform or a failed dial is remembered; nothing is retried.
type Initializer struct {
	enabled  bool
	url      string
	exchange string
	log      zerolog.Logger
	dial     dialFunc

	once   sync.Once
	mu     sync.Mutex
	client *Client
}

func NewInitializer(dp config.DataPlatformConfig, rabbitURL string, log zerolog.Logger) *Initializer {
	return &Initializer{
		enabled:  dp.Enabled,
		url:      rabbitURL,
		exchange: dp.Exchange,
		log:      log.With().Str("component", "dataplatform").Logger(),
		dial:     dialRabbit,
	}
}

func (i *Initializer) InitIfEnabled() (*Client, bool) {
	i.once.Do(func() {
		if !i.enabled {
			i.log.Debug().Msg("data platform disabled")
			return
		}
		pub, closeFn, err := i.dial(i.url, i.exchange)
		if err != nil {
			i.log.Error().Err(err).Msg("data platform init failed, analytics off")
			return
		}
		i.mu.Lock()
		i.client = &Client{pub: pub, close: closeFn, log: i.log}
		i.mu.Unlock()
		i.log.Info().Str("exchange", i.exchange).Msg("data platform ready")
	})
	c := i.current()
	return c, c != nil
}

func (i *Initializer) current() *Client {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.client
}

// PageViewed records a storefront page view when the platform is on.
func (i *Initializer) PageViewed(ctx context.Context, traceID string, view models.PageViewedPayload) {
	c, ok := i.InitIfEnabled()
	if !ok {
		return
	}
	c.Track(ctx, EventPageViewed, traceID, view)
}

// Close releases the client if one was created. Later calls are no-ops.
func (i *Initializer) Close() error {
	i.mu.Lock()
	c := i.client
	i.client = nil
	i.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}
