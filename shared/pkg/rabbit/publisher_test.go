package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestPublisher_PublishJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "storefront.analytics"}

	err := p.PublishJSON(context.Background(), "storefront.page_viewed", map[string]string{"page": "catalog"}, amqp.Table{"x-correlation-id": "c1"})
	require.NoError(t, err)

	assert.Equal(t, "storefront.analytics", ch.exchange)
	assert.Equal(t, "storefront.page_viewed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "c1", ch.msg.Headers["x-correlation-id"])

	var body map[string]string
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "catalog", body["page"])
}

func TestPublisher_PropagatesError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), "k", []byte("{}"), nil)
	require.EqualError(t, err, "channel closed")
}

func TestPublisher_UnencodableValue(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "x"}

	err := p.PublishJSON(context.Background(), "k", make(chan int), nil)
	require.Error(t, err)
	assert.Empty(t, ch.key)
}
