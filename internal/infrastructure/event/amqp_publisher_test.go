package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Handle(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "orders", nil)
	assert.Equal(t, []string{trade.EventTypeOrderPlaced}, p.EventTypes())

	order, err := trade.NewOrder(uuid.New(), nil, trade.PaymentMethodCard, []trade.LineInput{
		{ProductID: uuid.New(), Quantity: 2, Price: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	placed := order.GetDomainEvents()[0]

	require.NoError(t, p.Handle(context.Background(), placed))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "orders", ch.keys[0])

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, trade.EventTypeOrderPlaced, msg.Type)

	var body Message
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, order.ID.String(), body.AggregateID)

	var payload trade.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(body.Payload, &payload))
	assert.True(t, payload.TotalAmount.Equal(decimal.NewFromInt(22)))
	assert.Len(t, payload.Items, 1)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newAMQPPublisher(ch, "orders", nil)

	err := p.Handle(context.Background(), newTestEvent(trade.EventTypeOrderPlaced))
	assert.ErrorContains(t, err, "channel closed")
}
