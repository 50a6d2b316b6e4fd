package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/vendora-platform/backend/services/cart-service/models"
)

// CheckoutPublisher publishes checkout events; satisfied by Producer and
// mocked in controller tests.
type CheckoutPublisher interface {
	SendCheckoutEvent(ctx context.Context, event models.CheckoutEvent) error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// SendCheckoutEvent publishes the event keyed by cart owner so events for
// one cart stay ordered within a partition.
func (p *Producer) SendCheckoutEvent(ctx context.Context, event models.CheckoutEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OwnerID),
		Value: data,
	})
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
