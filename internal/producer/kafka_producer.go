package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"shoeshop/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderProducer публикует события жизненного цикла заказа в один топик;
// ключ сообщения — id заказа.
type OrderProducer struct {
	writer *kafka.Writer
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *OrderProducer) publish(ctx context.Context, orderID int64, eventType string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

func (p *OrderProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.OrderID, "order.created", e)
}

func (p *OrderProducer) PublishOrderUpdated(ctx context.Context, e service.OrderUpdatedEvent) error {
	return p.publish(ctx, e.OrderID, "order.updated", e)
}

func (p *OrderProducer) PublishOrderDeleted(ctx context.Context, e service.OrderDeletedEvent) error {
	return p.publish(ctx, e.OrderID, "order.deleted", e)
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
