package service

import (
	"context"
	"time"

	"shoeshop/internal/models"
)

type OrderLineEvent struct {
	Article  string `json:"article"`
	Quantity int    `json:"quantity"`
}

type OrderCreatedEvent struct {
	OrderID    int64              `json:"order_id"`
	ClientName string             `json:"client_name"`
	Status     models.OrderStatus `json:"status"`
	Lines      []OrderLineEvent   `json:"lines"`
	CreatedAt  time.Time          `json:"created_at"`
}

type OrderUpdatedEvent struct {
	OrderID   int64              `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type OrderDeletedEvent struct {
	OrderID   int64     `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// EventBus — необязательный порт: nil-шина означает, что события отключены.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderUpdated(ctx context.Context, e OrderUpdatedEvent) error
	PublishOrderDeleted(ctx context.Context, e OrderDeletedEvent) error
}
