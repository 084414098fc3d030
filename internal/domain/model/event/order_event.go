package model

import (
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
)

// 訂單建立事件
// Items為建單當下的快照，消費端不可回查購物車
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       string            `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	UserID        string            `json:"user_id"`
	Items         []model.OrderItem `json:"items"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	PickupTime    time.Time         `json:"pickup_time"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	FromStatus model.OrderStatus `json:"from_status"`
	ToStatus   model.OrderStatus `json:"to_status"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}
