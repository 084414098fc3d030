package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/foodorder/internal/domain/model/event"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/consumer"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
)

// 訂單事件消費端
// 維護銷售數read model：訂單完成時把各品項數量累計到sales_count
type OrderEventConsumer struct {
	*baseConsumer
}

func NewOrderEventConsumer(kafkaConsumer consumer.Consumer, orderRepo db.IOrderRepository, menuRepo db.IMenuRepository) *OrderEventConsumer {
	handler := &orderEventHandler{orderRepo: orderRepo, menuRepo: menuRepo}
	return &OrderEventConsumer{baseConsumer: newBaseConsumer(kafkaConsumer, handler)}
}

type orderEventHandler struct {
	orderRepo db.IOrderRepository
	menuRepo  db.IMenuRepository
}

func (h *orderEventHandler) Handle(ctx context.Context, msg message.Message) error {
	eventType, err := extractEventType(msg)
	if err != nil {
		return err
	}

	switch eventType {
	case evt_model.OrderStatusChangedEventName:
		var event evt_model.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownEventFormat, err)
		}
		return h.handleStatusChanged(ctx, &event)
	case evt_model.OrderCreatedEventName:
		// 建單事件目前只做讀模型預熱用途，沒有消費端動作
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrEventTypeNotFound, eventType)
	}
}

// 只有進入completed才算一筆銷售
func (h *orderEventHandler) handleStatusChanged(ctx context.Context, event *evt_model.OrderStatusChangedEvent) error {
	if event.ToStatus != model.OrderStatusCompleted {
		return nil
	}

	order, err := h.orderRepo.GetOrderByID(ctx, event.OrderID)
	if err != nil {
		return fmt.Errorf("get order for sales count: %w", err)
	}
	if order == nil {
		return nil
	}

	for i := range order.Items {
		if err := h.menuRepo.AddSalesCount(ctx, order.Items[i].ItemID, order.Items[i].Quantity); err != nil {
			return fmt.Errorf("add sales count for item %s: %w", order.Items[i].ItemID, err)
		}
	}
	return nil
}

func extractEventType(msg message.Message) (evt_model.EventType, error) {
	for _, header := range msg.Headers {
		if header.Key == "event_type" {
			return evt_model.EventType(header.Value), nil
		}
	}
	return "", ErrEventTypeNotFound
}
