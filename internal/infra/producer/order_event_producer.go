package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/foodorder/internal/domain/model/event"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
	"github.com/google/uuid"
)

// 訂單事件producer
// topic: 由producer創建時設置
// kafka msg key為userID，同用戶事件保證順序
type OrderEventProducer struct {
	producer producer.Producer
}

type IOrderEventProducer interface {
	ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error
	ProduceOrderStatusChangedEvent(ctx context.Context, order *model.Order, from, to model.OrderStatus) error
}

func NewOrderEventProducer(producer producer.Producer) *OrderEventProducer {
	return &OrderEventProducer{producer: producer}
}

func (p *OrderEventProducer) ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error {
	event := &evt_model.OrderCreatedEvent{
		BaseEvent: evt_model.BaseEvent{
			EventID:     uuid.New().String(),
			AggregateID: order.OrderID,
			CreatedAt:   time.Now().UTC(),
		},
		OrderID:       order.OrderID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PickupTime:    order.PickupTime,
	}

	msg, err := p.convertToMessage(order.UserID, event)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) ProduceOrderStatusChangedEvent(ctx context.Context, order *model.Order, from, to model.OrderStatus) error {
	event := &evt_model.OrderStatusChangedEvent{
		BaseEvent: evt_model.BaseEvent{
			EventID:     uuid.New().String(),
			AggregateID: order.OrderID,
			CreatedAt:   time.Now().UTC(),
		},
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		FromStatus: from,
		ToStatus:   to,
	}

	msg, err := p.convertToMessage(order.UserID, event)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) convertToMessage(userID string, event evt_model.Event) (message.Message, error) {
	eventValue, err := json.Marshal(event)
	if err != nil {
		return message.Message{}, err
	}

	msg := message.Message{
		Key:   []byte(userID),
		Value: eventValue,
		Headers: []message.Header{
			{
				Key:   "event_type",
				Value: []byte(event.Type()),
			},
		},
	}

	return msg, nil
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
