package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/foodorder/internal/domain/model/event"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/memory_repo"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusChangedMessage(t *testing.T, orderID string, from, to model.OrderStatus) message.Message {
	event := &evt_model.OrderStatusChangedEvent{
		BaseEvent: evt_model.BaseEvent{
			EventID:     "evt-1",
			AggregateID: orderID,
			CreatedAt:   time.Now().UTC(),
		},
		OrderID:    orderID,
		UserID:     "user-1",
		FromStatus: from,
		ToStatus:   to,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.Message{
		Key:   []byte("user-1"),
		Value: payload,
		Headers: []message.Header{
			{Key: "event_type", Value: []byte(evt_model.OrderStatusChangedEventName)},
		},
	}
}

func setupHandlerTest(t *testing.T) (*orderEventHandler, *memory_repo.MenuRepo, string) {
	ctx := context.Background()
	orderRepo := memory_repo.NewOrderRepo()
	menuRepo := memory_repo.NewMenuRepo()

	require.NoError(t, menuRepo.CreateMenuItem(ctx, &model.MenuItem{
		ItemID: "item-1", Name: "Butter Chicken", Price: decimal.NewFromInt(180), StockQuantity: 10,
	}))
	require.NoError(t, menuRepo.CreateMenuItem(ctx, &model.MenuItem{
		ItemID: "item-2", Name: "Masala Chai", Price: decimal.NewFromInt(25), StockQuantity: 100,
	}))

	order := &model.Order{
		OrderID:     "order-1",
		OrderNumber: "CB17000000000001",
		UserID:      "user-1",
		Status:      model.OrderStatusReady,
		TotalAmount: decimal.NewFromInt(435),
		PickupTime:  time.Now(),
		Items: []model.OrderItem{
			{OrderID: "order-1", ItemID: "item-1", Quantity: 2, Price: decimal.NewFromInt(180)},
			{OrderID: "order-1", ItemID: "item-2", Quantity: 3, Price: decimal.NewFromInt(25)},
		},
	}
	require.NoError(t, orderRepo.CreateOrder(ctx, order))

	return &orderEventHandler{orderRepo: orderRepo, menuRepo: menuRepo}, menuRepo, order.OrderID
}

func TestHandleStatusChangedCompletedAddsSalesCount(t *testing.T) {
	ctx := context.Background()
	handler, menuRepo, orderID := setupHandlerTest(t)

	msg := newStatusChangedMessage(t, orderID, model.OrderStatusReady, model.OrderStatusCompleted)
	require.NoError(t, handler.Handle(ctx, msg))

	item1, err := menuRepo.GetMenuItemByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 2, item1.SalesCount)

	item2, err := menuRepo.GetMenuItemByID(ctx, "item-2")
	require.NoError(t, err)
	assert.Equal(t, 3, item2.SalesCount)
}

func TestHandleStatusChangedNonCompletedIgnored(t *testing.T) {
	ctx := context.Background()
	handler, menuRepo, orderID := setupHandlerTest(t)

	msg := newStatusChangedMessage(t, orderID, model.OrderStatusPending, model.OrderStatusPreparing)
	require.NoError(t, handler.Handle(ctx, msg))

	item, err := menuRepo.GetMenuItemByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, item.SalesCount)
}

func TestHandleUnknownOrderIgnored(t *testing.T) {
	ctx := context.Background()
	handler, _, _ := setupHandlerTest(t)

	msg := newStatusChangedMessage(t, "missing", model.OrderStatusReady, model.OrderStatusCompleted)
	assert.NoError(t, handler.Handle(ctx, msg))
}

func TestHandleMissingEventTypeHeader(t *testing.T) {
	ctx := context.Background()
	handler, _, _ := setupHandlerTest(t)

	err := handler.Handle(ctx, message.Message{Value: []byte("{}")})
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestHandleMalformedPayload(t *testing.T) {
	ctx := context.Background()
	handler, _, _ := setupHandlerTest(t)

	err := handler.Handle(ctx, message.Message{
		Value: []byte("not-json"),
		Headers: []message.Header{
			{Key: "event_type", Value: []byte(evt_model.OrderStatusChangedEventName)},
		},
	})
	assert.ErrorIs(t, err, ErrUnknownEventFormat)
}
