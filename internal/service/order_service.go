package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotExist        = errors.New("order is not exist")
	ErrEmptyOrderLines      = errors.New("order must contain at least one line")
	ErrTotalAmountMismatch  = errors.New("total amount does not match order lines")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidQuantity      = errors.New("line quantity must be at least 1")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrCredentialMismatch   = errors.New("pickup credential does not match order")
)

type IOrderService interface {
	CreateOrder(ctx context.Context, userID, userName string, lines []model.CartLine, totalAmount decimal.Decimal, paymentMethod string, pickupTime time.Time) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, newStatus model.OrderStatus) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	VerifyPickupCredential(ctx context.Context, credential string) (*model.Order, error)
}

// 訂單engine
// 建單時把購物車lines以值複製成快照，之後items與金額不再變動
type OrderService struct {
	orderRepo     db.IOrderRepository
	eventProducer producer.IOrderEventProducer
}

// eventProducer可為nil，demo模式不發事件
func NewOrderService(orderRepo db.IOrderRepository, eventProducer producer.IOrderEventProducer) *OrderService {
	if orderRepo == nil {
		panic("order service dependency orderRepo is nil")
	}
	return &OrderService{orderRepo: orderRepo, eventProducer: eventProducer}
}

// CreateOrder 建立訂單
// lines不可為空、totalAmount必須等於快照加總、paymentMethod必須合法
// 任一驗證失敗不會留下任何資料
func (o *OrderService) CreateOrder(ctx context.Context, userID, userName string, lines []model.CartLine, totalAmount decimal.Decimal, paymentMethod string, pickupTime time.Time) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrderLines
	}
	if !model.IsValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, paymentMethod)
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()

	items := make([]model.OrderItem, 0, len(lines))
	linesTotal := decimal.Zero
	for i := range lines {
		if lines[i].Quantity < 1 {
			return nil, fmt.Errorf("%w: item %s", ErrInvalidQuantity, lines[i].ItemID)
		}
		var customization map[string]string
		if lines[i].Customization != nil {
			customization = make(map[string]string, len(lines[i].Customization))
			for k, v := range lines[i].Customization {
				customization[k] = v
			}
		}
		items = append(items, model.OrderItem{
			OrderID:       orderID,
			ItemID:        lines[i].ItemID,
			Name:          lines[i].Name,
			Price:         lines[i].Price,
			Quantity:      lines[i].Quantity,
			Customization: customization,
		})
		linesTotal = linesTotal.Add(lines[i].Subtotal())
	}

	if !linesTotal.Equal(totalAmount) {
		return nil, fmt.Errorf("%w: lines total %s, requested %s", ErrTotalAmountMismatch, linesTotal, totalAmount)
	}

	orderNumber := util.NewOrderNumber(now)
	qrCode, err := util.NewPickupCredential(orderID, orderNumber, userID, now)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		OrderID:       orderID,
		OrderNumber:   orderNumber,
		UserID:        userID,
		UserName:      userName,
		Items:         items,
		TotalAmount:   totalAmount,
		Status:        model.OrderStatusPending,
		PaymentMethod: paymentMethod,
		PickupTime:    pickupTime,
		QRCode:        qrCode,
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := o.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// 事件為best-effort，失敗只記log不影響建單
	if o.eventProducer != nil {
		if err := o.eventProducer.ProduceOrderCreatedEvent(ctx, order); err != nil {
			log.Error().Err(err).Str("order_id", orderID).Msg("failed to produce order created event")
		}
	}

	return order, nil
}

// UpdateOrderStatus 狀態異動
// 非法狀態與不可達的轉移都會被擋下，含admin直接跳狀態
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, newStatus model.OrderStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotExist
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	if o.eventProducer != nil {
		if err := o.eventProducer.ProduceOrderStatusChangedEvent(ctx, order, order.Status, newStatus); err != nil {
			log.Error().Err(err).Str("order_id", orderID).Msg("failed to produce order status changed event")
		}
	}

	return nil
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}
	return order, nil
}

func (o *OrderService) GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (o *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return o.orderRepo.GetAllOrders(ctx)
}

// GetOrdersPaginated 後台訂單列表
func (o *OrderService) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return o.orderRepo.GetOrdersPaginated(ctx, page, pageSize)
}

func (o *OrderService) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return o.orderRepo.GetOrdersByStatus(ctx, status)
}

// VerifyPickupCredential 櫃檯核對取餐憑證
func (o *OrderService) VerifyPickupCredential(ctx context.Context, credential string) (*model.Order, error) {
	orderID, orderNumber, userID, err := util.DecodePickupCredential(credential)
	if err != nil {
		return nil, err
	}

	order, err := o.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderNumber != orderNumber || order.UserID != userID {
		return nil, ErrCredentialMismatch
	}
	return order, nil
}

var _ IOrderService = (*OrderService)(nil)
