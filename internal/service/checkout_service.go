package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPickupTimeRequired = errors.New("pickup time is required")
	ErrPickupTimeInPast   = errors.New("pickup time must be in the future")
	ErrStockNotEnough     = errors.New("stock is not enough for order")
)

type ICheckoutService interface {
	Checkout(ctx context.Context, userID, userName string, paymentMethod string, pickupTime time.Time) (*model.Order, error)
}

// 結帳流程
// 依序: 驗證前置條件 -> 扣款(錢包) -> 建立訂單 -> 清空購物車
// 建立訂單前任一步失敗，所有engine維持原狀
type CheckoutService struct {
	cartService    ICartService
	orderService   IOrderService
	userService    IUserService
	catalogService ICatalogService
}

func NewCheckoutService(cartService ICartService, orderService IOrderService, userService IUserService, catalogService ICatalogService) *CheckoutService {
	if cartService == nil {
		panic("checkout service dependency cartService is nil")
	}
	if orderService == nil {
		panic("checkout service dependency orderService is nil")
	}
	if userService == nil {
		panic("checkout service dependency userService is nil")
	}
	if catalogService == nil {
		panic("checkout service dependency catalogService is nil")
	}
	return &CheckoutService{
		cartService:    cartService,
		orderService:   orderService,
		userService:    userService,
		catalogService: catalogService,
	}
}

// Checkout 結帳
// 錯誤:
//   - ErrEmptyCart: 購物車為空
//   - ErrPickupTimeRequired / ErrPickupTimeInPast: 取餐時間無效
//   - ErrInvalidPaymentMethod: 付款方式無效
//   - ErrStockNotEnough: 任一品項庫存不足
//   - ErrInsufficientFunds: 錢包餘額不足
func (s *CheckoutService) Checkout(ctx context.Context, userID, userName string, paymentMethod string, pickupTime time.Time) (*model.Order, error) {
	cart := s.cartService.GetCart(userID)
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if pickupTime.IsZero() {
		return nil, ErrPickupTimeRequired
	}
	if pickupTime.Before(time.Now()) {
		return nil, ErrPickupTimeInPast
	}
	if !model.IsValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	for _, line := range cart.Lines {
		enough, err := s.catalogService.CheckStockEnough(ctx, line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !enough {
			return nil, fmt.Errorf("%w: %s", ErrStockNotEnough, line.Name)
		}
	}

	// 錢包付款先扣款，扣款後建單失敗需補償回沖
	if paymentMethod == model.PaymentMethodWallet {
		if _, err := s.userService.DebitWallet(ctx, userID, cart.Total, "order payment"); err != nil {
			return nil, err
		}
	}

	order, err := s.orderService.CreateOrder(ctx, userID, userName, cart.Lines, cart.Total, paymentMethod, pickupTime)
	if err != nil {
		if paymentMethod == model.PaymentMethodWallet {
			if _, cErr := s.userService.CreditWallet(ctx, userID, cart.Total, "order payment refund"); cErr != nil {
				log.Error().Err(cErr).Str("user_id", userID).Msg("failed to refund wallet after order creation failure")
			}
		}
		return nil, err
	}

	// 建單後扣庫存，失敗僅記錄，不回滾訂單
	for _, line := range cart.Lines {
		if _, err := s.catalogService.DeductStock(ctx, line.ItemID, line.Quantity); err != nil {
			log.Warn().Err(err).Str("order_id", order.OrderID).Str("item_id", line.ItemID).Msg("failed to deduct stock after checkout")
		}
	}

	s.cartService.Clear(ctx, userID)
	return order, nil
}

var _ ICheckoutService = (*CheckoutService)(nil)
