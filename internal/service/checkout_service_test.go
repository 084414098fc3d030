package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/memory_repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	cartService     *CartService
	orderService    *OrderService
	userService     *UserService
	catalogService  *CatalogService
	checkoutService *CheckoutService
	menuRepo        *memory_repo.MenuRepo
	userRepo        *memory_repo.UserRepo
}

func newCheckoutFixture(t *testing.T, walletBalance int64) *checkoutFixture {
	ctx := context.Background()

	menuRepo := memory_repo.NewMenuRepo()
	userRepo := memory_repo.NewUserRepo()

	items := []model.MenuItem{
		{ItemID: "item-1", Name: "Butter Chicken", Price: decimal.NewFromInt(180), Available: true, StockQuantity: 10},
		{ItemID: "item-2", Name: "Masala Chai", Price: decimal.NewFromInt(25), Available: true, StockQuantity: 100},
	}
	for i := range items {
		require.NoError(t, menuRepo.CreateMenuItem(ctx, &items[i]))
	}
	require.NoError(t, userRepo.CreateUser(ctx, &model.User{
		UserID:        "user-1",
		UserName:      "Royce",
		WalletBalance: decimal.NewFromInt(walletBalance),
	}))

	cartService := NewCartService(memory_repo.NewCartRepo())
	orderService := NewOrderService(memory_repo.NewOrderRepo(), nil)
	userService := NewUserService(userRepo)
	catalogService := NewCatalogService(menuRepo, memory_repo.NewComboRepo(), nil)

	return &checkoutFixture{
		cartService:     cartService,
		orderService:    orderService,
		userService:     userService,
		catalogService:  catalogService,
		checkoutService: NewCheckoutService(cartService, orderService, userService, catalogService),
		menuRepo:        menuRepo,
		userRepo:        userRepo,
	}
}

func (f *checkoutFixture) addChai(ctx context.Context, qty int) {
	chai := model.MenuItem{ItemID: "item-2", Name: "Masala Chai", Price: decimal.NewFromInt(25)}
	key := f.cartService.AddItem(ctx, "user-1", chai, nil)
	if qty > 1 {
		f.cartService.UpdateQuantity(ctx, "user-1", key, qty)
	}
}

func TestCheckoutWithWallet(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 100)
	f.addChai(ctx, 3)

	pickup := time.Now().Add(30 * time.Minute)
	order, err := f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, pickup)
	require.NoError(t, err)
	require.NotNil(t, order)

	// 訂單成立
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.True(t, decimal.NewFromInt(75).Equal(order.TotalAmount))

	// 錢包已扣款
	user, err := f.userService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(user.WalletBalance))

	// 購物車已清空
	assert.Equal(t, 0, f.cartService.GetTotalItems("user-1"))

	// 庫存已扣
	item, err := f.catalogService.GetMenuItem(ctx, "item-2")
	require.NoError(t, err)
	assert.Equal(t, 97, item.StockQuantity)
}

func TestCheckoutInsufficientFundsLeavesEverythingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 50)
	f.addChai(ctx, 3) // 總額75 > 餘額50

	pickup := time.Now().Add(30 * time.Minute)
	_, err := f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, pickup)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// 餘額、購物車、訂單、庫存全部不變
	user, err := f.userService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(user.WalletBalance))

	assert.Equal(t, 3, f.cartService.GetTotalItems("user-1"))

	orders, err := f.orderService.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	item, err := f.catalogService.GetMenuItem(ctx, "item-2")
	require.NoError(t, err)
	assert.Equal(t, 100, item.StockQuantity)
}

func TestCheckoutCashSkipsWallet(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 0)
	f.addChai(ctx, 2)

	pickup := time.Now().Add(30 * time.Minute)
	order, err := f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodCash, pickup)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCash, order.PaymentMethod)

	user, err := f.userService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, user.WalletBalance.IsZero())
}

func TestCheckoutPreconditions(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 100)
	pickup := time.Now().Add(30 * time.Minute)

	// 空購物車
	_, err := f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, pickup)
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.addChai(ctx, 1)

	// 取餐時間
	_, err = f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, time.Time{})
	assert.ErrorIs(t, err, ErrPickupTimeRequired)

	_, err = f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, time.Now().Add(-time.Hour))
	assert.ErrorIs(t, err, ErrPickupTimeInPast)

	// 付款方式
	_, err = f.checkoutService.Checkout(ctx, "user-1", "Royce", "upi", pickup)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	// 前置條件失敗購物車不動
	assert.Equal(t, 1, f.cartService.GetTotalItems("user-1"))
}

func TestCheckoutStockNotEnough(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 10000)

	chai := model.MenuItem{ItemID: "item-2", Name: "Masala Chai", Price: decimal.NewFromInt(25)}
	key := f.cartService.AddItem(ctx, "user-1", chai, nil)
	f.cartService.UpdateQuantity(ctx, "user-1", key, 101) // 庫存只有100

	pickup := time.Now().Add(30 * time.Minute)
	_, err := f.checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, pickup)
	assert.ErrorIs(t, err, ErrStockNotEnough)

	// 沒扣款也沒建單
	user, err := f.userService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10000).Equal(user.WalletBalance))

	orders, err := f.orderService.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// 建單失敗時錢包扣款必須回沖
type failingOrderService struct {
	IOrderService
}

func (f *failingOrderService) CreateOrder(ctx context.Context, userID, userName string, lines []model.CartLine, totalAmount decimal.Decimal, paymentMethod string, pickupTime time.Time) (*model.Order, error) {
	return nil, errors.New("order repo unavailable")
}

func TestCheckoutRefundsWalletOnOrderFailure(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, 100)
	f.addChai(ctx, 2)

	checkoutService := NewCheckoutService(f.cartService, &failingOrderService{IOrderService: f.orderService}, f.userService, f.catalogService)

	pickup := time.Now().Add(30 * time.Minute)
	_, err := checkoutService.Checkout(ctx, "user-1", "Royce", model.PaymentMethodWallet, pickup)
	require.Error(t, err)

	// 扣款已回沖，購物車保留
	user, err := f.userService.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(user.WalletBalance))
	assert.Equal(t, 2, f.cartService.GetTotalItems("user-1"))

	// 留下debit+credit兩筆帳
	entries, err := f.userService.GetWalletEntries(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
