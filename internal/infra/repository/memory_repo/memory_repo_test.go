package memory_repo

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepoStock(t *testing.T) {
	ctx := context.Background()
	menuRepo := NewMenuRepo()

	require.NoError(t, menuRepo.CreateMenuItem(ctx, &model.MenuItem{ItemID: "item-1", StockQuantity: 5}))

	stock, err := menuRepo.AddStock(ctx, "item-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, stock)

	stock, err = menuRepo.DeductStock(ctx, "item-1", 8)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = menuRepo.DeductStock(ctx, "item-1", 1)
	assert.ErrorIs(t, err, db.ErrStockNotEnough)

	_, err = menuRepo.AddStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, db.ErrMenuItemNotFound)
}

func TestMenuRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	menuRepo := NewMenuRepo()

	require.NoError(t, menuRepo.CreateMenuItem(ctx, &model.MenuItem{ItemID: "item-1", Name: "Samosa"}))

	item, err := menuRepo.GetMenuItemByID(ctx, "item-1")
	require.NoError(t, err)
	item.Name = "mutated"

	got, err := menuRepo.GetMenuItemByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Samosa", got.Name)
}

func TestOrderRepoNewestFirst(t *testing.T) {
	ctx := context.Background()
	orderRepo := NewOrderRepo()

	base := time.Now()
	for i, id := range []string{"order-1", "order-2", "order-3"} {
		order := &model.Order{OrderID: id, OrderNumber: id, UserID: "user-1", Status: model.OrderStatusPending}
		order.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, orderRepo.CreateOrder(ctx, order))
	}

	orders, err := orderRepo.GetOrdersByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "order-3", orders[0].OrderID)
	assert.Equal(t, "order-1", orders[2].OrderID)
}

func TestOrderRepoStatusChangeTouchesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	orderRepo := NewOrderRepo()

	order := &model.Order{OrderID: "order-1", OrderNumber: "CB1", UserID: "user-1", Status: model.OrderStatusPending}
	order.UpdatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, orderRepo.CreateOrder(ctx, order))

	before := time.Now()
	require.NoError(t, orderRepo.UpdateOrderStatus(ctx, "order-1", model.OrderStatusPreparing))

	got, err := orderRepo.GetOrderByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, got.Status)
	assert.False(t, got.UpdatedAt.Before(before.Add(-time.Second)))
	assert.True(t, got.UpdatedAt.After(order.UpdatedAt))
}

func TestOrderRepoPaginated(t *testing.T) {
	ctx := context.Background()
	orderRepo := NewOrderRepo()

	base := time.Now()
	for i := 0; i < 5; i++ {
		order := &model.Order{
			OrderID:     "order-" + string(rune('a'+i)),
			OrderNumber: "CB" + string(rune('a'+i)),
			UserID:      "user-1",
			Status:      model.OrderStatusPending,
		}
		order.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, orderRepo.CreateOrder(ctx, order))
	}

	page1, total, err := orderRepo.GetOrdersPaginated(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "order-e", page1[0].OrderID)

	page3, total, err := orderRepo.GetOrdersPaginated(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page3, 1)
	assert.Equal(t, "order-a", page3[0].OrderID)

	empty, total, err := orderRepo.GetOrdersPaginated(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, empty)
}

func TestOrderRepoMissingOrder(t *testing.T) {
	ctx := context.Background()
	orderRepo := NewOrderRepo()

	order, err := orderRepo.GetOrderByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUserRepoApplyWalletDelta(t *testing.T) {
	ctx := context.Background()
	userRepo := NewUserRepo()

	require.NoError(t, userRepo.CreateUser(ctx, &model.User{UserID: "user-1", WalletBalance: decimal.NewFromInt(100)}))

	entry := &model.WalletEntry{
		UserID:    "user-1",
		EntryType: model.WalletEntryDebit,
		Delta:     decimal.NewFromInt(-30),
		Balance:   decimal.NewFromInt(70),
		EntryDate: time.Now(),
	}
	require.NoError(t, userRepo.ApplyWalletDelta(ctx, entry, decimal.NewFromInt(70)))

	user, err := userRepo.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(user.WalletBalance))

	entries, err := userRepo.GetWalletEntries(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(-30).Equal(entries[0].Delta))
}

func TestCartRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	cartRepo := NewCartRepo()

	lines := []model.CartLine{
		{ItemID: "item-1", Quantity: 2, Customization: map[string]string{"spiceLevel": "hot"}},
		{ItemID: "item-2", Quantity: 1},
	}
	require.NoError(t, cartRepo.SaveCart(ctx, "user-1", lines))

	got, err := cartRepo.LoadCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].ItemID)

	// 未存過的用戶回空slice
	empty, err := cartRepo.LoadCart(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, cartRepo.DeleteCart(ctx, "user-1"))
	got, err = cartRepo.LoadCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
