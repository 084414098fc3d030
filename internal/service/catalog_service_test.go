package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/memory_repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	catalogService := NewCatalogService(memory_repo.NewMenuRepo(), memory_repo.NewComboRepo(), nil)
	err := catalogService.CreateMenuItem(context.Background(), &model.MenuItem{
		ItemID:        "item-1",
		Name:          "Butter Chicken",
		Price:         decimal.NewFromInt(180),
		Available:     true,
		StockQuantity: 10,
	})
	require.NoError(t, err)
	return catalogService
}

func TestCatalogMenuCRUD(t *testing.T) {
	ctx := context.Background()
	catalogService := newTestCatalogService(t)

	items, err := catalogService.GetAllMenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item, err := catalogService.GetMenuItem(ctx, "item-1")
	require.NoError(t, err)
	item.Price = decimal.NewFromInt(190)
	require.NoError(t, catalogService.UpdateMenuItem(ctx, item))

	got, err := catalogService.GetMenuItem(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(190).Equal(got.Price))

	require.NoError(t, catalogService.DeleteMenuItem(ctx, "item-1"))
	_, err = catalogService.GetMenuItem(ctx, "item-1")
	assert.ErrorIs(t, err, ErrMenuItemNotExist)
}

func TestCatalogStockOperations(t *testing.T) {
	ctx := context.Background()
	catalogService := newTestCatalogService(t)

	stock, err := catalogService.AddStock(ctx, "item-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)

	stock, err = catalogService.DeductStock(ctx, "item-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 12, stock)

	enough, err := catalogService.CheckStockEnough(ctx, "item-1", 12)
	require.NoError(t, err)
	assert.True(t, enough)

	enough, err = catalogService.CheckStockEnough(ctx, "item-1", 13)
	require.NoError(t, err)
	assert.False(t, enough)
}

func TestCatalogStockUnavailableItem(t *testing.T) {
	ctx := context.Background()
	catalogService := newTestCatalogService(t)

	item, err := catalogService.GetMenuItem(ctx, "item-1")
	require.NoError(t, err)
	item.Available = false
	require.NoError(t, catalogService.UpdateMenuItem(ctx, item))

	// 下架品項不論庫存都不可購買
	enough, err := catalogService.CheckStockEnough(ctx, "item-1", 1)
	require.NoError(t, err)
	assert.False(t, enough)
}

func TestCatalogActiveCombos(t *testing.T) {
	ctx := context.Background()
	catalogService := newTestCatalogService(t)

	// 2026-08-24 是星期一
	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	require.NoError(t, catalogService.CreateCombo(ctx, &model.ComboOffer{
		ComboID:         "combo-weekday",
		Name:            "Weekday Special",
		DiscountedPrice: decimal.NewFromInt(35),
		ValidDays:       []string{"Monday"},
		ValidUntil:      monday.AddDate(0, 1, 0),
		IsActive:        true,
	}))
	require.NoError(t, catalogService.CreateCombo(ctx, &model.ComboOffer{
		ComboID:         "combo-expired",
		Name:            "Old Special",
		DiscountedPrice: decimal.NewFromInt(30),
		ValidUntil:      monday.AddDate(0, -1, 0),
		IsActive:        true,
	}))
	require.NoError(t, catalogService.CreateCombo(ctx, &model.ComboOffer{
		ComboID:         "combo-inactive",
		Name:            "Disabled Special",
		DiscountedPrice: decimal.NewFromInt(30),
		ValidUntil:      monday.AddDate(0, 1, 0),
	}))

	active, err := catalogService.GetActiveCombos(ctx, monday)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "combo-weekday", active[0].ComboID)

	all, err := catalogService.GetAllCombos(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCatalogComboCRUD(t *testing.T) {
	ctx := context.Background()
	catalogService := newTestCatalogService(t)

	combo := &model.ComboOffer{
		ComboID:         "combo-1",
		Name:            "Lunch Special",
		DiscountedPrice: decimal.NewFromInt(99),
		ValidUntil:      time.Now().AddDate(0, 1, 0),
		IsActive:        true,
	}
	require.NoError(t, catalogService.CreateCombo(ctx, combo))

	combo.Name = "Lunch Deal"
	require.NoError(t, catalogService.UpdateCombo(ctx, combo))

	// 不存在的combo不能update
	err := catalogService.UpdateCombo(ctx, &model.ComboOffer{ComboID: "missing"})
	assert.ErrorIs(t, err, ErrComboNotExist)

	require.NoError(t, catalogService.DeleteCombo(ctx, "combo-1"))
	all, err := catalogService.GetAllCombos(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
