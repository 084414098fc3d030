package main

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/appcontext"
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// seedCatalog 初始菜單資料，已存在則跳過
func seedCatalog(ctx context.Context, app *appcontext.ApplicationContext) error {
	items := []model.MenuItem{
		{
			ItemID:      "item-butter-chicken",
			Name:        "Butter Chicken",
			Description: "Creamy tomato gravy with tender chicken",
			Price:       decimal.NewFromInt(180),
			CostPrice:   decimal.NewFromInt(95),
			Category:    "main",
			Available:   true,
			CustomizationOptions: map[string][]string{
				"spiceLevel": {"mild", "medium", "hot"},
				"portion":    {"half", "full"},
			},
			PreparationTime: 20,
			StockQuantity:   50,
		},
		{
			ItemID:      "item-masala-chai",
			Name:        "Masala Chai",
			Description: "Spiced milk tea",
			Price:       decimal.NewFromInt(25),
			CostPrice:   decimal.NewFromInt(8),
			Category:    "beverage",
			Available:   true,
			CustomizationOptions: map[string][]string{
				"sugar": {"none", "regular", "extra"},
			},
			PreparationTime: 5,
			StockQuantity:   200,
		},
		{
			ItemID:          "item-veg-thali",
			Name:            "Veg Thali",
			Description:     "Daily vegetarian platter",
			Price:           decimal.NewFromInt(120),
			CostPrice:       decimal.NewFromInt(60),
			Category:        "main",
			Available:       true,
			PreparationTime: 15,
			StockQuantity:   80,
		},
		{
			ItemID:          "item-samosa",
			Name:            "Samosa",
			Description:     "Crispy potato filled pastry",
			Price:           decimal.NewFromInt(15),
			CostPrice:       decimal.NewFromInt(5),
			Category:        "snack",
			Available:       true,
			PreparationTime: 5,
			StockQuantity:   150,
		},
	}

	combos := []model.ComboOffer{
		{
			ComboID:         "combo-chai-samosa",
			Name:            "Chai + Samosa",
			Description:     "Evening snack combo",
			OriginalPrice:   decimal.NewFromInt(40),
			DiscountedPrice: decimal.NewFromInt(35),
			Items: []model.ComboItem{
				{ItemID: "item-masala-chai", Quantity: 1},
				{ItemID: "item-samosa", Quantity: 1},
			},
			ValidDays:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			ValidUntil: time.Now().AddDate(1, 0, 0),
			IsActive:   true,
		},
	}

	existingCombos, err := app.CatalogService.GetAllCombos(ctx)
	if err != nil {
		return err
	}
	comboExists := make(map[string]bool, len(existingCombos))
	for _, c := range existingCombos {
		comboExists[c.ComboID] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		item := items[i]
		g.Go(func() error {
			existing, err := app.CatalogService.GetMenuItem(gctx, item.ItemID)
			if err == nil && existing != nil {
				return nil
			}
			return app.CatalogService.CreateMenuItem(gctx, &item)
		})
	}
	for i := range combos {
		combo := combos[i]
		if comboExists[combo.ComboID] {
			continue
		}
		g.Go(func() error {
			return app.CatalogService.CreateCombo(gctx, &combo)
		})
	}
	return g.Wait()
}
