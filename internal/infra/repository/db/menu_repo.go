package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrMenuItemNotFound 品項不存在
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrStockNotEnough 庫存不足
	ErrStockNotEnough = errors.New("stock not enough")
)

type MenuRepo struct {
	db *DbDao
}

func NewMenuRepo(db *DbDao) *MenuRepo {
	return &MenuRepo{db: db}
}

// Create - 創建品項
func (s *MenuRepo) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Read - 根據ID查詢品項
func (s *MenuRepo) GetMenuItemByID(ctx context.Context, itemID string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := s.db.WithContext(ctx).Preload("Reviews").First(&item, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Read - 查詢所有品項
func (s *MenuRepo) GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := s.db.WithContext(ctx).Preload("Reviews").Find(&items).Error
	return items, err
}

// Update - 更新品項
func (s *MenuRepo) UpdateMenuItem(ctx context.Context, item *model.MenuItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// Delete - 軟刪除品項
func (s *MenuRepo) DeleteMenuItem(ctx context.Context, itemID string) error {
	return s.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.MenuItem{}).Error
}

// AddStock 增加庫存，回傳異動後庫存
func (s *MenuRepo) AddStock(ctx context.Context, itemID string, quantity int) (int, error) {
	var currentStock int
	err := s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.MenuItem{}).
			Where("item_id = ?", itemID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMenuItemNotFound
		}

		// update後該row已被本交易鎖住，重讀取得異動後庫存
		var item model.MenuItem
		if err := tx.Where("item_id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		currentStock = item.StockQuantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// DeductStock 扣除庫存，不足時回傳ErrStockNotEnough，回傳異動後庫存
// 以條件式update擋下並發扣庫存，庫存不會被扣成負數
func (s *MenuRepo) DeductStock(ctx context.Context, itemID string, quantity int) (int, error) {
	var currentStock int
	err := s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.MenuItem{}).
			Where("item_id = ? AND stock_quantity >= ?", itemID, quantity).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var item model.MenuItem
			if err := tx.Where("item_id = ?", itemID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMenuItemNotFound
				}
				return err
			}
			return ErrStockNotEnough
		}

		var item model.MenuItem
		if err := tx.Where("item_id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		currentStock = item.StockQuantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// AddSalesCount 累計銷售數，由訂單事件消費端呼叫
func (s *MenuRepo) AddSalesCount(ctx context.Context, itemID string, quantity int) error {
	return s.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("item_id = ?", itemID).
		Update("sales_count", gorm.Expr("sales_count + ?", quantity)).Error
}

var _ IMenuRepository = (*MenuRepo)(nil)
