package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單 db
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
// 查無資料回傳nil, nil，由service層決定要不要當錯誤
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單，新到舊
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單，新到舊
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 根據狀態查詢訂單，新到舊
func (s *OrderRepo) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Update - 更新訂單狀態
// 狀態機合法性由service層把關，repo只負責寫入
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}

// 分頁查詢訂單
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	// 計算總數
	s.db.WithContext(ctx).Model(&model.Order{}).Count(&total)

	// 分頁查詢
	err := s.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

var _ IOrderRepository = (*OrderRepo)(nil)
