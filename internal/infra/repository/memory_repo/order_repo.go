package memory_repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
)

// in-memory訂單存放
// demo模式使用，也供單元測試當作order store
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{orders: make(map[string]*model.Order)}
}

func copyOrder(order *model.Order) *model.Order {
	copied := *order
	copied.Items = make([]model.OrderItem, len(order.Items))
	copy(copied.Items, order.Items)
	return &copied
}

func (r *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderID] = copyOrder(order)
	return nil
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	return copyOrder(order), nil
}

func (r *OrderRepo) GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]model.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *copyOrder(order))
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *copyOrder(order))
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, *copyOrder(order))
	}
	sortOrdersNewestFirst(all)

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start < 0 || start >= len(all) {
		return []model.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *OrderRepo) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]model.Order, 0)
	for _, order := range r.orders {
		if order.Status == status {
			orders = append(orders, *copyOrder(order))
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// 新到舊，同時間以編號遞減保持穩定
func sortOrdersNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].OrderNumber > orders[j].OrderNumber
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

var _ db.IOrderRepository = (*OrderRepo)(nil)
