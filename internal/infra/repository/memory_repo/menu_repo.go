package memory_repo

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
)

type MenuRepo struct {
	mu    sync.RWMutex
	items map[string]*model.MenuItem
}

func NewMenuRepo() *MenuRepo {
	return &MenuRepo{items: make(map[string]*model.MenuItem)}
}

func copyMenuItem(item *model.MenuItem) *model.MenuItem {
	copied := *item
	copied.Reviews = make([]model.Review, len(item.Reviews))
	copy(copied.Reviews, item.Reviews)
	return &copied
}

func (r *MenuRepo) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemID] = copyMenuItem(item)
	return nil
}

func (r *MenuRepo) GetMenuItemByID(ctx context.Context, itemID string) (*model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return copyMenuItem(item), nil
}

func (r *MenuRepo) GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]model.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *copyMenuItem(item))
	}
	// map走訪無序，固定用ID排序方便測試斷言
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}

func (r *MenuRepo) UpdateMenuItem(ctx context.Context, item *model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemID] = copyMenuItem(item)
	return nil
}

func (r *MenuRepo) DeleteMenuItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

func (r *MenuRepo) AddStock(ctx context.Context, itemID string, quantity int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return 0, db.ErrMenuItemNotFound
	}
	item.StockQuantity += quantity
	return item.StockQuantity, nil
}

func (r *MenuRepo) DeductStock(ctx context.Context, itemID string, quantity int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return 0, db.ErrMenuItemNotFound
	}
	if item.StockQuantity < quantity {
		return 0, db.ErrStockNotEnough
	}
	item.StockQuantity -= quantity
	return item.StockQuantity, nil
}

func (r *MenuRepo) AddSalesCount(ctx context.Context, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil
	}
	item.SalesCount += quantity
	return nil
}

var _ db.IMenuRepository = (*MenuRepo)(nil)
