package memory_repo

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
)

// in-memory購物車存放，介面同redis版CartRepo
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string][]model.CartLine
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string][]model.CartLine)}
}

func (r *CartRepo) SaveCart(ctx context.Context, userID string, lines []model.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]model.CartLine, len(lines))
	copy(copied, lines)
	r.carts[userID] = copied
	return nil
}

func (r *CartRepo) LoadCart(ctx context.Context, userID string) ([]model.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines, ok := r.carts[userID]
	if !ok {
		return []model.CartLine{}, nil
	}
	copied := make([]model.CartLine, len(lines))
	copy(copied, lines)
	return copied, nil
}

func (r *CartRepo) DeleteCart(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
