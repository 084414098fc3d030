package service

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	AddItem(ctx context.Context, userID string, item model.MenuItem, customization map[string]string) string
	RemoveLine(ctx context.Context, userID string, lineKey string)
	UpdateQuantity(ctx context.Context, userID string, lineKey string, quantity int)
	Clear(ctx context.Context, userID string)
	GetCart(userID string) model.Cart
	GetTotalPrice(userID string) decimal.Decimal
	GetTotalItems(userID string) int
	OpenCart(userID string)
	CloseCart(userID string)
	LoadCart(ctx context.Context, userID string) error
	ReleaseCart(userID string)
}

// 購物車engine
// 每個用戶一份in-memory cart，所有異動同步改derived欄位
// 異動後非同步存到remote store，失敗不影響下一次操作
type CartService struct {
	saver *cartSaver
	store ICartStore

	mu    sync.Mutex
	carts map[string]*model.Cart
}

func NewCartService(store ICartStore) *CartService {
	if store == nil {
		panic("cart service dependency store is nil")
	}
	return &CartService{
		saver: newCartSaver(store),
		store: store,
		carts: make(map[string]*model.Cart),
	}
}

// 取用戶購物車，沒有就建一個空的
// caller必須持有s.mu
func (s *CartService) cartLocked(userID string) *model.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = model.NewCart(userID)
		s.carts[userID] = cart
	}
	return cart
}

// AddItem 加入品項
// 同品項同客製化合併數量，永遠不會失敗
func (s *CartService) AddItem(ctx context.Context, userID string, item model.MenuItem, customization map[string]string) string {
	s.mu.Lock()
	cart := s.cartLocked(userID)
	key := cart.AddItem(item, customization)
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.saver.Enqueue(userID, snapshot)
	return key
}

// RemoveLine 移除整條line，不存在為no-op
func (s *CartService) RemoveLine(ctx context.Context, userID string, lineKey string) {
	s.mu.Lock()
	cart := s.cartLocked(userID)
	cart.RemoveLine(lineKey)
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.saver.Enqueue(userID, snapshot)
}

// UpdateQuantity 更新數量，<=0等同移除，不存在為no-op
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, lineKey string, quantity int) {
	s.mu.Lock()
	cart := s.cartLocked(userID)
	cart.UpdateQuantity(lineKey, quantity)
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.saver.Enqueue(userID, snapshot)
}

// Clear 清空購物車
func (s *CartService) Clear(ctx context.Context, userID string) {
	s.mu.Lock()
	cart := s.cartLocked(userID)
	cart.Clear()
	s.mu.Unlock()

	s.saver.Enqueue(userID, []model.CartLine{})
}

// GetCart 回傳購物車目前狀態的copy
func (s *CartService) GetCart(userID string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	copied := *cart
	copied.Lines = cart.Snapshot()
	return copied
}

// GetTotalPrice 讀取derived欄位，不重新掃描lines
func (s *CartService) GetTotalPrice(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(userID).Total
}

// GetTotalItems 讀取derived欄位，不重新掃描lines
func (s *CartService) GetTotalItems(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(userID).ItemCount
}

// OpenCart 僅前端抽屜狀態，無業務規則
func (s *CartService) OpenCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLocked(userID).Open = true
}

func (s *CartService) CloseCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLocked(userID).Open = false
}

// LoadCart 登入時從remote store還原購物車
func (s *CartService) LoadCart(ctx context.Context, userID string) error {
	lines, err := s.store.LoadCart(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLocked(userID).Load(lines)
	return nil
}

// ReleaseCart 登出時清掉in-memory狀態
// remote快照保留，下次登入還原
func (s *CartService) ReleaseCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// WaitForSaves 等待所有非同步存檔完成，關機用
func (s *CartService) WaitForSaves() {
	s.saver.Wait()
}

var _ ICartService = (*CartService)(nil)
