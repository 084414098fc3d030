package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// ICartStore 購物車持久層介面
// redis版與in-memory版都實作這個介面
type ICartStore interface {
	SaveCart(ctx context.Context, userID string, lines []model.CartLine) error
	LoadCart(ctx context.Context, userID string) ([]model.CartLine, error)
	DeleteCart(ctx context.Context, userID string) error
}

const defaultSaveTimeout = 5 * time.Second

// 購物車非同步存檔
// 每個用戶同時最多一個in-flight save，排隊期間的快照直接被較新的蓋掉
// 存檔失敗只記log，絕不回拋給購物車操作
type cartSaver struct {
	store   ICartStore
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string][]model.CartLine
	inflight map[string]bool
	wg       sync.WaitGroup
}

func newCartSaver(store ICartStore) *cartSaver {
	return &cartSaver{
		store:    store,
		timeout:  defaultSaveTimeout,
		pending:  make(map[string][]model.CartLine),
		inflight: make(map[string]bool),
	}
}

// Enqueue 排入最新快照
// 已有in-flight save時只更新pending快照，合併連續異動
func (s *cartSaver) Enqueue(userID string, lines []model.CartLine) {
	s.mu.Lock()
	s.pending[userID] = lines
	if s.inflight[userID] {
		s.mu.Unlock()
		return
	}
	s.inflight[userID] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.drain(userID)
}

func (s *cartSaver) drain(userID string) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		lines, ok := s.pending[userID]
		if !ok {
			s.inflight[userID] = false
			s.mu.Unlock()
			return
		}
		delete(s.pending, userID)
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.store.SaveCart(ctx, userID, lines); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		}
		cancel()
	}
}

// Wait 等所有in-flight save結束，關機與測試用
func (s *cartSaver) Wait() {
	s.wg.Wait()
}
