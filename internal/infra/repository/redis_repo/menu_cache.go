package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/rj_redis/pkg/cache"
)

const (
	menuAllKey   = "menu:all"
	menuCacheTTL = 5 * time.Minute
)

// 菜單快取
// cache aside，miss由catalog service回源db後回填
type MenuCache struct {
	cache cache.Cache
}

func NewMenuCache(cache cache.Cache) *MenuCache {
	return &MenuCache{cache: cache}
}

// GetAll 取快取菜單
// miss回傳nil, nil
func (m *MenuCache) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	value, err := m.cache.Get(ctx, menuAllKey)
	if err != nil {
		// miss與連線錯誤都回nil，由呼叫端回源
		return nil, nil
	}

	payload, ok := value.(string)
	if !ok {
		return nil, nil
	}

	var items []model.MenuItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached menu: %w", err)
	}
	return items, nil
}

// SetAll 回填菜單快取
func (m *MenuCache) SetAll(ctx context.Context, items []model.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal menu: %w", err)
	}
	return m.cache.Set(ctx, menuAllKey, string(payload), menuCacheTTL)
}

// Invalidate 菜單異動後清掉快取
func (m *MenuCache) Invalidate(ctx context.Context) error {
	return m.cache.Delete(ctx, menuAllKey)
}
