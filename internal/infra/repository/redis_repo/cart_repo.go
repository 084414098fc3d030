package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// 購物車持久層
// 整份購物車文件覆寫，天然last-writer-wins，不做部分更新
type CartRepo struct {
	cartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{cartCache: cartCache}
}

func generateCartKey(userID string) string {
	return fmt.Sprintf("cart:%s:lines", userID)
}

func generateCartMetaKey(userID string) string {
	return fmt.Sprintf("cart:%s:meta", userID)
}

// SaveCart 覆寫整份購物車
// 使用 Lua 腳本確保payload與meta同時落地
func (r *CartRepo) SaveCart(ctx context.Context, userID string, lines []model.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}

	luaScript := `
		redis.call('SET', KEYS[1], ARGV[1])
		redis.call('HSET', KEYS[2], 'user_id', ARGV[2], 'updated_at', ARGV[3])
		return 1
	`
	keys := []string{generateCartKey(userID), generateCartMetaKey(userID)}
	_, err = r.cartCache.Eval(ctx, luaScript, keys,
		string(payload), userID, time.Now().UTC().Format(time.RFC3339Nano)).Result()
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// LoadCart 取回購物車快照
// 查無資料回傳空slice，不算錯誤
func (r *CartRepo) LoadCart(ctx context.Context, userID string) ([]model.CartLine, error) {
	payload, err := r.cartCache.Get(ctx, generateCartKey(userID)).Result()
	if err == redis.Nil {
		return []model.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart lines: %w", err)
	}
	return lines, nil
}

// DeleteCart 清除購物車
func (r *CartRepo) DeleteCart(ctx context.Context, userID string) error {
	err := r.cartCache.Del(ctx, generateCartKey(userID), generateCartMetaKey(userID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
