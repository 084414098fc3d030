package model

import (
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/util"
	"github.com/shopspring/decimal"
)

// 購物車line
// 同品項不同客製化視為不同line，識別依據為 ItemID + customization fingerprint
type CartLine struct {
	ItemID        string            `json:"item_id"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	Image         string            `json:"image"`
	Quantity      int               `json:"quantity"`
	Customization map[string]string `json:"customization,omitempty"`
}

// Key line識別鍵
func (l *CartLine) Key() string {
	fp := util.Fingerprint(l.Customization)
	if fp == "" {
		return l.ItemID
	}
	return l.ItemID + "#" + fp
}

// Subtotal 單line小計
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// 購物車
// Total 與 ItemCount 為衍生欄位，每次異動與line一起更新，讀取端不重新掃描
type Cart struct {
	UserID    string          `json:"user_id"`
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Open      bool            `json:"-"` // 前端購物車抽屜開關，無業務意義
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID: userID,
		Lines:  make([]CartLine, 0),
		Total:  decimal.Zero,
	}
}

func (c *Cart) findLine(key string) int {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			return i
		}
	}
	return -1
}

// AddItem 加入一個品項
// 已存在同識別鍵的line則數量+1，否則append數量為1的新line
// 回傳異動後的line識別鍵
func (c *Cart) AddItem(item MenuItem, customization map[string]string) string {
	// 複製customization，避免呼叫端事後改動map影響line識別鍵
	if customization != nil {
		copied := make(map[string]string, len(customization))
		for k, v := range customization {
			copied[k] = v
		}
		customization = copied
	}
	line := CartLine{
		ItemID:        item.ItemID,
		Name:          item.Name,
		Price:         item.Price,
		Image:         item.Image,
		Quantity:      1,
		Customization: customization,
	}
	key := line.Key()

	if i := c.findLine(key); i >= 0 {
		c.Lines[i].Quantity++
	} else {
		c.Lines = append(c.Lines, line)
	}
	c.Total = c.Total.Add(item.Price)
	c.ItemCount++
	return key
}

// RemoveLine 整條line移除
// line不存在視為no-op，不回傳錯誤
func (c *Cart) RemoveLine(key string) {
	i := c.findLine(key)
	if i < 0 {
		return
	}
	line := c.Lines[i]
	c.Total = c.Total.Sub(line.Subtotal())
	c.ItemCount -= line.Quantity
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// UpdateQuantity 更新line數量
// 數量<=0等同RemoveLine，永遠不會留下數量0或負數的line
// line不存在視為no-op
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(key)
		return
	}
	i := c.findLine(key)
	if i < 0 {
		return
	}
	diff := quantity - c.Lines[i].Quantity
	c.Lines[i].Quantity = quantity
	c.Total = c.Total.Add(c.Lines[i].Price.Mul(decimal.NewFromInt(int64(diff))))
	c.ItemCount += diff
}

// Clear 清空購物車
func (c *Cart) Clear() {
	c.Lines = make([]CartLine, 0)
	c.Total = decimal.Zero
	c.ItemCount = 0
}

// Load 以既有快照取代內容並重算衍生欄位
// 只有還原快照會整批重算，其餘異動都走增量更新
func (c *Cart) Load(lines []CartLine) {
	kept := make([]CartLine, 0, len(lines))
	total := decimal.Zero
	count := 0
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		kept = append(kept, line)
		total = total.Add(line.Subtotal())
		count += line.Quantity
	}
	c.Lines = kept
	c.Total = total
	c.ItemCount = count
}

// Snapshot 深拷貝目前所有line，供結帳時建立訂單快照
func (c *Cart) Snapshot() []CartLine {
	snapshot := make([]CartLine, len(c.Lines))
	for i, line := range c.Lines {
		snapshot[i] = line
		if line.Customization != nil {
			customization := make(map[string]string, len(line.Customization))
			for k, v := range line.Customization {
				customization[k] = v
			}
			snapshot[i].Customization = customization
		}
	}
	return snapshot
}
