package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 組合優惠
// Items 只記品項ID與數量，價格以DiscountedPrice為準
type ComboOffer struct {
	ComboID         string          `gorm:"primaryKey;type:varchar(255)" json:"combo_id"`
	Name            string          `gorm:"not null;type:varchar(255)" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Items           []ComboItem     `gorm:"serializer:json" json:"items"`
	OriginalPrice   decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"original_price"`
	DiscountedPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"discounted_price"`
	ValidDays       []string        `gorm:"serializer:json" json:"valid_days"` // 例如 ["Monday","Friday"]
	ValidUntil      time.Time       `gorm:"not null" json:"valid_until"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}

type ComboItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// IsValidOn 判斷該優惠於指定時間是否有效
// ValidDays 為空代表每天都適用
func (c *ComboOffer) IsValidOn(t time.Time) bool {
	if !c.IsActive {
		return false
	}
	if t.After(c.ValidUntil) {
		return false
	}
	if len(c.ValidDays) == 0 {
		return true
	}
	weekday := t.Weekday().String()
	for _, day := range c.ValidDays {
		if day == weekday {
			return true
		}
	}
	return false
}
