package model

import (
	"github.com/shopspring/decimal"
)

// 菜單品項
// CustomizationOptions 為各客製化欄位的可選值，使用json欄位儲存
type MenuItem struct {
	ItemID               string              `gorm:"primaryKey;type:varchar(255)" json:"item_id"`
	Name                 string              `gorm:"not null;type:varchar(255)" json:"name"`
	Description          string              `gorm:"type:text" json:"description"`
	Price                decimal.Decimal     `gorm:"not null;type:decimal(10,2)" json:"price"`
	CostPrice            decimal.Decimal     `gorm:"not null;type:decimal(10,2);default:0" json:"cost_price"`
	Category             string              `gorm:"not null;index;type:varchar(64)" json:"category"`
	Image                string              `gorm:"type:text" json:"image"`
	Available            bool                `gorm:"not null;default:true" json:"available"`
	PreparationTime      int                 `gorm:"not null;default:0" json:"preparation_time"` // 分鐘
	StockQuantity        int                 `gorm:"not null;default:0" json:"stock_quantity"`
	CustomizationOptions map[string][]string `gorm:"serializer:json" json:"customization_options"`
	Reviews              []Review            `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"reviews"`
	AverageRating        float64             `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews         int                 `gorm:"not null;default:0" json:"total_reviews"`
	SalesCount           int                 `gorm:"not null;default:0" json:"sales_count"`
	BaseModel
}

type Review struct {
	ReviewID int     `gorm:"primaryKey;autoIncrement" json:"review_id"`
	ItemID   string  `gorm:"not null;index;type:varchar(255)" json:"item_id"`
	UserName string  `gorm:"not null;type:varchar(255)" json:"user_name"`
	Rating   float64 `gorm:"not null" json:"rating"`
	Comment  string  `gorm:"type:text" json:"comment"`
	BaseModel
}
