package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 待處理
	OrderStatusPreparing OrderStatus = "preparing" // 製作中
	OrderStatusReady     OrderStatus = "ready"     // 可取餐
	OrderStatusCompleted OrderStatus = "completed" // 已完成
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消
)

// IsValid 是否為已定義的狀態
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal completed與cancelled為終態，之後不允許任何狀態異動
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo 狀態機規則
// pending -> preparing -> ready -> completed，不允許跳關
// cancelled 可從任何非終態進入
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return to == OrderStatusPreparing
	case OrderStatusPreparing:
		return to == OrderStatusReady
	case OrderStatusReady:
		return to == OrderStatusCompleted
	}
	return false
}

const (
	PaymentMethodWallet string = "wallet"
	PaymentMethodCash   string = "cash"
	PaymentMethodCard   string = "card"
)

// IsValidPaymentMethod 檢查付款方式
func IsValidPaymentMethod(method string) bool {
	return method == PaymentMethodWallet || method == PaymentMethodCash || method == PaymentMethodCard
}

// 訂單
// 建立後items與TotalAmount不再變動，只有Status與UpdatedAt會異動
type Order struct {
	OrderID       string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	OrderNumber   string          `gorm:"not null;uniqueIndex;type:varchar(64)" json:"order_number"`
	UserID        string          `gorm:"not null;index;type:varchar(255)" json:"user_id"`
	UserName      string          `gorm:"not null;type:varchar(255)" json:"user_name"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	Status        OrderStatus     `gorm:"not null;default:pending;type:varchar(32)" json:"status"`
	PaymentMethod string          `gorm:"not null;type:varchar(32)" json:"payment_method"`
	PickupTime    time.Time       `gorm:"not null" json:"pickup_time"`
	QRCode        string          `gorm:"type:text" json:"qr_code"` // 取餐憑證payload
	BaseModel
}

// 訂單項目快照
// 同品項不同客製化會是不同row，所以主鍵用自增id而不是(OrderID, ItemID)
type OrderItem struct {
	OrderItemID   int               `gorm:"primaryKey;autoIncrement" json:"order_item_id"`
	OrderID       string            `gorm:"not null;index;type:varchar(255)" json:"order_id"`
	ItemID        string            `gorm:"not null;type:varchar(255)" json:"item_id"`
	Name          string            `gorm:"not null;type:varchar(255)" json:"name"`
	Price         decimal.Decimal   `gorm:"not null;type:decimal(10,2)" json:"price"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	Customization map[string]string `gorm:"serializer:json" json:"customization,omitempty"`
	BaseModel
}

// ItemsTotal 快照項目加總，供建單時驗證TotalAmount
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Price.Mul(decimal.NewFromInt(int64(o.Items[i].Quantity))))
	}
	return total
}
