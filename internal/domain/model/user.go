package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleStudent string = "student"
	RoleAdmin   string = "admin"
)

type User struct {
	UserID          string          `gorm:"primaryKey;type:varchar(255)" json:"user_id"`
	UserName        string          `gorm:"not null;type:varchar(255)" json:"user_name"`
	UserEmail       string          `gorm:"uniqueIndex;type:varchar(255)" json:"user_email"`
	Phone           string          `gorm:"type:varchar(64)" json:"phone"`
	Role            string          `gorm:"not null;default:student;type:varchar(32)" json:"role"`
	WalletBalance   decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"wallet_balance"`
	IsEmailVerified bool            `gorm:"not null;default:false" json:"is_email_verified"`
	BaseModel
}

const (
	WalletEntryCredit string = "credit"
	WalletEntryDebit  string = "debit"
)

// 錢包異動紀錄
// 餘額一律由簽章後的delta推導，不允許直接覆寫
type WalletEntry struct {
	EntryID   int             `gorm:"primaryKey;autoIncrement" json:"entry_id"`
	UserID    string          `gorm:"not null;index;type:varchar(255)" json:"user_id"`
	EntryType string          `gorm:"not null;type:varchar(16)" json:"entry_type"`
	Delta     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"delta"`
	Balance   decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"balance"` // 異動後餘額
	Reason    string          `gorm:"type:varchar(255)" json:"reason"`
	EntryDate time.Time       `gorm:"not null" json:"entry_date"`
	BaseModel
}
