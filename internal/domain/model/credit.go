package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CreditEntryCharge    string = "charge"    // 賒帳
	CreditEntryRepayment string = "repayment" // 還款
)

// 學生賒帳帳戶
// CurrentBalance為未還款金額，不可超過CreditLimit
type CreditAccount struct {
	AccountID      string          `gorm:"primaryKey;type:varchar(255)" json:"account_id"`
	StudentID      string          `gorm:"not null;uniqueIndex;type:varchar(255)" json:"student_id"`
	StudentName    string          `gorm:"not null;type:varchar(255)" json:"student_name"`
	Email          string          `gorm:"type:varchar(255)" json:"email"`
	CreditLimit    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"credit_limit"`
	CurrentBalance decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"current_balance"`
	Entries        []CreditEntry   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"entries"`
	BaseModel
}

type CreditEntry struct {
	EntryID     int             `gorm:"primaryKey;autoIncrement" json:"entry_id"`
	AccountID   string          `gorm:"not null;index;type:varchar(255)" json:"account_id"`
	EntryType   string          `gorm:"not null;type:varchar(16)" json:"entry_type"`
	Amount      decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	EntryDate   time.Time       `gorm:"not null" json:"entry_date"`
	BaseModel
}

// Available 剩餘可賒帳額度
func (c *CreditAccount) Available() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentBalance)
}
