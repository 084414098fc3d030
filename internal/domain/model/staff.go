package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StaffMember struct {
	StaffID    string             `gorm:"primaryKey;type:varchar(255)" json:"staff_id"`
	Name       string             `gorm:"not null;type:varchar(255)" json:"name"`
	Role       string             `gorm:"not null;type:varchar(64)" json:"role"`
	HourlyRate decimal.Decimal    `gorm:"not null;type:decimal(10,2)" json:"hourly_rate"`
	Attendance []AttendanceRecord `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE" json:"attendance"`
	BaseModel
}

// 出勤紀錄
// CheckOut為零值代表尚未下班，Hours於下班時結算
type AttendanceRecord struct {
	RecordID int       `gorm:"primaryKey;autoIncrement" json:"record_id"`
	StaffID  string    `gorm:"not null;index;type:varchar(255)" json:"staff_id"`
	WorkDate string    `gorm:"not null;index;type:varchar(16)" json:"work_date"` // YYYY-MM-DD
	CheckIn  time.Time `gorm:"not null" json:"check_in"`
	CheckOut time.Time `gorm:"null" json:"check_out"`
	Hours    float64   `gorm:"not null;default:0" json:"hours"`
	BaseModel
}

// IsOpen 是否還在上班中
func (a *AttendanceRecord) IsOpen() bool {
	return a.CheckOut.IsZero()
}
