package db

import (
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.WalletEntry{},
		&model.MenuItem{},
		&model.Review{},
		&model.ComboOffer{},
		&model.Order{},
		&model.OrderItem{},
		&model.StaffMember{},
		&model.AttendanceRecord{},
		&model.CreditAccount{},
		&model.CreditEntry{},
	)
}
