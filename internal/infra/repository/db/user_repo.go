package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepo struct {
	dbDao *DbDao
}

func NewUserRepo(dbDao *DbDao) *UserRepo {
	return &UserRepo{dbDao: dbDao}
}

// Create - 創建用戶
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.dbDao.WithContext(ctx).Create(user).Error
}

// Read - 根據ID查詢用戶
func (s *UserRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.dbDao.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 根據Email查詢用戶
func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.dbDao.WithContext(ctx).Where("user_email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update - 更新用戶
func (s *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return s.dbDao.WithContext(ctx).Save(user).Error
}

// ApplyWalletDelta 錢包異動
// 異動紀錄與餘額更新必須在同一事務，避免帳跟餘額對不起來
func (s *UserRepo) ApplyWalletDelta(ctx context.Context, entry *model.WalletEntry, newBalance decimal.Decimal) error {
	return s.dbDao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("user_id = ?", entry.UserID).
			Update("wallet_balance", newBalance).Error
	})
}

// Read - 查詢錢包異動紀錄，新到舊
func (s *UserRepo) GetWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error) {
	var entries []model.WalletEntry
	err := s.dbDao.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

var _ IUserRepository = (*UserRepo)(nil)
