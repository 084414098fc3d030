package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreditRepo struct {
	db *DbDao
}

func NewCreditRepo(db *DbDao) *CreditRepo {
	return &CreditRepo{db: db}
}

// Create - 創建賒帳帳戶
func (s *CreditRepo) CreateAccount(ctx context.Context, account *model.CreditAccount) error {
	return s.db.WithContext(ctx).Create(account).Error
}

// Read - 根據ID查詢帳戶
func (s *CreditRepo) GetAccountByID(ctx context.Context, accountID string) (*model.CreditAccount, error) {
	var account model.CreditAccount
	err := s.db.WithContext(ctx).Preload("Entries").First(&account, "account_id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Read - 根據學生ID查詢帳戶
func (s *CreditRepo) GetAccountByStudentID(ctx context.Context, studentID string) (*model.CreditAccount, error) {
	var account model.CreditAccount
	err := s.db.WithContext(ctx).Preload("Entries").First(&account, "student_id = ?", studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Read - 查詢所有帳戶
func (s *CreditRepo) GetAllAccounts(ctx context.Context) ([]model.CreditAccount, error) {
	var accounts []model.CreditAccount
	err := s.db.WithContext(ctx).Preload("Entries").Find(&accounts).Error
	return accounts, err
}

// ApplyEntry 賒帳/還款
// 紀錄與餘額更新必須在同一事務
func (s *CreditRepo) ApplyEntry(ctx context.Context, entry *model.CreditEntry, newBalance decimal.Decimal) error {
	return s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.CreditAccount{}).
			Where("account_id = ?", entry.AccountID).
			Update("current_balance", newBalance).Error
	})
}

// Delete - 軟刪除帳戶
func (s *CreditRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return s.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.CreditAccount{}).Error
}

var _ ICreditRepository = (*CreditRepo)(nil)
