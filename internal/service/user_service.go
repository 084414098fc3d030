package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotExist      = errors.New("user is not exist")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

type IUserService interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	CreditWallet(ctx context.Context, userID string, amount decimal.Decimal, reason string) (*model.User, error)
	DebitWallet(ctx context.Context, userID string, amount decimal.Decimal, reason string) (*model.User, error)
	GetWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error)
}

// 用戶與錢包
// 餘額只能透過signed delta異動，每筆異動留帳，餘額下限為0
type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	if userRepo == nil {
		panic("user service dependency userRepo is nil")
	}
	return &UserService{userRepo: userRepo}
}

func (u *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}
	return user, nil
}

// CreditWallet 儲值
func (u *UserService) CreditWallet(ctx context.Context, userID string, amount decimal.Decimal, reason string) (*model.User, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	newBalance := user.WalletBalance.Add(amount)
	entry := &model.WalletEntry{
		UserID:    userID,
		EntryType: model.WalletEntryCredit,
		Delta:     amount,
		Balance:   newBalance,
		Reason:    reason,
		EntryDate: time.Now().UTC(),
	}
	if err := u.userRepo.ApplyWalletDelta(ctx, entry, newBalance); err != nil {
		return nil, err
	}

	user.WalletBalance = newBalance
	return user, nil
}

// DebitWallet 扣款
// 餘額不足回傳ErrInsufficientFunds，不允許扣到負數
func (u *UserService) DebitWallet(ctx context.Context, userID string, amount decimal.Decimal, reason string) (*model.User, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.WalletBalance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, need %s", ErrInsufficientFunds, user.WalletBalance, amount)
	}

	newBalance := user.WalletBalance.Sub(amount)
	entry := &model.WalletEntry{
		UserID:    userID,
		EntryType: model.WalletEntryDebit,
		Delta:     amount.Neg(),
		Balance:   newBalance,
		Reason:    reason,
		EntryDate: time.Now().UTC(),
	}
	if err := u.userRepo.ApplyWalletDelta(ctx, entry, newBalance); err != nil {
		return nil, err
	}

	user.WalletBalance = newBalance
	return user, nil
}

// GetWalletEntries 錢包異動紀錄，新到舊
func (u *UserService) GetWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error) {
	return u.userRepo.GetWalletEntries(ctx, userID)
}

var _ IUserService = (*UserService)(nil)
