package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCreditAccountNotExist = errors.New("credit account is not exist")
	ErrCreditLimitExceeded   = errors.New("charge exceeds credit limit")
	ErrRepayExceedsBalance   = errors.New("repayment exceeds outstanding balance")
)

type ICreditService interface {
	CreateAccount(ctx context.Context, account *model.CreditAccount) error
	GetAccount(ctx context.Context, accountID string) (*model.CreditAccount, error)
	GetAccountByStudentID(ctx context.Context, studentID string) (*model.CreditAccount, error)
	GetAllAccounts(ctx context.Context) ([]model.CreditAccount, error)
	Charge(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.CreditAccount, error)
	Repay(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.CreditAccount, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// 學生賒帳
// 賒帳不可超過額度，還款不可超過未還餘額
type CreditService struct {
	creditRepo db.ICreditRepository
}

func NewCreditService(creditRepo db.ICreditRepository) *CreditService {
	if creditRepo == nil {
		panic("credit service dependency creditRepo is nil")
	}
	return &CreditService{creditRepo: creditRepo}
}

func (s *CreditService) CreateAccount(ctx context.Context, account *model.CreditAccount) error {
	if account.AccountID == "" {
		account.AccountID = uuid.New().String()
	}
	return s.creditRepo.CreateAccount(ctx, account)
}

func (s *CreditService) GetAccount(ctx context.Context, accountID string) (*model.CreditAccount, error) {
	account, err := s.creditRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrCreditAccountNotExist
	}
	return account, nil
}

func (s *CreditService) GetAccountByStudentID(ctx context.Context, studentID string) (*model.CreditAccount, error) {
	account, err := s.creditRepo.GetAccountByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrCreditAccountNotExist
	}
	return account, nil
}

func (s *CreditService) GetAllAccounts(ctx context.Context) ([]model.CreditAccount, error) {
	return s.creditRepo.GetAllAccounts(ctx)
}

// Charge 賒帳
// 錯誤:
//   - ErrInvalidAmount: 金額非正數
//   - ErrCreditLimitExceeded: 超過剩餘額度
func (s *CreditService) Charge(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.CreditAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(account.Available()) {
		return nil, ErrCreditLimitExceeded
	}

	newBalance := account.CurrentBalance.Add(amount)
	entry := &model.CreditEntry{
		AccountID:   accountID,
		EntryType:   model.CreditEntryCharge,
		Amount:      amount,
		Description: description,
		EntryDate:   time.Now(),
	}
	if err := s.creditRepo.ApplyEntry(ctx, entry, newBalance); err != nil {
		return nil, err
	}

	account.CurrentBalance = newBalance
	return account, nil
}

// Repay 還款
func (s *CreditService) Repay(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.CreditAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(account.CurrentBalance) {
		return nil, ErrRepayExceedsBalance
	}

	newBalance := account.CurrentBalance.Sub(amount)
	entry := &model.CreditEntry{
		AccountID:   accountID,
		EntryType:   model.CreditEntryRepayment,
		Amount:      amount,
		Description: description,
		EntryDate:   time.Now(),
	}
	if err := s.creditRepo.ApplyEntry(ctx, entry, newBalance); err != nil {
		return nil, err
	}

	account.CurrentBalance = newBalance
	return account, nil
}

func (s *CreditService) DeleteAccount(ctx context.Context, accountID string) error {
	return s.creditRepo.DeleteAccount(ctx, accountID)
}

var _ ICreditService = (*CreditService)(nil)
