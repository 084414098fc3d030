package memory_repo

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

type CreditRepo struct {
	mu          sync.RWMutex
	accounts    map[string]*model.CreditAccount
	nextEntryID int
}

func NewCreditRepo() *CreditRepo {
	return &CreditRepo{accounts: make(map[string]*model.CreditAccount), nextEntryID: 1}
}

func copyAccount(account *model.CreditAccount) *model.CreditAccount {
	copied := *account
	copied.Entries = make([]model.CreditEntry, len(account.Entries))
	copy(copied.Entries, account.Entries)
	return &copied
}

func (r *CreditRepo) CreateAccount(ctx context.Context, account *model.CreditAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.AccountID] = copyAccount(account)
	return nil
}

func (r *CreditRepo) GetAccountByID(ctx context.Context, accountID string) (*model.CreditAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, nil
	}
	return copyAccount(account), nil
}

func (r *CreditRepo) GetAccountByStudentID(ctx context.Context, studentID string) (*model.CreditAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.StudentID == studentID {
			return copyAccount(account), nil
		}
	}
	return nil, nil
}

func (r *CreditRepo) GetAllAccounts(ctx context.Context) ([]model.CreditAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]model.CreditAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, *copyAccount(account))
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountID < accounts[j].AccountID
	})
	return accounts, nil
}

func (r *CreditRepo) ApplyEntry(ctx context.Context, entry *model.CreditEntry, newBalance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[entry.AccountID]
	if !ok {
		return nil
	}
	entry.EntryID = r.nextEntryID
	r.nextEntryID++
	account.Entries = append(account.Entries, *entry)
	account.CurrentBalance = newBalance
	return nil
}

func (r *CreditRepo) DeleteAccount(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, accountID)
	return nil
}

var _ db.ICreditRepository = (*CreditRepo)(nil)
