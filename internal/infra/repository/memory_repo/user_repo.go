package memory_repo

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

type UserRepo struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	entries map[string][]model.WalletEntry
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:   make(map[string]*model.User),
		entries: make(map[string][]model.WalletEntry),
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.UserID] = &copied
	return nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.UserEmail == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.UserID] = &copied
	return nil
}

func (r *UserRepo) ApplyWalletDelta(ctx context.Context, entry *model.WalletEntry, newBalance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[entry.UserID]
	if !ok {
		return nil
	}
	entry.EntryID = len(r.entries[entry.UserID]) + 1
	r.entries[entry.UserID] = append(r.entries[entry.UserID], *entry)
	user.WalletBalance = newBalance
	return nil
}

func (r *UserRepo) GetWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]model.WalletEntry, len(r.entries[userID]))
	copy(entries, r.entries[userID])
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate.After(entries[j].EntryDate)
	})
	return entries, nil
}

var _ db.IUserRepository = (*UserRepo)(nil)
