package memory_repo

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
)

type ComboRepo struct {
	mu     sync.RWMutex
	combos map[string]*model.ComboOffer
}

func NewComboRepo() *ComboRepo {
	return &ComboRepo{combos: make(map[string]*model.ComboOffer)}
}

func copyCombo(combo *model.ComboOffer) *model.ComboOffer {
	copied := *combo
	copied.Items = make([]model.ComboItem, len(combo.Items))
	copy(copied.Items, combo.Items)
	copied.ValidDays = make([]string, len(combo.ValidDays))
	copy(copied.ValidDays, combo.ValidDays)
	return &copied
}

func (r *ComboRepo) CreateCombo(ctx context.Context, combo *model.ComboOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.combos[combo.ComboID] = copyCombo(combo)
	return nil
}

func (r *ComboRepo) GetComboByID(ctx context.Context, comboID string) (*model.ComboOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	combo, ok := r.combos[comboID]
	if !ok {
		return nil, nil
	}
	return copyCombo(combo), nil
}

func (r *ComboRepo) GetAllCombos(ctx context.Context) ([]model.ComboOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	combos := make([]model.ComboOffer, 0, len(r.combos))
	for _, combo := range r.combos {
		combos = append(combos, *copyCombo(combo))
	}
	sort.Slice(combos, func(i, j int) bool {
		return combos[i].ComboID < combos[j].ComboID
	})
	return combos, nil
}

func (r *ComboRepo) UpdateCombo(ctx context.Context, combo *model.ComboOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.combos[combo.ComboID] = copyCombo(combo)
	return nil
}

func (r *ComboRepo) DeleteCombo(ctx context.Context, comboID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.combos, comboID)
	return nil
}

var _ db.IComboRepository = (*ComboRepo)(nil)
