package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type ComboRepo struct {
	db *DbDao
}

func NewComboRepo(db *DbDao) *ComboRepo {
	return &ComboRepo{db: db}
}

// Create - 創建組合優惠
func (s *ComboRepo) CreateCombo(ctx context.Context, combo *model.ComboOffer) error {
	return s.db.WithContext(ctx).Create(combo).Error
}

// Read - 根據ID查詢組合優惠
func (s *ComboRepo) GetComboByID(ctx context.Context, comboID string) (*model.ComboOffer, error) {
	var combo model.ComboOffer
	err := s.db.WithContext(ctx).First(&combo, "combo_id = ?", comboID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

// Read - 查詢所有組合優惠
func (s *ComboRepo) GetAllCombos(ctx context.Context) ([]model.ComboOffer, error) {
	var combos []model.ComboOffer
	err := s.db.WithContext(ctx).Find(&combos).Error
	return combos, err
}

// Update - 更新組合優惠
func (s *ComboRepo) UpdateCombo(ctx context.Context, combo *model.ComboOffer) error {
	return s.db.WithContext(ctx).Save(combo).Error
}

// Delete - 軟刪除組合優惠
func (s *ComboRepo) DeleteCombo(ctx context.Context, comboID string) error {
	return s.db.WithContext(ctx).Where("combo_id = ?", comboID).Delete(&model.ComboOffer{}).Error
}

var _ IComboRepository = (*ComboRepo)(nil)
