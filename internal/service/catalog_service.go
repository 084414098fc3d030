package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrMenuItemNotExist = errors.New("menu item is not exist")
	ErrComboNotExist    = errors.New("combo offer is not exist")
)

type ICatalogService interface {
	GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error)
	GetMenuItem(ctx context.Context, itemID string) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *model.MenuItem) error
	DeleteMenuItem(ctx context.Context, itemID string) error
	AddStock(ctx context.Context, itemID string, quantity int) (int, error)
	DeductStock(ctx context.Context, itemID string, quantity int) (int, error)
	CheckStockEnough(ctx context.Context, itemID string, quantity int) (bool, error)
	GetActiveCombos(ctx context.Context, at time.Time) ([]model.ComboOffer, error)
	GetAllCombos(ctx context.Context) ([]model.ComboOffer, error)
	CreateCombo(ctx context.Context, combo *model.ComboOffer) error
	UpdateCombo(ctx context.Context, combo *model.ComboOffer) error
	DeleteCombo(ctx context.Context, comboID string) error
}

// 菜單與組合優惠
// menuCache可為nil，無快取模式直接回源
type CatalogService struct {
	menuRepo  db.IMenuRepository
	comboRepo db.IComboRepository
	menuCache *redis_repo.MenuCache
}

func NewCatalogService(menuRepo db.IMenuRepository, comboRepo db.IComboRepository, menuCache *redis_repo.MenuCache) *CatalogService {
	if menuRepo == nil {
		panic("catalog service dependency menuRepo is nil")
	}
	if comboRepo == nil {
		panic("catalog service dependency comboRepo is nil")
	}
	return &CatalogService{menuRepo: menuRepo, comboRepo: comboRepo, menuCache: menuCache}
}

// GetAllMenuItems cache aside
// 快取失效或miss都回源db再回填
func (s *CatalogService) GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	if s.menuCache != nil {
		cached, err := s.menuCache.GetAll(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.menuRepo.GetAllMenuItems(ctx)
	if err != nil {
		return nil, err
	}

	if s.menuCache != nil {
		if err := s.menuCache.SetAll(ctx, items); err != nil {
			log.Warn().Err(err).Msg("failed to refill menu cache")
		}
	}
	return items, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotExist
	}
	return item, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	if err := s.menuRepo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidateMenuCache(ctx)
	return nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, item *model.MenuItem) error {
	if err := s.menuRepo.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidateMenuCache(ctx)
	return nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, itemID string) error {
	if err := s.menuRepo.DeleteMenuItem(ctx, itemID); err != nil {
		return err
	}
	s.invalidateMenuCache(ctx)
	return nil
}

func (s *CatalogService) AddStock(ctx context.Context, itemID string, quantity int) (int, error) {
	stock, err := s.menuRepo.AddStock(ctx, itemID, quantity)
	if err != nil {
		return 0, err
	}
	s.invalidateMenuCache(ctx)
	return stock, nil
}

func (s *CatalogService) DeductStock(ctx context.Context, itemID string, quantity int) (int, error) {
	stock, err := s.menuRepo.DeductStock(ctx, itemID, quantity)
	if err != nil {
		return 0, err
	}
	s.invalidateMenuCache(ctx)
	return stock, nil
}

// CheckStockEnough 檢查庫存是否足夠
// 錯誤:
//   - db.ErrMenuItemNotFound: 品項不存在
//   - err: 其他錯誤
func (s *CatalogService) CheckStockEnough(ctx context.Context, itemID string, quantity int) (bool, error) {
	item, err := s.menuRepo.GetMenuItemByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, db.ErrMenuItemNotFound
	}
	if !item.Available {
		return false, nil
	}
	return item.StockQuantity >= quantity, nil
}

// GetActiveCombos 取指定時間有效的組合優惠
func (s *CatalogService) GetActiveCombos(ctx context.Context, at time.Time) ([]model.ComboOffer, error) {
	combos, err := s.comboRepo.GetAllCombos(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]model.ComboOffer, 0, len(combos))
	for i := range combos {
		if combos[i].IsValidOn(at) {
			active = append(active, combos[i])
		}
	}
	return active, nil
}

func (s *CatalogService) GetAllCombos(ctx context.Context) ([]model.ComboOffer, error) {
	return s.comboRepo.GetAllCombos(ctx)
}

func (s *CatalogService) CreateCombo(ctx context.Context, combo *model.ComboOffer) error {
	if combo.ComboID == "" {
		combo.ComboID = uuid.New().String()
	}
	return s.comboRepo.CreateCombo(ctx, combo)
}

func (s *CatalogService) UpdateCombo(ctx context.Context, combo *model.ComboOffer) error {
	existing, err := s.comboRepo.GetComboByID(ctx, combo.ComboID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrComboNotExist
	}
	return s.comboRepo.UpdateCombo(ctx, combo)
}

func (s *CatalogService) DeleteCombo(ctx context.Context, comboID string) error {
	return s.comboRepo.DeleteCombo(ctx, comboID)
}

func (s *CatalogService) invalidateMenuCache(ctx context.Context) {
	if s.menuCache == nil {
		return
	}
	if err := s.menuCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate menu cache")
	}
}

var _ ICatalogService = (*CatalogService)(nil)
