package db

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/shopspring/decimal"
)

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	// ApplyWalletDelta 於同一事務內寫入異動紀錄並更新餘額
	ApplyWalletDelta(ctx context.Context, entry *model.WalletEntry, newBalance decimal.Decimal) error
	GetWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error)
}

// IMenuRepository MenuItem 相關操作介面
type IMenuRepository interface {
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	GetMenuItemByID(ctx context.Context, itemID string) (*model.MenuItem, error)
	GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *model.MenuItem) error
	DeleteMenuItem(ctx context.Context, itemID string) error
	AddStock(ctx context.Context, itemID string, quantity int) (int, error)
	DeductStock(ctx context.Context, itemID string, quantity int) (int, error)
	AddSalesCount(ctx context.Context, itemID string, quantity int) error
}

// IComboRepository ComboOffer 相關操作介面
type IComboRepository interface {
	CreateCombo(ctx context.Context, combo *model.ComboOffer) error
	GetComboByID(ctx context.Context, comboID string) (*model.ComboOffer, error)
	GetAllCombos(ctx context.Context) ([]model.ComboOffer, error)
	UpdateCombo(ctx context.Context, combo *model.ComboOffer) error
	DeleteCombo(ctx context.Context, comboID string) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
	// GetOrdersByUserID 依建立時間新到舊排序
	GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error)
	// GetAllOrders 依建立時間新到舊排序
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	// GetOrdersPaginated 後台列表用，回傳該頁資料與總筆數
	GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// IStaffRepository StaffMember 相關操作介面
type IStaffRepository interface {
	CreateStaff(ctx context.Context, staff *model.StaffMember) error
	GetStaffByID(ctx context.Context, staffID string) (*model.StaffMember, error)
	GetAllStaff(ctx context.Context) ([]model.StaffMember, error)
	UpdateStaff(ctx context.Context, staff *model.StaffMember) error
	DeleteStaff(ctx context.Context, staffID string) error
	CreateAttendance(ctx context.Context, record *model.AttendanceRecord) error
	GetOpenAttendance(ctx context.Context, staffID string) (*model.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, record *model.AttendanceRecord) error
}

// ICreditRepository CreditAccount 相關操作介面
type ICreditRepository interface {
	CreateAccount(ctx context.Context, account *model.CreditAccount) error
	GetAccountByID(ctx context.Context, accountID string) (*model.CreditAccount, error)
	GetAccountByStudentID(ctx context.Context, studentID string) (*model.CreditAccount, error)
	GetAllAccounts(ctx context.Context) ([]model.CreditAccount, error)
	// ApplyEntry 於同一事務內寫入賒帳/還款紀錄並更新餘額
	ApplyEntry(ctx context.Context, entry *model.CreditEntry, newBalance decimal.Decimal) error
	DeleteAccount(ctx context.Context, accountID string) error
}
