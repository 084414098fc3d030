package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type StaffRepo struct {
	db *DbDao
}

func NewStaffRepo(db *DbDao) *StaffRepo {
	return &StaffRepo{db: db}
}

// Create - 創建員工
func (s *StaffRepo) CreateStaff(ctx context.Context, staff *model.StaffMember) error {
	return s.db.WithContext(ctx).Create(staff).Error
}

// Read - 根據ID查詢員工
func (s *StaffRepo) GetStaffByID(ctx context.Context, staffID string) (*model.StaffMember, error) {
	var staff model.StaffMember
	err := s.db.WithContext(ctx).Preload("Attendance").First(&staff, "staff_id = ?", staffID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// Read - 查詢所有員工
func (s *StaffRepo) GetAllStaff(ctx context.Context) ([]model.StaffMember, error) {
	var staff []model.StaffMember
	err := s.db.WithContext(ctx).Preload("Attendance").Find(&staff).Error
	return staff, err
}

// Update - 更新員工
func (s *StaffRepo) UpdateStaff(ctx context.Context, staff *model.StaffMember) error {
	return s.db.WithContext(ctx).Save(staff).Error
}

// Delete - 軟刪除員工
func (s *StaffRepo) DeleteStaff(ctx context.Context, staffID string) error {
	return s.db.WithContext(ctx).Where("staff_id = ?", staffID).Delete(&model.StaffMember{}).Error
}

// Create - 創建出勤紀錄
func (s *StaffRepo) CreateAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Read - 查詢未下班的出勤紀錄
func (s *StaffRepo) GetOpenAttendance(ctx context.Context, staffID string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("staff_id = ? AND check_out IS NULL", staffID).
		Order("check_in DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update - 更新出勤紀錄
func (s *StaffRepo) UpdateAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	return s.db.WithContext(ctx).Save(record).Error
}

var _ IStaffRepository = (*StaffRepo)(nil)
