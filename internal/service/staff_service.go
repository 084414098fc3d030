package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/google/uuid"
)

var (
	ErrStaffNotExist    = errors.New("staff member is not exist")
	ErrAlreadyCheckedIn = errors.New("staff member has an open attendance record")
	ErrNotCheckedIn     = errors.New("staff member has no open attendance record")
	ErrCheckOutTooEarly = errors.New("check out time is before check in time")
)

type IStaffService interface {
	CreateStaff(ctx context.Context, staff *model.StaffMember) error
	GetStaff(ctx context.Context, staffID string) (*model.StaffMember, error)
	GetAllStaff(ctx context.Context) ([]model.StaffMember, error)
	UpdateStaff(ctx context.Context, staff *model.StaffMember) error
	DeleteStaff(ctx context.Context, staffID string) error
	CheckIn(ctx context.Context, staffID string, at time.Time) (*model.AttendanceRecord, error)
	CheckOut(ctx context.Context, staffID string, at time.Time) (*model.AttendanceRecord, error)
}

// 員工與出勤
type StaffService struct {
	staffRepo db.IStaffRepository
}

func NewStaffService(staffRepo db.IStaffRepository) *StaffService {
	if staffRepo == nil {
		panic("staff service dependency staffRepo is nil")
	}
	return &StaffService{staffRepo: staffRepo}
}

func (s *StaffService) CreateStaff(ctx context.Context, staff *model.StaffMember) error {
	if staff.StaffID == "" {
		staff.StaffID = uuid.New().String()
	}
	return s.staffRepo.CreateStaff(ctx, staff)
}

func (s *StaffService) GetStaff(ctx context.Context, staffID string) (*model.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotExist
	}
	return staff, nil
}

func (s *StaffService) GetAllStaff(ctx context.Context) ([]model.StaffMember, error) {
	return s.staffRepo.GetAllStaff(ctx)
}

func (s *StaffService) UpdateStaff(ctx context.Context, staff *model.StaffMember) error {
	existing, err := s.staffRepo.GetStaffByID(ctx, staff.StaffID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStaffNotExist
	}
	return s.staffRepo.UpdateStaff(ctx, staff)
}

func (s *StaffService) DeleteStaff(ctx context.Context, staffID string) error {
	return s.staffRepo.DeleteStaff(ctx, staffID)
}

// CheckIn 上班打卡
// 已有未結束的出勤紀錄時拒絕重複打卡
func (s *StaffService) CheckIn(ctx context.Context, staffID string, at time.Time) (*model.AttendanceRecord, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotExist
	}

	open, err := s.staffRepo.GetOpenAttendance(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyCheckedIn
	}

	record := &model.AttendanceRecord{
		StaffID:  staffID,
		WorkDate: at.Format("2006-01-02"),
		CheckIn:  at,
	}
	if err := s.staffRepo.CreateAttendance(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckOut 下班打卡並結算時數
func (s *StaffService) CheckOut(ctx context.Context, staffID string, at time.Time) (*model.AttendanceRecord, error) {
	open, err := s.staffRepo.GetOpenAttendance(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNotCheckedIn
	}
	if at.Before(open.CheckIn) {
		return nil, ErrCheckOutTooEarly
	}

	open.CheckOut = at
	open.Hours = at.Sub(open.CheckIn).Hours()
	if err := s.staffRepo.UpdateAttendance(ctx, open); err != nil {
		return nil, err
	}
	return open, nil
}

var _ IStaffService = (*StaffService)(nil)
