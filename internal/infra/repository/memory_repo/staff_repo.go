package memory_repo

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
)

type StaffRepo struct {
	mu           sync.RWMutex
	staff        map[string]*model.StaffMember
	nextRecordID int
}

func NewStaffRepo() *StaffRepo {
	return &StaffRepo{staff: make(map[string]*model.StaffMember), nextRecordID: 1}
}

func copyStaff(staff *model.StaffMember) *model.StaffMember {
	copied := *staff
	copied.Attendance = make([]model.AttendanceRecord, len(staff.Attendance))
	copy(copied.Attendance, staff.Attendance)
	return &copied
}

func (r *StaffRepo) CreateStaff(ctx context.Context, staff *model.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[staff.StaffID] = copyStaff(staff)
	return nil
}

func (r *StaffRepo) GetStaffByID(ctx context.Context, staffID string) (*model.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.staff[staffID]
	if !ok {
		return nil, nil
	}
	return copyStaff(staff), nil
}

func (r *StaffRepo) GetAllStaff(ctx context.Context) ([]model.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staffList := make([]model.StaffMember, 0, len(r.staff))
	for _, staff := range r.staff {
		staffList = append(staffList, *copyStaff(staff))
	}
	sort.Slice(staffList, func(i, j int) bool {
		return staffList[i].StaffID < staffList[j].StaffID
	})
	return staffList, nil
}

func (r *StaffRepo) UpdateStaff(ctx context.Context, staff *model.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[staff.StaffID] = copyStaff(staff)
	return nil
}

func (r *StaffRepo) DeleteStaff(ctx context.Context, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.staff, staffID)
	return nil
}

func (r *StaffRepo) CreateAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.staff[record.StaffID]
	if !ok {
		return nil
	}
	record.RecordID = r.nextRecordID
	r.nextRecordID++
	staff.Attendance = append(staff.Attendance, *record)
	return nil
}

func (r *StaffRepo) GetOpenAttendance(ctx context.Context, staffID string) (*model.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.staff[staffID]
	if !ok {
		return nil, nil
	}
	for i := len(staff.Attendance) - 1; i >= 0; i-- {
		if staff.Attendance[i].IsOpen() {
			record := staff.Attendance[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (r *StaffRepo) UpdateAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.staff[record.StaffID]
	if !ok {
		return nil
	}
	for i := range staff.Attendance {
		if staff.Attendance[i].RecordID == record.RecordID {
			staff.Attendance[i] = *record
			return nil
		}
	}
	return nil
}

var _ db.IStaffRepository = (*StaffRepo)(nil)
