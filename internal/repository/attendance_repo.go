package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// AttendanceRepository read-only access to check-ins (diemdanh).
type AttendanceRepository interface {
	// ListRecentByStudent returns the latest check-ins with meeting and class.
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Meeting.Class").
		Preload("Meeting.Subject").
		Where("sinh_vien_id = ?", studentID).
		Order("checkin_luc DESC NULLS LAST").
		Limit(limit).
		Find(&list).Error
	return list, err
}
