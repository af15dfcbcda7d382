package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// CreateMeetingParams are the arguments of the create_buoihoc procedure.
type CreateMeetingParams struct {
	ClassID           string
	SubjectID         *string
	TeacherID         *string
	StartAt           time.Time
	EndAt             time.Time
	OnTimeMinutes     int
	LateAfterMinutes  int
	QRIntervalSeconds int
}

// MeetingRepository meeting (buoihoc) data access.
type MeetingRepository interface {
	// Create calls create_buoihoc, which also opens the attendance window.
	Create(ctx context.Context, p *CreateMeetingParams) error
	// ListByClass returns a class's meetings, newest first.
	ListByClass(ctx context.Context, classID string) ([]model.Meeting, error)
	Count(ctx context.Context) (int64, error)
}

type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo creates a MeetingRepository.
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, p *CreateMeetingParams) error {
	return r.db.WithContext(ctx).Exec(`SELECT create_buoihoc(
		p_lop_id => @lop,
		p_thoi_gian_bat_dau => @start,
		p_thoi_gian_ket_thuc => @end,
		p_dung_gio_trong_phut => @on_time,
		p_tre_sau_phut => @late,
		p_monhoc_id => @subject,
		p_giang_vien_id => @teacher,
		p_mo_tu => NULL,
		p_dong_den => NULL,
		p_qr_khoang_giay => @qr,
		p_phonghoc_id => NULL
	)`, map[string]interface{}{
		"lop":     p.ClassID,
		"start":   p.StartAt,
		"end":     p.EndAt,
		"on_time": p.OnTimeMinutes,
		"late":    p.LateAfterMinutes,
		"subject": p.SubjectID,
		"teacher": p.TeacherID,
		"qr":      p.QRIntervalSeconds,
	}).Error
}

func (r *meetingRepo) ListByClass(ctx context.Context, classID string) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("lop_id = ?", classID).
		Order("thoi_gian_bat_dau DESC").
		Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Meeting{}).Count(&count).Error
	return count, err
}
