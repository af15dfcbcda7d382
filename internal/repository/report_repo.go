package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ReportRepository reads the v_diemdanh_lop_buoi view.
type ReportRepository interface {
	ListByMeeting(ctx context.Context, classID, meetingID string) ([]model.ReportRow, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo creates a ReportRepository.
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) ListByMeeting(ctx context.Context, classID, meetingID string) ([]model.ReportRow, error) {
	var rows []model.ReportRow
	err := r.db.WithContext(ctx).
		Where("lop_id = ? AND buoihoc_id = ?", classID, meetingID).
		Order("sv_ma_sinh_vien ASC").
		Find(&rows).Error
	return rows, err
}
