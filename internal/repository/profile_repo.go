package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ErrCodeCheckInconclusive is returned when the availability procedure
// does not answer with a boolean.
var ErrCodeCheckInconclusive = errors.New("code availability result is not a boolean")

// ProfileRepository profile (hoso) data access.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	// GetByCode matches ma_sinh_vien case-insensitively.
	GetByCode(ctx context.Context, code string) (*model.Profile, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Profile, error)
	// ListActive returns profiles without a disabled-at mark, newest first.
	// An empty role lists every role.
	ListActive(ctx context.Context, role model.Role) ([]model.Profile, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	// UpdatePersonal writes the given columns and returns the affected rows.
	UpdatePersonal(ctx context.Context, userID string, fields map[string]interface{}) (int64, error)
	Disable(ctx context.Context, userID string, at time.Time) (int64, error)
	// CheckCodeAvailable asks admin_check_code_available_v2.
	CheckCodeAvailable(ctx context.Context, code string) (bool, error)
	CountByCode(ctx context.Context, code string) (int64, error)
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a ProfileRepository.
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).
		Where("nguoi_dung_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByCode(ctx context.Context, code string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).
		Where("ma_sinh_vien ILIKE ? ESCAPE '\\'", escapeLike(code)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Profile, error) {
	var profiles []model.Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := r.db.WithContext(ctx).
		Where("nguoi_dung_id IN ?", ids).
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) ListActive(ctx context.Context, role model.Role) ([]model.Profile, error) {
	var profiles []model.Profile
	db := r.db.WithContext(ctx).Where("da_vo_hieu_hoa_luc IS NULL")
	if role != "" {
		db = db.Where("vai_tro = ?", role)
	}
	err := db.Order("tao_luc DESC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("vai_tro = ?", role).
		Count(&count).Error
	return count, err
}

func (r *profileRepo) UpdatePersonal(ctx context.Context, userID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("nguoi_dung_id = ?", userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *profileRepo) Disable(ctx context.Context, userID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("nguoi_dung_id = ?", userID).
		Update("da_vo_hieu_hoa_luc", at)
	return res.RowsAffected, res.Error
}

func (r *profileRepo) CheckCodeAvailable(ctx context.Context, code string) (bool, error) {
	var available sql.NullBool
	err := r.db.WithContext(ctx).
		Raw("SELECT (to_jsonb(admin_check_code_available_v2(p_code => @code)) ->> 'available')::boolean", sql.Named("code", code)).
		Row().Scan(&available)
	if err != nil {
		return false, err
	}
	if !available.Valid {
		return false, ErrCodeCheckInconclusive
	}
	return available.Bool, nil
}

func (r *profileRepo) CountByCode(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("ma_sinh_vien = ?", code).
		Count(&count).Error
	return count, err
}

// escapeLike quotes LIKE wildcards so the pattern matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
