package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ClassRepository class (lop) data access.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	// List returns every class ordered by name, subject preloaded.
	List(ctx context.Context) ([]model.Class, error)
	Count(ctx context.Context) (int64, error)
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates a ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Omit("Subject").Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Order("ten_lop ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Class{}).Count(&count).Error
	return count, err
}
