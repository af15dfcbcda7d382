package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ImportRowRepository roster import (dangky_import) data access.
type ImportRowRepository interface {
	// BatchCreate inserts all rows in one statement.
	BatchCreate(ctx context.Context, rows []model.ImportRow) error
	// ListPending returns the class's rows still waiting for an account.
	ListPending(ctx context.Context, classID string) ([]model.ImportRow, error)
}

type importRowRepo struct {
	db *gorm.DB
}

// NewImportRowRepo creates an ImportRowRepository.
func NewImportRowRepo(db *gorm.DB) ImportRowRepository {
	return &importRowRepo{db: db}
}

func (r *importRowRepo) BatchCreate(ctx context.Context, rows []model.ImportRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *importRowRepo) ListPending(ctx context.Context, classID string) ([]model.ImportRow, error) {
	var rows []model.ImportRow
	err := r.db.WithContext(ctx).
		Where("lop_id = ? AND chua_co_tai_khoan = ?", classID, true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
