package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// EnrollmentRepository enrollment (dangky) access. Writes go through the
// admin_add/remove_student_from_class procedures; duplicates are the
// store's concern.
type EnrollmentRepository interface {
	AddStudent(ctx context.Context, classID, studentID string) error
	RemoveStudent(ctx context.Context, classID, studentID string) error
	ListStudentIDs(ctx context.Context, classID string) ([]string, error)
	// GetByStudent returns the student's first enrollment with its class.
	GetByStudent(ctx context.Context, studentID string) (*model.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) AddStudent(ctx context.Context, classID, studentID string) error {
	return r.db.WithContext(ctx).Exec(
		"SELECT admin_add_student_to_class(p_lop_id => @lop, p_sinh_vien_id => @sv)",
		map[string]interface{}{"lop": classID, "sv": studentID},
	).Error
}

func (r *enrollmentRepo) RemoveStudent(ctx context.Context, classID, studentID string) error {
	return r.db.WithContext(ctx).Exec(
		"SELECT admin_remove_student_from_class(p_lop_id => @lop, p_sinh_vien_id => @sv)",
		map[string]interface{}{"lop": classID, "sv": studentID},
	).Error
}

func (r *enrollmentRepo) ListStudentIDs(ctx context.Context, classID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("lop_id = ?", classID).
		Pluck("sinh_vien_id", &ids).Error
	return ids, err
}

func (r *enrollmentRepo) GetByStudent(ctx context.Context, studentID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("sinh_vien_id = ?", studentID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
