package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// ── student lookup errors ──

var (
	ErrLookupKeywordRequired = errors.New("Nhập mã sinh viên / giảng viên để tra cứu.")
	ErrProfileNotFound       = errors.New("Không tìm thấy người dùng với mã này.")
	ErrProfileNotUpdated     = errors.New("Không cập nhật được. Kiểm tra lại quyền hoặc RLS trên bảng hoso.")
	ErrBirthDateInvalid      = errors.New("Ngày sinh không hợp lệ (yyyy-mm-dd).")
)

const recentAttendanceLimit = 20

// StudentService profile lookup by code and personal-field edits.
type StudentService interface {
	Lookup(ctx context.Context, code string) (*dto.StudentLookupResponse, error)
	// Update writes personal fields only; the role is never touched.
	Update(ctx context.Context, userID string, req *dto.UpdateStudentRequest) (*dto.ProfileResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Lookup ──────────────────────

func (s *studentService) Lookup(ctx context.Context, code string) (*dto.StudentLookupResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrLookupKeywordRequired
	}

	profile, err := s.repo.Profile.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("lookup profile failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	resp := &dto.StudentLookupResponse{
		Profile:    toProfileResponse(profile),
		Attendance: []dto.AttendanceItem{},
	}
	if profile.Role != model.RoleStudent {
		return resp, nil
	}

	// class and attendance are best effort
	enrollment, err := s.repo.Enrollment.GetByStudent(ctx, profile.UserID)
	switch {
	case err == nil && enrollment.Class != nil:
		resp.Class = &dto.ClassBrief{Name: enrollment.Class.Name, Code: deref(enrollment.Class.Code)}
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Warn("load student class failed", zap.String("user_id", profile.UserID), zap.Error(err))
	}

	records, err := s.repo.Attendance.ListRecentByStudent(ctx, profile.UserID, recentAttendanceLimit)
	if err != nil {
		s.logger.Warn("load student attendance failed", zap.String("user_id", profile.UserID), zap.Error(err))
		return resp, nil
	}
	for i := range records {
		resp.Attendance = append(resp.Attendance, toAttendanceItem(&records[i]))
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, userID string, req *dto.UpdateStudentRequest) (*dto.ProfileResponse, error) {
	fields := map[string]interface{}{
		"ho_ten":        nullIfEmpty(req.FullName),
		"que_quan":      nullIfEmpty(req.Birthplace),
		"so_dien_thoai": nullIfEmpty(req.Phone),
		"ngay_sinh":     nil,
	}
	if d := strings.TrimSpace(req.BirthDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, ErrBirthDateInvalid
		}
		fields["ngay_sinh"] = t
	}

	n, err := s.repo.Profile.UpdatePersonal(ctx, userID, fields)
	if err != nil {
		s.logger.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if n == 0 {
		return nil, ErrProfileNotUpdated
	}

	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("reload profile failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func toAttendanceItem(a *model.Attendance) dto.AttendanceItem {
	item := dto.AttendanceItem{ID: a.ID, Status: a.Status, CheckedInAt: a.CheckedInAt}
	if m := a.Meeting; m != nil {
		start := m.StartAt
		item.MeetingStart = &start
		if m.Class != nil {
			item.ClassName = m.Class.Name
		}
		if m.Subject != nil {
			item.SubjectName = m.Subject.Name
		}
	}
	return item
}

// nullIfEmpty maps "" to SQL NULL.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
