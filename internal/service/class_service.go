package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// ── class errors ──

var (
	ErrClassRequired       = errors.New("Vui lòng chọn lớp.")
	ErrClassNameRequired   = errors.New("Vui lòng nhập Tên lớp.")
	ErrClassNotFound       = errors.New("Không tìm thấy lớp.")
	ErrStudentCodeRequired = errors.New("Nhập mã sinh viên.")
	ErrStudentNotFound     = errors.New("Không tìm thấy sinh viên với mã này.")
	ErrRosterImportRow     = errors.New("Sinh viên import Excel chưa có tài khoản, không thể xoá khỏi lớp.")
)

const (
	importRowPrefix = "imp:"
	unnamedProfile  = "(Chưa có tên)"
)

// ClassService class management, rosters and roster import.
type ClassService interface {
	List(ctx context.Context) ([]dto.ClassResponse, error)
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	// Roster merges enrolled profiles with pending import rows, sorted by
	// name in Vietnamese order.
	Roster(ctx context.Context, classID string) ([]dto.RosterEntry, error)
	AddStudent(ctx context.Context, classID string, req *dto.AddStudentRequest) error
	RemoveStudent(ctx context.Context, classID, studentID string) error
	// ImportRoster stores the rows of an uploaded spreadsheet as pending
	// roster entries of the class.
	ImportRoster(ctx context.Context, classID string, r io.Reader) (*dto.ImportRosterResponse, error)
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

// ────────────────────── List / Create ──────────────────────

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, toClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrClassNameRequired
	}

	class := &model.Class{
		Name:      name,
		Code:      trimmedOrNil(req.Code),
		SubjectID: trimmedOrNil(req.SubjectID),
	}
	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("create class failed", zap.Error(err))
		return nil, err
	}
	resp := toClassResponse(class)
	return &resp, nil
}

// ────────────────────── Roster ──────────────────────

func (s *classService) Roster(ctx context.Context, classID string) ([]dto.RosterEntry, error) {
	if _, err := s.getClass(ctx, classID); err != nil {
		return nil, err
	}

	ids, err := s.repo.Enrollment.ListStudentIDs(ctx, classID)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	profiles, err := s.repo.Profile.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("list roster profiles failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	imported, err := s.repo.ImportRow.ListPending(ctx, classID)
	if err != nil {
		s.logger.Error("list import rows failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	roster := make([]dto.RosterEntry, 0, len(profiles)+len(imported))
	for i := range profiles {
		name := deref(profiles[i].FullName)
		if name == "" {
			name = unnamedProfile
		}
		roster = append(roster, dto.RosterEntry{
			ID:       profiles[i].UserID,
			FullName: name,
			Code:     deref(profiles[i].Code),
		})
	}
	for i := range imported {
		roster = append(roster, dto.RosterEntry{
			ID:        importRowPrefix + imported[i].ID,
			FullName:  imported[i].FullName,
			Code:      deref(imported[i].Code),
			NoAccount: true,
		})
	}

	col := collate.New(language.Vietnamese)
	sort.SliceStable(roster, func(i, j int) bool {
		return col.CompareString(roster[i].FullName, roster[j].FullName) < 0
	})
	return roster, nil
}

func (s *classService) AddStudent(ctx context.Context, classID string, req *dto.AddStudentRequest) error {
	if classID == "" {
		return ErrClassRequired
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return ErrStudentCodeRequired
	}

	profile, err := s.repo.Profile.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("find student by code failed", zap.String("code", code), zap.Error(err))
		return err
	}

	if err := s.repo.Enrollment.AddStudent(ctx, classID, profile.UserID); err != nil {
		s.logger.Error("add student to class failed",
			zap.String("class_id", classID),
			zap.String("student_id", profile.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *classService) RemoveStudent(ctx context.Context, classID, studentID string) error {
	if classID == "" {
		return ErrClassRequired
	}
	if strings.HasPrefix(studentID, importRowPrefix) {
		return ErrRosterImportRow
	}
	if err := s.repo.Enrollment.RemoveStudent(ctx, classID, studentID); err != nil {
		s.logger.Error("remove student from class failed",
			zap.String("class_id", classID),
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ────────────────────── Import ──────────────────────

func (s *classService) ImportRoster(ctx context.Context, classID string, r io.Reader) (*dto.ImportRosterResponse, error) {
	if classID == "" {
		return nil, ErrClassRequired
	}
	if _, err := s.getClass(ctx, classID); err != nil {
		return nil, err
	}

	parsed, err := parseRosterSheet(r)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ImportRow, 0, len(parsed))
	for _, p := range parsed {
		row := model.ImportRow{ClassID: classID, FullName: p.name, Pending: true}
		if p.code != "" {
			code := p.code
			row.Code = &code
		}
		rows = append(rows, row)
	}

	if err := s.repo.ImportRow.BatchCreate(ctx, rows); err != nil {
		s.logger.Error("insert import rows failed", zap.String("class_id", classID), zap.Int("rows", len(rows)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("roster imported", zap.String("class_id", classID), zap.Int("rows", len(rows)))
	return &dto.ImportRosterResponse{Inserted: len(rows)}, nil
}

func (s *classService) getClass(ctx context.Context, classID string) (*model.Class, error) {
	if classID == "" {
		return nil, ErrClassRequired
	}
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("get class failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	return class, nil
}

// ── helpers ──

func toClassResponse(c *model.Class) dto.ClassResponse {
	resp := dto.ClassResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      deref(c.Code),
		SubjectID: deref(c.SubjectID),
	}
	if c.Subject != nil {
		resp.SubjectCode = c.Subject.Code
		resp.SubjectName = c.Subject.Name
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimmedOrNil returns nil for a nil or blank value.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
