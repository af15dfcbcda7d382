package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// ── subject errors ──

var (
	ErrSubjectFieldsRequired = errors.New("Nhập đầy đủ mã môn và tên môn.")
	ErrSubjectNotFound       = errors.New("Không tìm thấy môn học.")
)

// SubjectService subject management.
type SubjectService interface {
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService creates a SubjectService.
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("get subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── Create / Update ──────────────────────

func (s *subjectService) Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	code, name, err := subjectFields(req)
	if err != nil {
		return nil, err
	}

	subject := &model.Subject{Code: code, Name: name}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) Update(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	code, name, err := subjectFields(req)
	if err != nil {
		return nil, err
	}

	subject := &model.Subject{ID: id, Code: code, Name: name}
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("update subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func subjectFields(req *dto.SubjectRequest) (string, string, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return "", "", ErrSubjectFieldsRequired
	}
	return code, name, nil
}

func toSubjectResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{ID: s.ID, Code: s.Code, Name: s.Name}
}
