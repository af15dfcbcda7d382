package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// ── meeting errors ──

var (
	ErrMeetingTimeRequired    = errors.New("Nhập thời gian bắt đầu và kết thúc.")
	ErrMeetingTimeOrder       = errors.New("Giờ kết thúc phải sau giờ bắt đầu.")
	ErrMeetingMinutesNegative = errors.New("Số phút phải >= 0.")
)

// MeetingService meeting scheduling.
type MeetingService interface {
	// ListByClass returns the class's meetings, newest first.
	ListByClass(ctx context.Context, classID string) ([]dto.MeetingResponse, error)
	// Teachers lists active teachers by name.
	Teachers(ctx context.Context) ([]dto.TeacherResponse, error)
	Create(ctx context.Context, classID string, req *dto.CreateMeetingRequest) error
}

type meetingService struct {
	cfg    *config.MeetingConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMeetingService creates a MeetingService.
func NewMeetingService(cfg *config.MeetingConfig, repo *repository.Repository, logger *zap.Logger) MeetingService {
	return &meetingService{cfg: cfg, repo: repo, logger: logger}
}

func (s *meetingService) ListByClass(ctx context.Context, classID string) ([]dto.MeetingResponse, error) {
	if classID == "" {
		return nil, ErrClassRequired
	}
	meetings, err := s.repo.Meeting.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("list meetings failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, toMeetingResponse(&meetings[i]))
	}
	return result, nil
}

func (s *meetingService) Teachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	profiles, err := s.repo.Profile.ListActive(ctx, model.RoleTeacher)
	if err != nil {
		s.logger.Error("list teachers failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeacherResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, dto.TeacherResponse{
			UserID:   profiles[i].UserID,
			FullName: deref(profiles[i].FullName),
			Code:     deref(profiles[i].Code),
		})
	}
	col := collate.New(language.Vietnamese)
	sort.SliceStable(result, func(i, j int) bool {
		return col.CompareString(result[i].FullName, result[j].FullName) < 0
	})
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *meetingService) Create(ctx context.Context, classID string, req *dto.CreateMeetingRequest) error {
	if classID == "" {
		return ErrClassRequired
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return ErrMeetingTimeRequired
	}
	if !req.EndAt.After(req.StartAt) {
		return ErrMeetingTimeOrder
	}

	onTime := s.cfg.DefaultOnTimeMinutes
	if req.OnTimeMinutes != nil {
		onTime = *req.OnTimeMinutes
	}
	late := s.cfg.DefaultLateMinutes
	if req.LateAfterMinutes != nil {
		late = *req.LateAfterMinutes
	}
	if onTime < 0 || late < 0 {
		return ErrMeetingMinutesNegative
	}

	params := &repository.CreateMeetingParams{
		ClassID:           classID,
		SubjectID:         trimmedOrNil(req.SubjectID),
		TeacherID:         trimmedOrNil(req.TeacherID),
		StartAt:           req.StartAt.UTC(),
		EndAt:             req.EndAt.UTC(),
		OnTimeMinutes:     onTime,
		LateAfterMinutes:  late,
		QRIntervalSeconds: s.cfg.QRIntervalSeconds,
	}
	if err := s.repo.Meeting.Create(ctx, params); err != nil {
		s.logger.Error("create meeting failed", zap.String("class_id", classID), zap.Error(err))
		return err
	}
	return nil
}

func toMeetingResponse(m *model.Meeting) dto.MeetingResponse {
	resp := dto.MeetingResponse{
		ID:                m.ID,
		ClassID:           m.ClassID,
		SubjectID:         deref(m.SubjectID),
		TeacherID:         deref(m.TeacherID),
		StartAt:           m.StartAt,
		EndAt:             m.EndAt,
		OnTimeMinutes:     m.OnTimeMinutes,
		LateAfterMinutes:  m.LateAfterMinutes,
		QRIntervalSeconds: m.QRIntervalSeconds,
	}
	if m.Subject != nil {
		resp.SubjectName = m.Subject.Name
	}
	return resp
}
