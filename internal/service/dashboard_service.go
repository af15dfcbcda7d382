package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// DashboardService headline counts.
type DashboardService interface {
	Counts(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Counts(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		resp dto.DashboardResponse
		err  error
	)
	if resp.Students, err = s.repo.Profile.CountByRole(ctx, model.RoleStudent); err != nil {
		s.logger.Error("count students failed", zap.Error(err))
		return nil, err
	}
	if resp.Teachers, err = s.repo.Profile.CountByRole(ctx, model.RoleTeacher); err != nil {
		s.logger.Error("count teachers failed", zap.Error(err))
		return nil, err
	}
	if resp.Classes, err = s.repo.Class.Count(ctx); err != nil {
		s.logger.Error("count classes failed", zap.Error(err))
		return nil, err
	}
	if resp.Meetings, err = s.repo.Meeting.Count(ctx); err != nil {
		s.logger.Error("count meetings failed", zap.Error(err))
		return nil, err
	}
	return &resp, nil
}
