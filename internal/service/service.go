package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/repository"
	"github.com/truongminh05/VCI-Web/pkg/metrics"
	"github.com/truongminh05/VCI-Web/pkg/sheet"
)

// FunctionInvoker calls a backend function with the caller's access token.
type FunctionInvoker interface {
	Invoke(ctx context.Context, accessToken, name string, body, out interface{}) error
}

// AccountSheet reads generated accounts from the spreadsheet webhook.
type AccountSheet interface {
	Configured() bool
	ListAccounts(ctx context.Context) ([]sheet.AccountRow, error)
}

// Service groups every service of the console.
type Service struct {
	Auth      AuthService
	Dashboard DashboardService
	Class     ClassService
	Subject   SubjectService
	Meeting   MeetingService
	User      UserService
	Student   StudentService
	Account   AccountService
	Report    ReportService
}

// NewService wires the services.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	sessions SessionRegistry,
	functions FunctionInvoker,
	accounts AccountSheet,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	validate := validator.New()
	return &Service{
		Auth:      NewAuthService(sessions, logger),
		Dashboard: NewDashboardService(repo, logger),
		Class:     NewClassService(repo, logger),
		Subject:   NewSubjectService(repo, logger),
		Meeting:   NewMeetingService(&cfg.Meeting, repo, logger),
		User:      NewUserService(repo, functions, validate, m, logger),
		Student:   NewStudentService(repo, logger),
		Account:   NewAccountService(functions, accounts, m, logger),
		Report:    NewReportService(&cfg.Report, repo, logger),
	}
}
