package handler

import (
	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/service"
)

// Handler groups every HTTP handler of the console.
type Handler struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Class     *ClassHandler
	Subject   *SubjectHandler
	Meeting   *MeetingHandler
	User      *UserHandler
	Student   *StudentHandler
	Account   *AccountHandler
	Report    *ReportHandler
}

// NewHandler wires the handlers.
func NewHandler(svc *service.Service, authCfg *config.AuthConfig) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth, authCfg),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Class:     NewClassHandler(svc.Class),
		Subject:   NewSubjectHandler(svc.Subject),
		Meeting:   NewMeetingHandler(svc.Meeting),
		User:      NewUserHandler(svc.User),
		Student:   NewStudentHandler(svc.Student),
		Account:   NewAccountHandler(svc.Account),
		Report:    NewReportHandler(svc.Report),
	}
}
