package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// MeetingHandler meeting scheduling.
type MeetingHandler struct {
	meetingSvc service.MeetingService
}

// NewMeetingHandler creates a MeetingHandler.
func NewMeetingHandler(meetingSvc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc}
}

// ListMeetings GET /api/v1/admin/classes/:id/meetings
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.meetingSvc.ListByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, gin.H{"list": meetings})
}

// ListTeachers GET /api/v1/admin/teachers
func (h *MeetingHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.meetingSvc.Teachers(c.Request.Context())
	if err != nil {
		respondRemote(c, 14001, "Lỗi tải danh sách giảng viên", err)
		return
	}
	response.OK(c, gin.H{"list": teachers})
}

// CreateMeeting POST /api/v1/admin/classes/:id/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	if err := h.meetingSvc.Create(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.Created(c, "Đã tạo buổi học.", nil)
}

func (h *MeetingHandler) handleMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassRequired),
		errors.Is(err, service.ErrMeetingTimeRequired),
		errors.Is(err, service.ErrMeetingTimeOrder),
		errors.Is(err, service.ErrMeetingMinutesNegative):
		response.BadRequest(c, 10001, err.Error())
	default:
		respondRemote(c, 14001, "Lỗi tạo buổi học", err)
	}
}
