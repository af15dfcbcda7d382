package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// StudentHandler profile lookup and personal-field edits.
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Lookup GET /api/v1/admin/students/lookup?code=
func (h *StudentHandler) Lookup(c *gin.Context) {
	result, err := h.studentSvc.Lookup(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateStudent PUT /api/v1/admin/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	profile, err := h.studentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OKMessage(c, "Đã cập nhật thông tin.", profile)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLookupKeywordRequired),
		errors.Is(err, service.ErrBirthDateInvalid):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 18001, err.Error())
	case errors.Is(err, service.ErrProfileNotUpdated):
		response.Forbidden(c, 18002, err.Error())
	default:
		respondRemote(c, 18003, "Lỗi tra cứu người dùng", err)
	}
}
