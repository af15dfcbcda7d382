package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// ClassHandler classes, rosters and roster import.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// ListClasses GET /api/v1/admin/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		respondRemote(c, 12001, "Lỗi tải danh sách lớp", err)
		return
	}
	response.OK(c, gin.H{"list": classes})
}

// CreateClass POST /api/v1/admin/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.Created(c, "Đã tạo lớp.", class)
}

// Roster GET /api/v1/admin/classes/:id/roster
func (h *ClassHandler) Roster(c *gin.Context) {
	roster, err := h.classSvc.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OKList(c, roster, len(roster))
}

// AddStudent enrols an existing student by code.
// POST /api/v1/admin/classes/:id/students
func (h *ClassHandler) AddStudent(c *gin.Context) {
	var req dto.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	if err := h.classSvc.AddStudent(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OKMessage(c, "Đã thêm sinh viên vào lớp.", nil)
}

// RemoveStudent DELETE /api/v1/admin/classes/:id/students/:student_id
func (h *ClassHandler) RemoveStudent(c *gin.Context) {
	if err := h.classSvc.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("student_id")); err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OKMessage(c, "Đã xoá sinh viên khỏi lớp.", nil)
}

// ImportRoster stores an uploaded xlsx roster as pending rows.
// POST /api/v1/admin/classes/:id/import (multipart field "file")
func (h *ClassHandler) ImportRoster(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Dữ liệu gửi lên quá lớn.")
			return
		}
		response.BadRequest(c, 12101, "Vui lòng chọn file Excel.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 12102, service.ErrImportBadFile.Error())
		return
	}
	defer f.Close()

	result, err := h.classSvc.ImportRoster(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OKMessage(c, "Đã import danh sách sinh viên.", result)
}

func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassRequired),
		errors.Is(err, service.ErrClassNameRequired),
		errors.Is(err, service.ErrStudentCodeRequired):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12002, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12003, err.Error())
	case errors.Is(err, service.ErrRosterImportRow):
		response.BadRequest(c, 12004, err.Error())
	case errors.Is(err, service.ErrImportBadFile):
		response.BadRequest(c, 12102, service.ErrImportBadFile.Error())
	case errors.Is(err, service.ErrImportNoRows):
		response.BadRequest(c, 12103, err.Error())
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 12104, err.Error())
	default:
		respondRemote(c, 12001, "Lỗi thao tác với lớp", err)
	}
}
