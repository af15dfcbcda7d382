package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler attendance report and its xlsx export.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Attendance GET /api/v1/admin/reports/attendance?class_id=&meeting_id=
func (h *ReportHandler) Attendance(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	rows, err := h.reportSvc.Fetch(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OKList(c, rows, len(rows))
}

// ExportAttendance GET /api/v1/admin/reports/attendance/export?class_id=&meeting_id=
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	buf, filename, err := h.reportSvc.Export(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportClassRequired):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrReportMeetingRequired):
		response.BadRequest(c, 17002, err.Error())
	case errors.Is(err, service.ErrReportNoRows):
		response.NotFound(c, 17003, err.Error())
	case errors.Is(err, service.ErrReportGenerateFail):
		response.InternalError(c)
	default:
		respondRemote(c, 17001, "Không thể tải dữ liệu báo cáo.", err)
	}
}
