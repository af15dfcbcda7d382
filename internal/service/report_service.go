package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// ── report errors ──

var (
	ErrReportClassRequired   = errors.New("Vui lòng chọn lớp.")
	ErrReportMeetingRequired = errors.New("Để báo cáo đầy đủ cả đúng giờ / trễ / vắng, hãy chọn 1 buổi cụ thể.")
	ErrReportNoRows          = errors.New("Không có dữ liệu để xuất. Hãy bấm 'Xem báo cáo' trước.")
	ErrReportGenerateFail    = errors.New("Không thể xuất Excel.")
)

const (
	reportSheet      = "BaoCaoDiemDanh"
	reportTimeLayout = "15:04:05 2/1/2006"
	reportHeaderFill = "111827"
)

var reportColumns = []struct {
	header string
	width  float64
}{
	{"Lớp", 25},
	{"Mã lớp", 12},
	{"Môn", 22},
	{"Mã SV", 10},
	{"Họ tên SV", 25},
	{"Trạng thái", 12},
	{"Thời gian điểm danh", 24},
	{"Bắt đầu buổi", 22},
	{"Kết thúc buổi", 22},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ReportService per-meeting attendance report and its xlsx export.
type ReportService interface {
	Fetch(ctx context.Context, req *dto.ReportRequest) ([]dto.ReportRowResponse, error)
	Export(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error)
}

type reportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewReportService creates a ReportService. An unknown timezone falls back
// to UTC+7.
func NewReportService(cfg *config.ReportConfig, repo *repository.Repository, logger *zap.Logger) ReportService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil || cfg.Timezone == "" {
		logger.Warn("report timezone unavailable, using UTC+7", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.FixedZone("ICT", 7*60*60)
	}
	return &reportService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── Fetch ──────────────────────

func (s *reportService) Fetch(ctx context.Context, req *dto.ReportRequest) ([]dto.ReportRowResponse, error) {
	rows, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ReportRowResponse, 0, len(rows))
	for i := range rows {
		result = append(result, s.toReportRowResponse(&rows[i]))
	}
	return result, nil
}

// fetch validates before touching the store.
func (s *reportService) fetch(ctx context.Context, req *dto.ReportRequest) ([]model.ReportRow, error) {
	classID := strings.TrimSpace(req.ClassID)
	if classID == "" {
		return nil, ErrReportClassRequired
	}
	meetingID := strings.TrimSpace(req.MeetingID)
	if meetingID == "" {
		return nil, ErrReportMeetingRequired
	}
	rows, err := s.repo.Report.ListByMeeting(ctx, classID, meetingID)
	if err != nil {
		s.logger.Error("load attendance report failed",
			zap.String("class_id", classID), zap.String("meeting_id", meetingID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// ────────────────────── Export ──────────────────────

func (s *reportService) Export(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error) {
	rows, err := s.fetch(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrReportNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		s.logger.Error("rename report sheet failed", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	headers := make([]interface{}, len(reportColumns))
	for i, c := range reportColumns {
		col := colName(i)
		f.SetColWidth(reportSheet, col, col, c.width)
		headers[i] = c.header
	}
	f.SetSheetRow(reportSheet, "A1", &headers)

	lastCol := colName(len(reportColumns) - 1)
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{reportHeaderFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(reportSheet, "A1", cell(lastCol, 1), headerStyle)

	// data rows alternate by index parity, first data row is even
	evenStyle, _ := f.NewStyle(rowStyle("F9FAFB"))
	oddStyle, _ := f.NewStyle(rowStyle("E5E7EB"))

	for i := range rows {
		r := s.toReportRowResponse(&rows[i])
		excelRow := i + 2
		values := []interface{}{
			r.ClassName, r.ClassCode, r.SubjectName, r.StudentCode, r.StudentName,
			r.Status, r.CheckedInAt, r.StartAt, r.EndAt,
		}
		f.SetSheetRow(reportSheet, cell("A", excelRow), &values)
		style := evenStyle
		if i%2 == 1 {
			style = oddStyle
		}
		f.SetCellStyle(reportSheet, cell("A", excelRow), cell(lastCol, excelRow), style)
	}

	if err := f.AutoFilter(reportSheet, "A1:"+cell(lastCol, 1), nil); err != nil {
		s.logger.Error("set report auto filter failed", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write report workbook failed", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}
	return buf, reportFilename(rows[0].ClassName), nil
}

func rowStyle(fill string) *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: reportHeaderFill, Style: 1},
			{Type: "bottom", Color: reportHeaderFill, Style: 1},
		},
	}
}

func reportFilename(className string) string {
	name := strings.TrimSpace(className)
	if name == "" {
		name = "lop"
	}
	return fmt.Sprintf("bao_cao_diemdanh_%s.xlsx", whitespaceRun.ReplaceAllString(name, "_"))
}

func (s *reportService) toReportRowResponse(r *model.ReportRow) dto.ReportRowResponse {
	resp := dto.ReportRowResponse{
		ClassName:   r.ClassName,
		ClassCode:   deref(r.ClassCode),
		SubjectName: deref(r.SubjectName),
		StudentCode: r.StudentCode,
		StudentName: r.StudentName,
		Status:      r.Status,
		StartAt:     r.StartAt.In(s.loc).Format(reportTimeLayout),
		EndAt:       r.EndAt.In(s.loc).Format(reportTimeLayout),
	}
	if r.CheckedInAt != nil {
		resp.CheckedInAt = r.CheckedInAt.In(s.loc).Format(reportTimeLayout)
	}
	return resp
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
