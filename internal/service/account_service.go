package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/pkg/metrics"
	"github.com/truongminh05/VCI-Web/pkg/sheet"
)

// ── bulk account errors ──

var (
	ErrBulkClassRequired  = errors.New("Vui lòng chọn lớp.")
	ErrBulkDomainRequired = errors.New("Vui lòng nhập email domain (vd: sv.truongminh.dev).")
	ErrBulkDomainHasAt    = errors.New("Chỉ nhập phần domain, KHÔNG gồm @. Ví dụ: sv.truongminh.dev")
	ErrSheetNotConfigured = errors.New("Chưa cấu hình webhook Google Sheet.")
)

// Reasons for an empty bulk result. The first two come from admin_users.
const (
	ReasonNoImportRows    = "NO_IMPORT_ROWS"
	ReasonNoUsableRows    = "NO_USABLE_ROWS"
	ReasonAllHaveAccounts = "ALL_HAVE_ACCOUNTS"
)

// Sheet persistence outcomes, only reported when accounts were created.
const (
	SheetOK            = "ok"
	SheetError         = "error"
	SheetNotConfigured = "not_configured"
)

const (
	outcomeCreated   = "created"
	outcomeRecovered = "recovered"
	clipboardHeader  = "Họ tên\tMã SV\tEmail\tMật khẩu"
)

var reasonMessages = map[string]string{
	ReasonNoImportRows:    "Lớp này chưa có danh sách import. Hãy import danh sách sinh viên trước.",
	ReasonNoUsableRows:    "Danh sách import không có dòng nào đủ thông tin (họ tên hoặc mã sinh viên).",
	ReasonAllHaveAccounts: "Không có sinh viên nào cần tạo tài khoản (có thể tất cả đã có tài khoản).",
}

// AccountService bulk account reconciliation and the hand-out view.
type AccountService interface {
	BulkCreateFromClass(ctx context.Context, accessToken string, req *dto.BulkCreateRequest) (*dto.BulkAccountsResponse, error)
	Distribution(ctx context.Context, req *dto.DistributionRequest) (*dto.DistributionResponse, error)
}

type accountService struct {
	functions FunctionInvoker
	sheet     AccountSheet
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(functions FunctionInvoker, accounts AccountSheet, m *metrics.Metrics, logger *zap.Logger) AccountService {
	return &accountService{functions: functions, sheet: accounts, metrics: m, logger: logger}
}

// ────────────────────── BulkCreateFromClass ──────────────────────

func (s *accountService) BulkCreateFromClass(ctx context.Context, accessToken string, req *dto.BulkCreateRequest) (*dto.BulkAccountsResponse, error) {
	classID := strings.TrimSpace(req.ClassID)
	if classID == "" {
		return nil, ErrBulkClassRequired
	}
	domain := strings.TrimSpace(req.EmailDomain)
	if domain == "" {
		return nil, ErrBulkDomainRequired
	}
	if strings.Contains(domain, "@") {
		return nil, ErrBulkDomainHasAt
	}

	body := map[string]interface{}{
		"action":       "bulk_from_class",
		"lop_id":       classID,
		"email_domain": domain,
	}
	var result dto.BulkResult
	if err := s.functions.Invoke(ctx, accessToken, fnAdminUsers, body, &result); err != nil {
		failure := localizeRemote(err, remoteMessages{
			forbidden: "Chỉ tài khoản quản trị mới được tạo hàng loạt.",
		})
		s.metrics.IncRemoteError(fnAdminUsers, failure.Kind.String())
		s.logger.Warn("bulk create accounts failed",
			zap.String("class_id", classID), zap.String("kind", failure.Kind.String()), zap.Error(err))
		return nil, failure
	}

	resp := summarizeBulk(&result)
	s.metrics.AddBulkAccounts(outcomeCreated, resp.Created)
	s.metrics.AddBulkAccounts(outcomeRecovered, resp.Recovered)
	if resp.Sheet != nil {
		s.metrics.IncBulkSheet(resp.Sheet.Result)
	}
	s.logger.Info("bulk accounts reconciled",
		zap.String("class_id", classID),
		zap.Int("created", resp.Created),
		zap.Int("recovered", resp.Recovered),
		zap.String("reason", resp.Reason))
	return resp, nil
}

// summarizeBulk normalises a raw result: total is zero iff a reason is set.
func summarizeBulk(r *dto.BulkResult) *dto.BulkAccountsResponse {
	resp := &dto.BulkAccountsResponse{
		Rows:      make([]dto.BulkRow, 0, len(r.Created)+len(r.Recovered)),
		Created:   len(r.Created),
		Recovered: len(r.Recovered),
	}
	for _, a := range r.Created {
		resp.Rows = append(resp.Rows, toBulkRow(outcomeCreated, a))
	}
	for _, a := range r.Recovered {
		resp.Rows = append(resp.Rows, toBulkRow(outcomeRecovered, a))
	}
	resp.Total = len(resp.Rows)

	if resp.Total == 0 {
		resp.Reason = r.Reason
		if resp.Reason == "" {
			resp.Reason = ReasonAllHaveAccounts
		}
		resp.Message = reasonMessages[resp.Reason]
		if resp.Message == "" {
			resp.Message = reasonMessages[ReasonAllHaveAccounts]
		}
		return resp
	}

	resp.Message = fmt.Sprintf("Đã xử lý %d tài khoản (%d tạo mới, %d đã có).", resp.Total, resp.Created, resp.Recovered)
	if resp.Created > 0 {
		resp.Sheet = sheetOutcome(r)
	}
	resp.ClipboardTSV = clipboardTSV(resp.Rows)
	return resp
}

func toBulkRow(outcome string, a dto.BulkAccount) dto.BulkRow {
	row := dto.BulkRow{
		Outcome:  outcome,
		FullName: a.FullName,
		Code:     a.Code,
		Email:    a.Email,
		Password: a.Password,
		Display:  a.Password,
	}
	if row.Display == "" {
		row.Display = a.Status
	}
	if row.Display == "" {
		row.Display = outcome
	}
	return row
}

func sheetOutcome(r *dto.BulkResult) *dto.SheetOutcome {
	switch {
	case r.SheetOK != nil && *r.SheetOK:
		return &dto.SheetOutcome{Result: SheetOK, Message: "Đã lưu danh sách tài khoản vào Google Sheet."}
	case r.SheetError != "":
		return &dto.SheetOutcome{
			Result:  SheetError,
			Message: "Tạo tài khoản thành công nhưng lưu Google Sheet bị lỗi.",
			Error:   r.SheetError,
		}
	default:
		return &dto.SheetOutcome{Result: SheetNotConfigured, Message: "Chưa cấu hình Google Sheet, hãy tự lưu danh sách tài khoản."}
	}
}

func clipboardTSV(rows []dto.BulkRow) string {
	var b strings.Builder
	b.WriteString(clipboardHeader)
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{r.FullName, r.Code, r.Email, r.Display}, "\t"))
	}
	return b.String()
}

// ────────────────────── Distribution ──────────────────────

func (s *accountService) Distribution(ctx context.Context, req *dto.DistributionRequest) (*dto.DistributionResponse, error) {
	if !s.sheet.Configured() {
		return nil, ErrSheetNotConfigured
	}
	rows, err := s.sheet.ListAccounts(ctx)
	if err != nil {
		if errors.Is(err, sheet.ErrNotConfigured) {
			return nil, ErrSheetNotConfigured
		}
		s.logger.Warn("read account sheet failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.DistributionResponse{
		Classes:        sheetClasses(rows),
		Distributed:    []dto.DistributionRow{},
		NotDistributed: []dto.DistributionRow{},
	}
	filter := strings.TrimSpace(req.Class)
	term := strings.ToLower(strings.TrimSpace(req.Search))
	for i := range rows {
		r := &rows[i]
		if filter != "" && r.ClassID != filter && r.ClassName != filter {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		item := toDistributionRow(r)
		if r.Handed {
			resp.Distributed = append(resp.Distributed, item)
		} else {
			resp.NotDistributed = append(resp.NotDistributed, item)
		}
	}
	resp.Total = len(resp.Distributed) + len(resp.NotDistributed)
	return resp, nil
}

// sheetClasses keeps first-seen order, keyed by id or name.
func sheetClasses(rows []sheet.AccountRow) []dto.DistributionClass {
	seen := make(map[string]bool)
	classes := []dto.DistributionClass{}
	for _, r := range rows {
		key, label := r.ClassID, r.ClassName
		if key == "" {
			key = r.ClassName
		}
		if label == "" {
			label = r.ClassID
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		classes = append(classes, dto.DistributionClass{ID: key, Name: label})
	}
	return classes
}

func matchesSearch(r *sheet.AccountRow, term string) bool {
	return strings.Contains(strings.ToLower(r.Code), term) ||
		strings.Contains(strings.ToLower(r.FullName), term) ||
		strings.Contains(strings.ToLower(r.Email), term)
}

func toDistributionRow(r *sheet.AccountRow) dto.DistributionRow {
	return dto.DistributionRow{
		ID:        r.ID,
		ClassID:   r.ClassID,
		ClassName: r.ClassName,
		FullName:  r.FullName,
		Code:      r.Code,
		Email:     r.Email,
		Password:  r.Password,
		Handed:    r.Handed,
		CreatedAt: r.CreatedAt,
	}
}
