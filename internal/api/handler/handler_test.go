package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/api/middleware"
	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/service"
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	sid        string
	session    *dto.SessionResponse
	loginErr   error
	logoutErr  error
	refreshErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (string, *dto.SessionResponse, error) {
	return m.sid, m.session, m.loginErr
}
func (m *mockAuthService) Session(_ *authctx.Context) *dto.SessionResponse { return m.session }
func (m *mockAuthService) Logout(_ context.Context, _ *authctx.Context) error {
	return m.logoutErr
}
func (m *mockAuthService) RefreshProfile(_ context.Context, _ *authctx.Context) (*dto.SessionResponse, error) {
	return m.session, m.refreshErr
}

// ── Mock ClassService ──

type mockClassService struct {
	roster    []dto.RosterEntry
	err       error
	importErr error
	imported  *dto.ImportRosterResponse
}

func (m *mockClassService) List(_ context.Context) ([]dto.ClassResponse, error) {
	return nil, m.err
}
func (m *mockClassService) Create(_ context.Context, _ *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	return &dto.ClassResponse{}, m.err
}
func (m *mockClassService) Roster(_ context.Context, _ string) ([]dto.RosterEntry, error) {
	return m.roster, m.err
}
func (m *mockClassService) AddStudent(_ context.Context, _ string, _ *dto.AddStudentRequest) error {
	return m.err
}
func (m *mockClassService) RemoveStudent(_ context.Context, _, _ string) error { return m.err }
func (m *mockClassService) ImportRoster(_ context.Context, _ string, _ io.Reader) (*dto.ImportRosterResponse, error) {
	return m.imported, m.importErr
}

// ── Mock UserService ──

type mockUserService struct {
	createCalls int
	lastToken   string
	createErr   error
	disableErr  error
}

func (m *mockUserService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.ProfileResponse, error) {
	return []dto.ProfileResponse{}, nil
}
func (m *mockUserService) Disable(_ context.Context, _ string) error { return m.disableErr }
func (m *mockUserService) CheckCode(_ context.Context, code string) (*dto.CodeCheckResponse, error) {
	return &dto.CodeCheckResponse{Code: code, Available: true}, nil
}
func (m *mockUserService) Create(_ context.Context, token string, _ *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	m.createCalls++
	m.lastToken = token
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.CreateUserResponse{UserID: "new-id"}, nil
}

// ── Mock StudentService ──

type mockStudentService struct {
	err error
}

func (m *mockStudentService) Lookup(_ context.Context, code string) (*dto.StudentLookupResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.StudentLookupResponse{Profile: dto.ProfileResponse{Code: code}}, nil
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest) (*dto.ProfileResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ProfileResponse{}, nil
}

// ── Mock AccountService ──

type mockAccountService struct {
	bulk    *dto.BulkAccountsResponse
	bulkErr error
	distErr error
}

func (m *mockAccountService) BulkCreateFromClass(_ context.Context, _ string, _ *dto.BulkCreateRequest) (*dto.BulkAccountsResponse, error) {
	return m.bulk, m.bulkErr
}
func (m *mockAccountService) Distribution(_ context.Context, _ *dto.DistributionRequest) (*dto.DistributionResponse, error) {
	if m.distErr != nil {
		return nil, m.distErr
	}
	return &dto.DistributionResponse{}, nil
}

// ── Mock ReportService ──

type mockReportService struct {
	rows     []dto.ReportRowResponse
	filename string
	err      error
}

func (m *mockReportService) Fetch(_ context.Context, _ *dto.ReportRequest) ([]dto.ReportRowResponse, error) {
	return m.rows, m.err
}
func (m *mockReportService) Export(_ context.Context, _ *dto.ReportRequest) (*bytes.Buffer, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBufferString("xlsx-bytes"), m.filename, nil
}

// ── fake session ──

type tokenProvider struct{ token string }

func (p *tokenProvider) GetSession(context.Context) (*authctx.Session, error) {
	if p.token == "" {
		return nil, nil
	}
	return &authctx.Session{AccessToken: p.token, User: authctx.User{ID: "admin-1"}}, nil
}
func (p *tokenProvider) Subscribe(authctx.Listener) func() { return func() {} }
func (p *tokenProvider) SignIn(context.Context, string, string) (*authctx.Session, error) {
	return nil, nil
}
func (p *tokenProvider) SignOut(context.Context) error { return nil }

type adminProfiles struct{}

func (adminProfiles) FindByUserID(_ context.Context, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID, Role: model.RoleAdmin}, nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		SessionTTL: time.Hour,
		Cookie:     config.CookieConfig{Name: "vci_session", SameSite: "Lax"},
	}
}

// withSession injects a ready auth context, as AdminGuard would.
func withSession(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac := authctx.NewContext(&tokenProvider{token: token}, adminProfiles{}, zap.NewNop())
		ac.Init(c.Request.Context())
		c.Set(middleware.AuthContextKey, ac)
		c.Set(middleware.UserIDKey, "admin-1")
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{sid: "sid-1", session: &dto.SessionResponse{IsAdmin: true}}
	h := NewAuthHandler(mock, testAuthConfig())

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@vci.edu.vn",
		Password: "secret1",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var found bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "vci_session" {
			found = true
			if ck.Value != "sid-1" || !ck.HttpOnly || ck.MaxAge != 3600 {
				t.Errorf("unexpected cookie %+v", ck)
			}
		}
	}
	if !found {
		t.Error("expected vci_session cookie to be set")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_Failed(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"wrong credentials", service.ErrLoginFailed, http.StatusUnauthorized, 11001},
		{"network", &service.RemoteFailure{Kind: pkgerrors.KindNetwork, Message: "dial tcp", Err: errors.New("dial tcp")}, http.StatusBadGateway, 11002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err}, testAuthConfig())
			r := gin.New()
			r.POST("/auth/login", h.Login)
			w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.LoginRequest{
				Email:    "a@b.vn",
				Password: "x",
			}))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
			if len(w.Result().Cookies()) != 0 {
				t.Error("no cookie expected on failure")
			}
		})
	}
}

func TestAuthHandler_Me_Anonymous(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	r := gin.New()
	r.GET("/auth/me", h.Me)
	w := serve(r, http.MethodGet, "/auth/me", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"user":null`) {
		t.Errorf("expected empty session, got %s", w.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	r := gin.New()
	r.POST("/auth/logout", withSession("tok"), h.Logout)
	w := serve(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected cookie to be cleared, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_ErrorKeepsCookie(t *testing.T) {
	mock := &mockAuthService{logoutErr: errors.New("network down")}
	h := NewAuthHandler(mock, testAuthConfig())

	r := gin.New()
	r.POST("/auth/logout", withSession("tok"), h.Logout)
	w := serve(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie must be kept when sign-out fails")
	}
}

func TestAuthHandler_RefreshProfile_NoSession(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	r := gin.New()
	r.POST("/auth/refresh-profile", h.RefreshProfile)
	w := serve(r, http.MethodPost, "/auth/refresh-profile", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if w.Header().Get("Location") != middleware.LoginPath {
		t.Errorf("expected Location %s, got %q", middleware.LoginPath, w.Header().Get("Location"))
	}
}

// ═══════════════════════════════════════════════════════════
// respondRemote
// ═══════════════════════════════════════════════════════════

func TestRespondRemote(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"unauthenticated", &service.RemoteFailure{Kind: pkgerrors.KindUnauthenticated, Message: "Bạn cần đăng nhập."}, http.StatusUnauthorized, 10002, "Bạn cần đăng nhập."},
		{"forbidden", &service.RemoteFailure{Kind: pkgerrors.KindForbidden, Message: "no"}, http.StatusForbidden, 10003, "no"},
		{"email exists", &service.RemoteFailure{Kind: pkgerrors.KindEmailExists, Message: "dup"}, http.StatusConflict, 15001, "dup"},
		{"unknown kind", &service.RemoteFailure{Kind: pkgerrors.KindUnknown, Message: "boom"}, http.StatusBadGateway, 15001, "boom"},
		{"plain error", errors.New("db"), http.StatusBadGateway, 15001, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondRemote(c, 15001, "fallback", tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode || resp.Message != tt.wantMsg {
				t.Errorf("got code %d message %q", resp.Code, resp.Message)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ClassHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClassHandler_Roster(t *testing.T) {
	mock := &mockClassService{roster: []dto.RosterEntry{
		{ID: "u1", FullName: "An", Code: "SV1"},
		{ID: "imp:r1", FullName: "Bình", NoAccount: true},
	}}
	h := NewClassHandler(mock)

	r := gin.New()
	r.GET("/classes/:id/roster", h.Roster)
	w := serve(r, http.MethodGet, "/classes/c1/roster", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"total":2`) {
		t.Errorf("expected total 2, got %s", w.Body.String())
	}
}

func TestClassHandler_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrClassNameRequired, http.StatusBadRequest},
		{service.ErrStudentNotFound, http.StatusNotFound},
		{service.ErrRosterImportRow, http.StatusBadRequest},
		{errors.New("db"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		h := NewClassHandler(&mockClassService{err: tt.err})
		r := gin.New()
		r.DELETE("/classes/:id/students/:student_id", h.RemoveStudent)
		w := serve(r, http.MethodDelete, "/classes/c1/students/imp:r1", nil)
		if w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
	}
}

func TestClassHandler_ImportRoster_MissingFile(t *testing.T) {
	h := NewClassHandler(&mockClassService{})

	r := gin.New()
	r.POST("/classes/:id/import", h.ImportRoster)
	w := serve(r, http.MethodPost, "/classes/c1/import", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12101 {
		t.Errorf("expected code 12101, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_Create_PassesAccessToken(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	r := gin.New()
	r.POST("/users", withSession("user-token"), h.CreateUser)
	w := serve(r, http.MethodPost, "/users", jsonBody(dto.CreateUserRequest{
		Email: "sv1@vci.edu.vn", Password: "secret1", FullName: "An", Role: "sinhvien", Code: "SV1",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.lastToken != "user-token" {
		t.Errorf("expected caller token, got %q", mock.lastToken)
	}
}

func TestUserHandler_Create_NoSession(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	r := gin.New()
	r.POST("/users", withSession(""), h.CreateUser)
	w := serve(r, http.MethodPost, "/users", jsonBody(dto.CreateUserRequest{Email: "a@b.vn"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if mock.createCalls != 0 {
		t.Error("service must not be called without a token")
	}
}

func TestUserHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", service.ErrUserPasswordShort, http.StatusBadRequest},
		{"code taken", service.ErrUserCodeTaken, http.StatusConflict},
		{"no id", service.ErrUserNoID, http.StatusBadGateway},
		{"forbidden", &service.RemoteFailure{Kind: pkgerrors.KindForbidden, Message: "admin only"}, http.StatusForbidden},
		{"email exists", &service.RemoteFailure{Kind: pkgerrors.KindEmailExists, Message: "dup"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&mockUserService{createErr: tt.err})
			r := gin.New()
			r.POST("/users", withSession("tok"), h.CreateUser)
			w := serve(r, http.MethodPost, "/users", jsonBody(dto.CreateUserRequest{Email: "a@b.vn"}))
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestUserHandler_DisableNotFound(t *testing.T) {
	h := NewUserHandler(&mockUserService{disableErr: service.ErrUserNotFound})

	r := gin.New()
	r.DELETE("/users/:id", h.DisableUser)
	w := serve(r, http.MethodDelete, "/users/u1", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUserHandler_ListBadRole(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	r := gin.New()
	r.GET("/users", h.ListUsers)
	w := serve(r, http.MethodGet, "/users?role=root", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_Lookup(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"empty keyword", service.ErrLookupKeywordRequired, http.StatusBadRequest},
		{"not found", service.ErrProfileNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewStudentHandler(&mockStudentService{err: tt.err})
			r := gin.New()
			r.GET("/students/lookup", h.Lookup)
			w := serve(r, http.MethodGet, "/students/lookup?code=SV1", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestStudentHandler_UpdateNoRowsIsForbidden(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{err: service.ErrProfileNotUpdated})

	r := gin.New()
	r.PUT("/students/:id", h.UpdateStudent)
	w := serve(r, http.MethodPut, "/students/u1", jsonBody(dto.UpdateStudentRequest{FullName: "An"}))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AccountHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAccountHandler_BulkCreate(t *testing.T) {
	mock := &mockAccountService{bulk: &dto.BulkAccountsResponse{Total: 1, Created: 1, Message: "Đã xử lý 1 tài khoản (1 tạo mới, 0 đã có)."}}
	h := NewAccountHandler(mock)

	r := gin.New()
	r.POST("/accounts/bulk", withSession("tok"), h.BulkCreate)
	w := serve(r, http.MethodPost, "/accounts/bulk", jsonBody(dto.BulkCreateRequest{ClassID: "c1", EmailDomain: "sv.vci.edu.vn"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Message != mock.bulk.Message {
		t.Errorf("expected summary message, got %q", resp.Message)
	}
}

func TestAccountHandler_BulkCreate_DomainWithAt(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{bulkErr: service.ErrBulkDomainHasAt})

	r := gin.New()
	r.POST("/accounts/bulk", withSession("tok"), h.BulkCreate)
	w := serve(r, http.MethodPost, "/accounts/bulk", jsonBody(dto.BulkCreateRequest{ClassID: "c1", EmailDomain: "@x"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAccountHandler_Distribution_NotConfigured(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{distErr: service.ErrSheetNotConfigured})

	r := gin.New()
	r.GET("/accounts/distribution", h.Distribution)
	w := serve(r, http.MethodGet, "/accounts/distribution", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16002 {
		t.Errorf("expected code 16002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Export(t *testing.T) {
	h := NewReportHandler(&mockReportService{filename: "BaoCaoDiemDanh_Lớp_A.xlsx"})

	r := gin.New()
	r.GET("/reports/attendance/export", h.ExportAttendance)
	w := serve(r, http.MethodGet, "/reports/attendance/export?class_id=c1&meeting_id=m1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	want := "attachment; filename*=UTF-8''BaoCaoDiemDanh_L%E1%BB%9Bp_A.xlsx"
	if cd := w.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("Content-Disposition = %q, want %q", cd, want)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestReportHandler_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{service.ErrReportClassRequired, http.StatusBadRequest, 10001},
		{service.ErrReportMeetingRequired, http.StatusBadRequest, 17002},
		{service.ErrReportNoRows, http.StatusNotFound, 17003},
		{service.ErrReportGenerateFail, http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		h := NewReportHandler(&mockReportService{err: tt.err})
		r := gin.New()
		r.GET("/reports/attendance/export", h.ExportAttendance)
		w := serve(r, http.MethodGet, "/reports/attendance/export", nil)
		if w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tt.wantCode {
			t.Errorf("%v: expected code %d, got %d", tt.err, tt.wantCode, resp.Code)
		}
	}
}
