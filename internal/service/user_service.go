package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
	"github.com/truongminh05/VCI-Web/pkg/metrics"
)

// ── user errors ──

var (
	ErrUserEmailInvalid  = errors.New("Vui lòng nhập email hợp lệ.")
	ErrUserPasswordShort = errors.New("Mật khẩu tối thiểu 6 ký tự.")
	ErrUserNameRequired  = errors.New("Vui lòng nhập Họ tên.")
	ErrUserRoleInvalid   = errors.New("Vai trò không hợp lệ.")
	ErrUserCodeRequired  = errors.New("Nhập mã sinh viên/giảng viên để kiểm tra.")
	ErrUserCodeTaken     = errors.New("Mã sinh viên/giảng viên đã tồn tại. Vui lòng dùng mã khác.")
	ErrUserNoID          = errors.New("Hàm tạo tài khoản không trả về user_id.")
	ErrUserNotFound      = errors.New("Không tìm thấy người dùng.")
)

const fnAdminUsers = "admin_users"

// UserService account listing, deactivation and single creation.
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.ProfileResponse, error)
	Disable(ctx context.Context, userID string) error
	CheckCode(ctx context.Context, code string) (*dto.CodeCheckResponse, error)
	// Create calls admin_users with the caller's access token.
	Create(ctx context.Context, accessToken string, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
}

type userService struct {
	repo      *repository.Repository
	functions FunctionInvoker
	validate  *validator.Validate
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, functions FunctionInvoker, validate *validator.Validate, m *metrics.Metrics, logger *zap.Logger) UserService {
	return &userService{
		repo:      repo,
		functions: functions,
		validate:  validate,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// ────────────────────── List / Disable ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.ProfileResponse, error) {
	profiles, err := s.repo.Profile.ListActive(ctx, model.Role(req.Role))
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, toProfileResponse(&profiles[i]))
	}
	return result, nil
}

func (s *userService) Disable(ctx context.Context, userID string) error {
	n, err := s.repo.Profile.Disable(ctx, userID, s.now().UTC())
	if err != nil {
		s.logger.Error("disable user failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ────────────────────── CheckCode ──────────────────────

func (s *userService) CheckCode(ctx context.Context, code string) (*dto.CodeCheckResponse, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, ErrUserCodeRequired
	}
	if s.codeTaken(ctx, code) {
		return &dto.CodeCheckResponse{Code: code, Available: false, Message: "Mã đã tồn tại: " + code}, nil
	}
	return &dto.CodeCheckResponse{Code: code, Available: true, Message: "Mã khả dụng: " + code}, nil
}

// codeTaken asks the availability procedure, falling back to an exact
// count. When both fail the code is treated as free and the backend's own
// constraints decide.
func (s *userService) codeTaken(ctx context.Context, code string) bool {
	available, err := s.repo.Profile.CheckCodeAvailable(ctx, code)
	if err == nil {
		return !available
	}
	s.logger.Warn("code availability procedure failed, counting instead", zap.String("code", code), zap.Error(err))

	n, err := s.repo.Profile.CountByCode(ctx, code)
	if err != nil {
		s.logger.Warn("code count failed", zap.String("code", code), zap.Error(err))
		return false
	}
	return n > 0
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, accessToken string, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	in := dto.CreateUserRequest{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: strings.TrimSpace(req.Password),
		FullName: strings.TrimSpace(req.FullName),
		Role:     strings.TrimSpace(req.Role),
		Code:     normalizeCode(req.Code),
	}
	if err := s.validateCreate(&in); err != nil {
		return nil, err
	}
	if in.Code != "" && s.codeTaken(ctx, in.Code) {
		return nil, ErrUserCodeTaken
	}

	body := map[string]interface{}{
		"action":       "create",
		"email":        in.Email,
		"password":     in.Password,
		"full_name":    in.FullName,
		"vai_tro":      in.Role,
		"ma_sinh_vien": nil,
	}
	if in.Code != "" {
		body["ma_sinh_vien"] = in.Code
	}

	var out struct {
		UserID string `json:"user_id"`
	}
	if err := s.functions.Invoke(ctx, accessToken, fnAdminUsers, body, &out); err != nil {
		s.metrics.IncRemoteError(fnAdminUsers, pkgerrors.KindOf(err).String())
		s.logger.Error("create user failed", zap.String("email", in.Email), zap.Error(err))
		return nil, localizeRemote(err, remoteMessages{
			forbidden:   "Chỉ tài khoản 'quản trị' mới được phép tạo người dùng.",
			emailExists: "Email đã tồn tại.",
		})
	}
	if out.UserID == "" {
		return nil, ErrUserNoID
	}

	s.logger.Info("user created", zap.String("user_id", out.UserID), zap.String("role", in.Role))
	return &dto.CreateUserResponse{UserID: out.UserID}, nil
}

// validateCreate reports the first failing field in form order.
func (s *userService) validateCreate(req *dto.CreateUserRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Email":
		return ErrUserEmailInvalid
	case "Password":
		return ErrUserPasswordShort
	case "FullName":
		return ErrUserNameRequired
	default:
		return ErrUserRoleInvalid
	}
}

// ── helpers ──

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		UserID:     p.UserID,
		FullName:   deref(p.FullName),
		Code:       deref(p.Code),
		Role:       string(p.Role),
		Gender:     deref(p.Gender),
		Birthplace: deref(p.Birthplace),
		Phone:      deref(p.Phone),
	}
	if p.BirthDate != nil {
		resp.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	if p.CreatedAt != nil {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
