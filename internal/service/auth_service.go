package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/internal/dto"
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
)

// ── auth errors ──

var ErrLoginFailed = errors.New("Đăng nhập thất bại")

// SessionRegistry creates console sessions.
type SessionRegistry interface {
	SignIn(ctx context.Context, email, password string) (string, *authctx.Context, error)
}

// AuthService console sign-in and session state.
type AuthService interface {
	// Login returns the new console session id and its state.
	Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.SessionResponse, error)
	Session(ac *authctx.Context) *dto.SessionResponse
	Logout(ctx context.Context, ac *authctx.Context) error
	RefreshProfile(ctx context.Context, ac *authctx.Context) (*dto.SessionResponse, error)
}

type authService struct {
	sessions SessionRegistry
	logger   *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(sessions SessionRegistry, logger *zap.Logger) AuthService {
	return &authService{sessions: sessions, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.SessionResponse, error) {
	sid, ac, err := s.sessions.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if pkgerrors.KindOf(err) == pkgerrors.KindNetwork {
			s.logger.Error("sign-in request failed", zap.Error(err))
			return "", nil, &RemoteFailure{Kind: pkgerrors.KindNetwork, Message: "Lỗi đăng nhập: " + err.Error(), Err: err}
		}
		return "", nil, fmt.Errorf("%w: %s", ErrLoginFailed, err.Error())
	}

	resp := toSessionResponse(ac.Snapshot())
	if resp.User != nil {
		s.logger.Info("console sign-in",
			zap.String("user_id", resp.User.ID),
			zap.String("role", resp.Role),
		)
	}
	return sid, resp, nil
}

// ────────────────────── Session ──────────────────────

func (s *authService) Session(ac *authctx.Context) *dto.SessionResponse {
	return toSessionResponse(ac.Snapshot())
}

func (s *authService) Logout(ctx context.Context, ac *authctx.Context) error {
	if err := ac.SignOut(ctx); err != nil {
		s.logger.Warn("sign-out failed", zap.Error(err))
		return localizeRemote(err, remoteMessages{forbidden: "Không thể đăng xuất."})
	}
	return nil
}

func (s *authService) RefreshProfile(ctx context.Context, ac *authctx.Context) (*dto.SessionResponse, error) {
	if err := ac.RefreshProfile(ctx); err != nil {
		if errors.Is(err, authctx.ErrNoSession) {
			return nil, err
		}
		s.logger.Error("refresh profile failed", zap.Error(err))
		return nil, err
	}
	return toSessionResponse(ac.Snapshot()), nil
}

func toSessionResponse(st authctx.State) *dto.SessionResponse {
	resp := &dto.SessionResponse{Loading: st.Loading, Role: string(st.Role)}
	if st.User != nil {
		resp.User = &dto.UserInfo{ID: st.User.ID, Email: st.User.Email}
	}
	if st.Profile != nil {
		p := toProfileResponse(st.Profile)
		resp.Profile = &p
	}
	if authctx.Evaluate(st) == authctx.DecisionAllow {
		resp.IsAdmin = true
		resp.Redirect = "/admin"
	}
	return resp
}
