package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/config"
	"github.com/truongminh05/VCI-Web/internal/api/middleware"
	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// AuthHandler console sign-in, sign-out and session state.
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login signs in and sets the session cookie.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Vui lòng nhập email và mật khẩu hợp lệ.")
		return
	}

	sid, session, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrLoginFailed) {
			response.Error(c, http.StatusUnauthorized, 11001, err.Error())
			return
		}
		respondRemote(c, 11002, "Lỗi đăng nhập", err)
		return
	}

	h.setSessionCookie(c, sid, int(h.cfg.SessionTTL.Seconds()))
	response.OK(c, session)
}

// Me returns the session state; signed-out callers get an empty state.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	v, ok := c.Get(middleware.AuthContextKey)
	if !ok {
		response.OK(c, &dto.SessionResponse{})
		return
	}
	response.OK(c, h.authSvc.Session(v.(*authctx.Context)))
}

// Logout signs out at the identity provider and drops the cookie. When the
// provider refuses, the session stays and the error is returned.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if v, ok := c.Get(middleware.AuthContextKey); ok {
		if err := h.authSvc.Logout(c.Request.Context(), v.(*authctx.Context)); err != nil {
			respondRemote(c, 11003, "Không thể đăng xuất.", err)
			return
		}
	}
	h.setSessionCookie(c, "", -1)
	response.OKMessage(c, "Đã đăng xuất.", nil)
}

// RefreshProfile reloads the profile of the signed-in user.
// POST /api/v1/auth/refresh-profile
func (h *AuthHandler) RefreshProfile(c *gin.Context) {
	ac, ok := MustGetAuthContext(c)
	if !ok {
		return
	}
	session, err := h.authSvc.RefreshProfile(c.Request.Context(), ac)
	if err != nil {
		if errors.Is(err, authctx.ErrNoSession) {
			response.LoginRequired(c, middleware.LoginPath)
			return
		}
		respondRemote(c, 11004, "Không tải được hồ sơ.", err)
		return
	}
	response.OK(c, session)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSite(h.cfg.Cookie.SameSite))
	c.SetCookie(h.cfg.Cookie.Name, value, maxAge, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
