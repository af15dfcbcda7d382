package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/api/middleware"
	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// MustGetAuthContext returns the session's auth context set by the session
// middleware. On failure it writes the login response; callers return
// when ok is false.
func MustGetAuthContext(c *gin.Context) (*authctx.Context, bool) {
	v, exists := c.Get(middleware.AuthContextKey)
	if !exists {
		response.LoginRequired(c, middleware.LoginPath)
		return nil, false
	}
	ac, ok := v.(*authctx.Context)
	if !ok || ac == nil {
		response.LoginRequired(c, middleware.LoginPath)
		return nil, false
	}
	return ac, true
}

// MustGetAccessToken returns the provider access token of the session,
// refreshing it when expired.
func MustGetAccessToken(c *gin.Context) (string, bool) {
	ac, ok := MustGetAuthContext(c)
	if !ok {
		return "", false
	}
	token, err := ac.AccessToken(c.Request.Context())
	if err != nil {
		if errors.Is(err, authctx.ErrNoSession) {
			response.LoginRequired(c, middleware.LoginPath)
			return "", false
		}
		response.Remote(c, 10002, "Không lấy được phiên đăng nhập.", err)
		return "", false
	}
	return token, true
}
