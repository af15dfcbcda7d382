package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/authctx"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// Context keys set by the session middleware.
const (
	AuthContextKey = "auth_ctx"
	SessionIDKey   = "session_id"
	UserIDKey      = "user_id"
)

// LoginPath is where unauthorised requests are sent.
const LoginPath = "/login"

// SessionSource resolves a console session id to its auth context.
type SessionSource interface {
	Get(ctx context.Context, sid string) *authctx.Context
}

// SessionLoader attaches the auth context of the session cookie, if any,
// after waiting up to wait for it to finish loading. It never rejects.
func SessionLoader(sessions SessionSource, cookieName string, wait time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ac, sid := loadSession(c, sessions, cookieName, wait); ac != nil {
			c.Set(AuthContextKey, ac)
			c.Set(SessionIDKey, sid)
		}
		c.Next()
	}
}

// AdminGuard admits only sessions whose profile role is admin. While the
// session is still loading it answers 503 with Retry-After instead of
// redirecting; a missing session or a non-admin role gets the login
// redirect.
func AdminGuard(sessions SessionSource, cookieName string, wait time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, sid := loadSession(c, sessions, cookieName, wait)
		if ac == nil {
			response.LoginRequired(c, LoginPath)
			c.Abort()
			return
		}

		state := ac.Snapshot()
		switch authctx.Evaluate(state) {
		case authctx.DecisionWait:
			response.Waiting(c, retryAfter(wait))
			c.Abort()
			return
		case authctx.DecisionRedirect:
			response.LoginRequired(c, LoginPath)
			c.Abort()
			return
		}

		c.Set(AuthContextKey, ac)
		c.Set(SessionIDKey, sid)
		c.Set(UserIDKey, state.User.ID)
		c.Next()
	}
}

// loadSession resolves the cookie's context, waits for it to load and
// re-reads the provider session so every request sees current state.
func loadSession(c *gin.Context, sessions SessionSource, cookieName string, wait time.Duration) (*authctx.Context, string) {
	sid, err := c.Cookie(cookieName)
	if err != nil || sid == "" {
		return nil, ""
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
	defer cancel()
	ac := sessions.Get(ctx, sid)
	if ac == nil {
		return nil, ""
	}

	// timeout leaves the context loading; the guard answers Wait
	if err := ac.WaitReady(ctx); err != nil {
		return ac, sid
	}
	// a provider error keeps the last known state
	_ = ac.Sync(ctx)
	return ac, sid
}

func retryAfter(wait time.Duration) string {
	secs := int(wait.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
