package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/truongminh05/VCI-Web/pkg/supabase"
)

const requestIDKey = "request_id"

const requestIDMaxLen = 64

// RequestID accepts a client X-Request-ID made of safe characters, or mints
// a uuid. The id is echoed back, logged, and forwarded on backend calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(supabase.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}

// validRequestID allows [A-Za-z0-9._:-], so a header cannot break log lines.
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		b := rid[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '-', b == '_', b == '.', b == ':':
		default:
			return false
		}
	}
	return true
}
