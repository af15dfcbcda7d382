package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/service"
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// respondRemote writes a store or function failure. Localized function
// failures map to a status by kind; anything else is passed through as a
// 502 with the raw error in details.
func respondRemote(c *gin.Context, code int, fallback string, err error) {
	var rf *service.RemoteFailure
	if errors.As(err, &rf) {
		switch rf.Kind {
		case pkgerrors.KindUnauthenticated:
			response.Unauthorized(c, 10002, rf.Message)
		case pkgerrors.KindForbidden:
			response.Forbidden(c, 10003, rf.Message)
		case pkgerrors.KindEmailExists:
			response.Error(c, http.StatusConflict, code, rf.Message)
		default:
			response.Remote(c, code, rf.Message, rf.Err)
		}
		return
	}
	response.Remote(c, code, fallback, err)
}
