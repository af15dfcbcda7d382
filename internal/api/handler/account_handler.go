package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// AccountHandler bulk account creation and the hand-out view.
type AccountHandler struct {
	accountSvc service.AccountService
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// BulkCreate creates accounts for a class's pending imported roster.
// POST /api/v1/admin/accounts/bulk
func (h *AccountHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}
	token, ok := MustGetAccessToken(c)
	if !ok {
		return
	}

	result, err := h.accountSvc.BulkCreateFromClass(c.Request.Context(), token, &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OKMessage(c, result.Message, result)
}

// Distribution GET /api/v1/admin/accounts/distribution?class=&q=
func (h *AccountHandler) Distribution(c *gin.Context) {
	var req dto.DistributionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}

	result, err := h.accountSvc.Distribution(c.Request.Context(), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *AccountHandler) handleAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBulkClassRequired),
		errors.Is(err, service.ErrBulkDomainRequired),
		errors.Is(err, service.ErrBulkDomainHasAt):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrSheetNotConfigured):
		response.NotFound(c, 16002, err.Error())
	default:
		respondRemote(c, 16001, "Không thể tạo tài khoản hàng loạt.", err)
	}
}
