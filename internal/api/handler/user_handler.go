package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/dto"
	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// UserHandler user listing, deactivation and creation.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers GET /api/v1/admin/users?role=
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, service.ErrUserRoleInvalid.Error())
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		respondRemote(c, 15001, "Lỗi tải danh sách người dùng", err)
		return
	}
	response.OKList(c, users, len(users))
}

// CheckCode GET /api/v1/admin/users/check-code?code=
func (h *UserHandler) CheckCode(c *gin.Context) {
	result, err := h.userSvc.CheckCode(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateUser creates one account through the admin_users function.
// POST /api/v1/admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Dữ liệu không hợp lệ.")
		return
	}
	token, ok := MustGetAccessToken(c)
	if !ok {
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), token, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Created(c, "Tạo tài khoản thành công.", result)
}

// DisableUser soft-deletes a profile.
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) DisableUser(c *gin.Context) {
	if err := h.userSvc.Disable(c.Request.Context(), c.Param("id")); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKMessage(c, "Đã vô hiệu hoá tài khoản.", nil)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserEmailInvalid),
		errors.Is(err, service.ErrUserPasswordShort),
		errors.Is(err, service.ErrUserNameRequired),
		errors.Is(err, service.ErrUserRoleInvalid),
		errors.Is(err, service.ErrUserCodeRequired):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrUserCodeTaken):
		response.Error(c, http.StatusConflict, 15002, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15003, err.Error())
	case errors.Is(err, service.ErrUserNoID):
		response.Error(c, http.StatusBadGateway, 15004, err.Error())
	default:
		respondRemote(c, 15001, "Lỗi thao tác với người dùng", err)
	}
}
