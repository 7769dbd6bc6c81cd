package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/quickshop-api/quickshop/internal/http/response"
	"github.com/quickshop-api/quickshop/internal/repository"
	"github.com/quickshop-api/quickshop/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateProfileRequest 更新资料请求（仅联系信息字段）
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

func authPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	result, err := h.AuthService.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Success(c, authPayload(result))
}

// LoginWithUsername 用户名登录，凭证来自查询参数
func (h *Handler) LoginWithUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	password := c.Query("password")
	if username == "" || password == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	result, err := h.AuthService.LoginWithUsername(c.Request.Context(), username, password)
	if err != nil {
		respondLoginError(c, err)
		return
	}

	response.Success(c, authPayload(result))
}

// LoginWithEmail 邮箱登录，凭证来自查询参数
func (h *Handler) LoginWithEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	password := c.Query("password")
	if email == "" || password == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	result, err := h.AuthService.LoginWithEmail(c.Request.Context(), email, password)
	if err != nil {
		respondLoginError(c, err)
		return
	}

	response.Success(c, authPayload(result))
}

// ResetPassword 重置密码，按邮箱定位账号并校验旧密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	if err := h.AuthService.ResetPassword(c.Request.Context(), req.Email, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			respondPasswordPolicyError(c, err)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}

	response.Success(c, gin.H{"reset": true})
}

// UpdateProfile 更新用户联系信息
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	user, err := h.UserService.UpdateProfile(id, service.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, user)
}

// GetUserDetails 获取用户详情
func (h *Handler) GetUserDetails(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, user)
}

// AllUsers 列出全部用户（管理端）
func (h *Handler) AllUsers(c *gin.Context) {
	page, pageSize := normalizePagination(parseQueryInt(c, "page", 1), parseQueryInt(c, "page_size", 20))

	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}

// DeleteUser 删除用户（管理端），同时清理其购物车与认证缓存
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.UserService.Delete(c.Request.Context(), id); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
