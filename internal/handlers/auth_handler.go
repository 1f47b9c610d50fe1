package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecometrics/internal/auth"
	"github.com/ecometrics/internal/services"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

// AuthHandler 封装了注册、登录与登出的 HTTP 处理逻辑
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRequest 注册请求体。字段规则由服务层校验，以便返回具体的失败代码。
type RegisterRequest struct {
	Username        string `json:"username" example:"@alice"`
	Password        string `json:"password" example:"secret1"`
	ConfirmPassword string `json:"confirmPassword" example:"secret1"`
}

// RegisterResponse 注册成功后返回的用户信息
type RegisterResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Username string `json:"username" example:"@alice"`
	Password string `json:"password" example:"secret1"`
}

// Register godoc
// @Summary 用户注册
// @Description 用户名需以 @ 开头且不少于3个字符，密码不少于6个字符且两次输入一致。校验失败时返回 success:false。
// @Tags auth
// @Accept  json
// @Produce  json
// @Param payload body RegisterRequest true "注册信息"
// @Success 200 {object} utils.SuccessResponse{data=RegisterResponse} "注册成功"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		respondServiceError(c, err, "Registration failed")
		return
	}

	utils.RespondSuccess(c, RegisterResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, "Registration successful")
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户凭证并返回 JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=services.LoginResult} "登录成功，返回 Token 和用户信息"
// @Failure 401 {object} utils.APIErrorResponse "无效的用户名或密码"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}

	logger.Infof("Login successful for user: %s", result.User.Username)
	utils.RespondSuccess(c, result, "")
}

// Logout godoc
// @Summary 用户登出
// @Description 令牌是无状态的，登出只做确认，由客户端丢弃 Token。
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if username, ok := c.Get(auth.ContextUsernameKey); ok {
		logger.Infof("User logged out: %v", username)
	}
	utils.RespondSuccess(c, nil, "Logout successful")
}
