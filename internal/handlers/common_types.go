package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ecometrics/internal/auth"
	"github.com/ecometrics/internal/services"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

// respondBindError 把请求绑定失败当作一次校验失败返回
func respondBindError(c *gin.Context, err error) {
	logger.Debugf("Request binding failed on %s: %v", c.Request.URL.Path, err)
	utils.RespondValidationFailure(c, "body", services.CodeInvalidRequest, "Invalid request: "+err.Error())
}

// respondServiceError 把服务层错误映射为统一的响应格式
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	if ve, ok := services.AsValidationError(err); ok {
		utils.RespondValidationFailure(c, ve.Field, ve.Code, ve.Message)
		return
	}
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		utils.RespondNotFoundError(c, "Record")
	case errors.Is(err, services.ErrConfirmationRequired):
		utils.RespondValidationFailure(c, "confirm", services.CodeConfirmationMissing, "Confirmation required to clear all data")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondUnauthorizedError(c, "Invalid credentials")
	default:
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondInternalServerError(c, fallbackMessage)
	}
}

// actorFrom 取出当前登录用户与来源 IP；只能在 RequireUser 之后调用
func actorFrom(c *gin.Context) (services.Actor, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		utils.RespondUnauthorizedError(c, "Authentication required")
		return services.Actor{}, false
	}
	return services.Actor{UserID: user.ID, IPAddress: utils.ClientIP(c)}, true
}
