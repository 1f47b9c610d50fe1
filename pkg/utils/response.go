package utils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 定义了标准的成功响应结构
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"` // 可选的成功消息
	Data    interface{} `json:"data,omitempty"`    // 响应数据
}

// ErrorDetails 描述字段级的失败原因
type ErrorDetails struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// APIErrorResponse 定义了标准的失败响应结构
type APIErrorResponse struct {
	Success   bool          `json:"success" example:"false"`
	Error     string        `json:"error"`
	Message   string        `json:"message"`
	Details   *ErrorDetails `json:"details,omitempty"`
	ErrorID   string        `json:"errorId,omitempty"`
	Timestamp string        `json:"timestamp,omitempty"`
	Path      string        `json:"path,omitempty"`
}

// RespondSuccess 发送一个标准的成功 JSON 响应
func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondAPIError 发送错误响应并中止后续处理
func RespondAPIError(c *gin.Context, status int, errorTitle, message string) {
	c.AbortWithStatusJSON(status, APIErrorResponse{
		Success:   false,
		Error:     errorTitle,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

// RespondValidationFailure 发送业务校验失败。注意 HTTP 状态码仍为 200，由 success:false 表示失败。
func RespondValidationFailure(c *gin.Context, field, code, message string) {
	c.AbortWithStatusJSON(http.StatusOK, APIErrorResponse{
		Success: false,
		Error:   "Validation failed",
		Message: message,
		Details: &ErrorDetails{Field: field, Code: code},
	})
}

// RespondUnauthorizedError 发送未认证错误
func RespondUnauthorizedError(c *gin.Context, message ...string) {
	errMsg := "Invalid token"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	c.Header("WWW-Authenticate", "Bearer")
	RespondAPIError(c, http.StatusUnauthorized, "Unauthorized", errMsg)
}

// RespondForbiddenError 发送权限不足错误
func RespondForbiddenError(c *gin.Context, message string) {
	RespondAPIError(c, http.StatusForbidden, "Forbidden", message)
}

// RespondNotFoundError 发送资源未找到错误
func RespondNotFoundError(c *gin.Context, resourceName string) {
	RespondAPIError(c, http.StatusNotFound, "Not Found", resourceName+" not found")
}

// RespondInternalServerError 发送服务器内部错误。对客户端只暴露通用信息和错误编号。
func RespondInternalServerError(c *gin.Context, message string) {
	now := time.Now().UTC()
	c.AbortWithStatusJSON(http.StatusInternalServerError, APIErrorResponse{
		Success:   false,
		Error:     "Internal Server Error",
		Message:   message,
		ErrorID:   fmt.Sprintf("ERR-%s", now.Format("20060102150405")),
		Timestamp: now.Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}
