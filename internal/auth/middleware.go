package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

// 存储在 gin.Context 中的键
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
	ContextUserKey     = "user"
)

// ErrUserNotFound 由 UserLookup 在用户不存在时返回
var ErrUserNotFound = errors.New("user not found")

// UserLookup 按ID读取用户，用于确认 Token 对应的用户仍然存在
type UserLookup func(ctx context.Context, id int64) (*models.User, error)

// RequireUser 是一个Gin中间件，用于验证JWT。
// 它从 Authorization 请求头中提取 Bearer Token，校验后加载当前用户并写入上下文。
func RequireUser(tokens *JWTManager, lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondUnauthorizedError(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.RespondUnauthorizedError(c, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := tokens.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Debugf("Token verification failed: %v", err)
			if errors.Is(err, ErrTokenExpired) {
				utils.RespondUnauthorizedError(c, "Token is expired")
			} else {
				utils.RespondUnauthorizedError(c, "Invalid token")
			}
			return
		}

		user, err := lookup(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				logger.Warningf("User not found for ID: %d", claims.UserID)
				utils.RespondUnauthorizedError(c, "User not found")
			} else {
				logger.Errorf("Database error getting current user %d: %v", claims.UserID, err)
				utils.RespondInternalServerError(c, "Database error retrieving user")
			}
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)
		c.Set(ContextRoleKey, user.Role)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin 必须在 RequireUser 之后使用，非管理员返回 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondUnauthorizedError(c, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			utils.RespondForbiddenError(c, "Access denied. Admin only.")
			return
		}
		c.Next()
	}
}

// CurrentUser 返回 RequireUser 写入上下文的用户
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
