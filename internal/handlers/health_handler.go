package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecometrics/configs"
	"github.com/ecometrics/pkg/db"
	"github.com/ecometrics/pkg/logger"
)

// Version 是对外报告的 API 版本
const Version = "1.0.0"

// HealthHandler 提供存活检查、数据库健康检查与调试配置
type HealthHandler struct {
	db  *gorm.DB
	cfg *configs.Configuration
}

// NewHealthHandler 创建一个新的 HealthHandler 实例
func NewHealthHandler(gormDB *gorm.DB, cfg *configs.Configuration) *HealthHandler {
	return &HealthHandler{db: gormDB, cfg: cfg}
}

// Root godoc
// @Summary 服务存活检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "EcoMetrics API is running",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health godoc
// @Summary 健康检查
// @Description 检查数据库连通性并返回连接池状态。数据库不可用时 database.status 为 disconnected。
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	database := gin.H{}
	stats, err := db.Ping(c.Request.Context(), h.db)
	if err != nil {
		logger.Errorf("Health check - Database connection failed: %v", err)
		database["status"] = "disconnected"
		database["info"] = gin.H{"error": err.Error()}
	} else {
		database["status"] = "connected"
		database["info"] = stats
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"message":   "API is running normally",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

// DebugConfig 返回脱敏后的配置与配置警告，仅在 DEBUG=true 时注册
func (h *HealthHandler) DebugConfig(c *gin.Context) {
	logger.Info("Configuration debug information requested")
	connection := gin.H{"status": "connected"}
	if stats, err := db.Ping(c.Request.Context(), h.db); err != nil {
		connection = gin.H{"status": "disconnected", "error": err.Error()}
	} else {
		connection["pool"] = stats
	}

	warnings := h.cfg.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"configuration":  h.cfg.Info(),
		"configWarnings": warnings,
		"connectionTest": connection,
	})
}
