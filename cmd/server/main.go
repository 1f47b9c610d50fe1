package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ecometrics/configs"
	"github.com/ecometrics/internal/routes"
	"github.com/ecometrics/pkg/db"
	"github.com/ecometrics/pkg/logger"
)

// @title EcoMetrics API
// @version 1.0.0
// @description Daily water and electricity records with derived metrics, import/export and an admin operation log.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := configs.LoadConfig()

	level := cfg.LogLevel
	if cfg.Debug {
		level = "DEBUG"
	}
	logger.InitLogger(logger.ParseLevel(level))
	for _, warning := range cfg.Warnings() {
		logger.Warning(warning)
	}

	if cfg.IsProduction() && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库连接
	gormDB, err := db.InitDB(cfg)
	if err != nil {
		logger.Errorf("Failed to initialize database: %v", err)
		return
	}
	defer db.CloseDB(gormDB) // 确保在 main 函数退出时关闭数据库连接

	router := routes.NewRouter(cfg, gormDB)

	logger.Infof("Server starting on port %s (environment: %s)...", cfg.ServerPort, cfg.Environment)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Errorf("Failed to run server: %v", err)
	}
}
