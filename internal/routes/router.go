package routes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ecometrics/configs"
	_ "github.com/ecometrics/docs" // swagger 文档
	"github.com/ecometrics/internal/auth"
	"github.com/ecometrics/internal/handlers"
	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
	"github.com/ecometrics/internal/services"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

// Handlers 汇总所有路由需要的处理器与中间件
type Handlers struct {
	Auth        *handlers.AuthHandler
	Records     *handlers.EcoRecordHandler
	Logs        *handlers.OperationLogHandler
	Health      *handlers.HealthHandler
	RequireUser gin.HandlerFunc
}

// NewHandlers 按依赖顺序组装仓库、服务与处理器
func NewHandlers(cfg *configs.Configuration, gormDB *gorm.DB) *Handlers {
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	userRepo := repositories.NewGormUserRepository(gormDB)
	recordRepo := repositories.NewGormEcoRecordRepository(gormDB)
	logRepo := repositories.NewGormOperationLogRepository(gormDB)

	authService := services.NewAuthService(userRepo, tokens)
	logService := services.NewOperationLogService(logRepo)
	recordService := services.NewEcoRecordService(recordRepo, logService)

	return &Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Records:     handlers.NewEcoRecordHandler(recordService),
		Logs:        handlers.NewOperationLogHandler(logService),
		Health:      handlers.NewHealthHandler(gormDB, cfg),
		RequireUser: auth.RequireUser(tokens, userLookup(userRepo)),
	}
}

// userLookup 把仓库的未找到错误转换为中间件能识别的 ErrUserNotFound
func userLookup(users repositories.UserRepository) auth.UserLookup {
	return func(ctx context.Context, id int64) (*models.User, error) {
		user, err := users.GetByID(ctx, id)
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return user, err
	}
}

// NewRouter 创建 gin 引擎，挂载全局中间件和全部路由
func NewRouter(cfg *configs.Configuration, gormDB *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), recovery())
	router.Use(cors.New(corsConfig(cfg.FrontendURL)))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/swagger/"})))

	SetupRoutes(router, cfg, NewHandlers(cfg, gormDB))
	return router
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, cfg *configs.Configuration, h *Handlers) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Health)
	if cfg.Debug {
		router.GET("/debug/config", h.Health.DebugConfig)
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	SetupAuthRoutes(api, h)
	SetupDataRoutes(api, h)
	SetupLogRoutes(api, h)
}

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(api *gin.RouterGroup, h *Handlers) {
	publicAuthGroup := api.Group("/auth")
	{
		publicAuthGroup.POST("/register", h.Auth.Register)
		publicAuthGroup.POST("/login", h.Auth.Login)
	}

	protectedAuthGroup := api.Group("/auth")
	protectedAuthGroup.Use(h.RequireUser)
	{
		protectedAuthGroup.POST("/logout", h.Auth.Logout)
	}
}

// SetupDataRoutes 设置水电记录路由，全部需要登录
func SetupDataRoutes(api *gin.RouterGroup, h *Handlers) {
	data := api.Group("/data")
	data.Use(h.RequireUser)
	{
		data.GET("", h.Records.ListRecords)
		data.POST("", h.Records.CreateRecord)
		data.DELETE("", h.Records.ClearAllRecords)
		data.POST("/import", h.Records.ImportRecords)
		data.GET("/export", h.Records.ExportRecords)
		data.PUT("/:id", h.Records.UpdateRecord)
		data.DELETE("/:id", h.Records.DeleteRecord)
	}
}

// SetupLogRoutes 设置操作日志路由，仅管理员可访问
func SetupLogRoutes(api *gin.RouterGroup, h *Handlers) {
	logs := api.Group("/logs")
	logs.Use(h.RequireUser, auth.RequireAdmin())
	{
		logs.GET("", h.Logs.ListLogs)
	}
}

func corsConfig(frontendURL string) cors.Config {
	origins := []string{}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.MaxAge = 12 * time.Hour
	for _, origin := range origins {
		if origin == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = origins
	config.AllowCredentials = true
	return config
}

// requestLogger 请求日志中间件，输出到应用日志
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s %d %s - %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// recovery 恢复中间件，panic 统一返回 500
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("Panic recovered on %s %s: %s", c.Request.Method, c.Request.URL.Path, fmt.Sprint(recovered))
		utils.RespondInternalServerError(c, "An unexpected error occurred")
	})
}
