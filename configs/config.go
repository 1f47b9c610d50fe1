package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecometrics/pkg/logger"
)

// Configuration defines the structure for application settings.
// It is built once by LoadConfig in main and handed to every component that needs it.
type Configuration struct {
	Environment string
	Debug       bool
	LogLevel    string
	ServerPort  string
	DBPath      string
	JWTSecret   string
	JWTExpiry   time.Duration
	FrontendURL string
}

const (
	defaultEnvironment = "development"
	envEnvironmentKey  = "ENVIRONMENT"
	envDebugKey        = "DEBUG"
	defaultLogLevel    = "INFO"
	envLogLevelKey     = "LOG_LEVEL"
	defaultServerPort  = "3000"        // Default server port.
	envServerPortKey   = "SERVER_PORT" // Environment variable name for the server port.
	defaultDBPath      = "data/ecometrics.db"
	envDBPathKey       = "SQLITE_DB_PATH"
	// DefaultJWTSecret is the development fallback; Warnings flags it.
	DefaultJWTSecret      = "your-super-secret-jwt-key-change-this-in-production"
	envJWTSecretKey       = "JWT_SECRET_KEY" // Environment variable name for the JWT secret.
	defaultJWTExpireHours = 24
	envJWTExpireHoursKey  = "JWT_EXPIRE_HOURS"
	defaultFrontendURL    = "http://localhost:5173"
	envFrontendURLKey     = "FRONTEND_URL"
)

// LoadConfig loads configuration from a .env file (if any), environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() *Configuration {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warningf("无法加载 .env 文件: %v", err)
	}

	cfg := &Configuration{
		Environment: getEnv(envEnvironmentKey, defaultEnvironment),
		Debug:       strings.EqualFold(os.Getenv(envDebugKey), "true"),
		LogLevel:    strings.ToUpper(getEnv(envLogLevelKey, defaultLogLevel)),
		ServerPort:  getEnv(envServerPortKey, defaultServerPort),
		DBPath:      getEnv(envDBPathKey, defaultDBPath),
		JWTSecret:   os.Getenv(envJWTSecretKey),
		FrontendURL: getEnv(envFrontendURLKey, defaultFrontendURL),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
		logger.Warningf("%s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
	}

	hours := defaultJWTExpireHours
	if raw := os.Getenv(envJWTExpireHoursKey); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.Warningf("%s=%q 无效，使用默认值 %d 小时", envJWTExpireHoursKey, raw, defaultJWTExpireHours)
		} else {
			hours = parsed
		}
	}
	cfg.JWTExpiry = time.Duration(hours) * time.Hour

	logger.Info("应用配置已加载。")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	logger.Debugf("%s 环境变量未设置，使用默认值 %s", key, fallback)
	return fallback
}

// IsProduction reports whether the service runs with ENVIRONMENT=production.
func (c *Configuration) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Warnings returns human-readable problems with the loaded configuration.
func (c *Configuration) Warnings() []string {
	var warnings []string
	if c.JWTSecret == DefaultJWTSecret {
		warnings = append(warnings, "JWT_SECRET_KEY is using default value - change this in production")
	}
	if c.DBPath == "" {
		warnings = append(warnings, "SQLITE_DB_PATH is empty")
	}
	if c.IsProduction() {
		if c.Debug {
			warnings = append(warnings, "DEBUG is enabled in production environment")
		}
		if c.LogLevel == "DEBUG" {
			warnings = append(warnings, "LOG_LEVEL is set to DEBUG in production environment")
		}
	}
	return warnings
}

// Info returns the configuration with secrets masked, for the debug endpoint.
func (c *Configuration) Info() map[string]interface{} {
	return map[string]interface{}{
		"environment": c.Environment,
		"debug":       c.Debug,
		"logLevel":    c.LogLevel,
		"database": map[string]interface{}{
			"driver": "sqlite",
			"path":   c.DBPath,
		},
		"jwt": map[string]interface{}{
			"algorithm":   "HS256",
			"expireHours": int(c.JWTExpiry / time.Hour),
			"secretSet":   c.JWTSecret != "" && c.JWTSecret != DefaultJWTSecret,
		},
		"application": map[string]interface{}{
			"frontendUrl": c.FrontendURL,
			"port":        c.ServerPort,
		},
	}
}
