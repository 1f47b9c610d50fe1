package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecometrics/configs"
	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/pkg/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour
)

// InitDB 初始化 GORM 数据库连接并迁移表结构。
// 数据库文件路径来自配置中的 SQLITE_DB_PATH，所在目录不存在时会自动创建。
func InitDB(cfg *configs.Configuration) (*gorm.DB, error) {
	dbPath := cfg.DBPath
	logger.Infof("Using database path: %s", dbPath)

	// 确保数据库文件所在的目录存在
	if !isMemoryDSN(dbPath) {
		dbDir := filepath.Dir(dbPath)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			logger.Infof("Database directory %s does not exist, creating it...", dbDir)
			if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, mkErr)
			}
		}
	}

	gormDB, err := Open(dbPath, cfg.Debug)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gormDB); err != nil {
		CloseDB(gormDB)
		return nil, err
	}
	return gormDB, nil
}

// Open 打开 sqlite 连接并配置连接池。内存数据库只使用单个连接。
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	// 配置 GORM 日志，输出到应用日志
	newLogger := gormlogger.New(
		logger.GormWriter{},
		gormlogger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // 忽略ErrRecordNotFound（记录未找到）错误
			Colorful:                  false,
		},
	)

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dsn, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	if isMemoryDSN(dsn) {
		// 共享缓存的内存库在最后一个连接关闭时消失
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	logger.Infof("Successfully connected to database using GORM: %s", dsn)
	return gormDB, nil
}

// Migrate 自动迁移数据库表结构
func Migrate(gormDB *gorm.DB) error {
	err := gormDB.AutoMigrate(
		&models.User{},
		&models.EcoRecord{},
		&models.OperationLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate database tables: %w", err)
	}
	logger.Info("Database tables migrated successfully.")
	return nil
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB(gormDB *gorm.DB) {
	if gormDB == nil {
		return
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Errorf("Error getting underlying sql.DB for closing: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
		return
	}
	logger.Info("Database connection closed.")
}

// PoolStats 是健康检查中展示的连接池状态
type PoolStats struct {
	OpenConnections int `json:"openConnections"`
	InUse           int `json:"inUse"`
	Idle            int `json:"idle"`
	MaxOpen         int `json:"maxOpenConnections"`
}

// Ping 检查数据库连通性：先 ping，再执行 SELECT 1
func Ping(ctx context.Context, gormDB *gorm.DB) (*PoolStats, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	var one int
	if err := gormDB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if one != 1 {
		return nil, fmt.Errorf("unexpected result from SELECT 1: %d", one)
	}

	stats := sqlDB.Stats()
	return &PoolStats{
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		MaxOpen:         stats.MaxOpenConnections,
	}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
