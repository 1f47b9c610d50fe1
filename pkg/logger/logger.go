// Package logger 提供各层共用的分级应用日志
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	moduleName = "ecometrics"
	timeFormat = "2006/01/02 15:04:05"
)

var logger *logging.Logger

func init() {
	InitLogger(logging.INFO)
}

// InitLogger 按给定级别（重新）配置输出到 stderr 的日志后端
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(moduleName)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level:.4s} [%{shortfile}] - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, moduleName)
	newLogger.SetBackend(leveled)
	newLogger.ExtraCalldepth = 1
	logger = newLogger
}

// ParseLevel 将 LOG_LEVEL 的取值转换为 go-logging 级别，无法识别时为 INFO
func ParseLevel(name string) logging.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return logging.DEBUG
	case "NOTICE":
		return logging.NOTICE
	case "WARN", "WARNING":
		return logging.WARNING
	case "ERROR":
		return logging.ERROR
	case "CRITICAL":
		return logging.CRITICAL
	default:
		return logging.INFO
	}
}

func Debug(args ...interface{}) {
	logger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(args ...interface{}) {
	logger.Info(args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warning(args ...interface{}) {
	logger.Warning(args...)
}

func Warningf(format string, args ...interface{}) {
	logger.Warningf(format, args...)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// GormWriter 将 GORM 日志接入应用日志，实现 gorm.io/gorm/logger.Writer
type GormWriter struct{}

func (GormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	switch gormLevel(format, args) {
	case logging.ERROR:
		logger.Error(msg)
	case logging.WARNING:
		logger.Warning(msg)
	case logging.INFO:
		logger.Info(msg)
	default:
		logger.Debug(msg)
	}
}

// gormLevel 根据 GORM 的格式串判断消息级别。
// 带两个 %s 前缀的 trace 格式用于慢 SQL 与出错的 SQL，第二个参数为 error 时表示出错。
func gormLevel(format string, args []interface{}) logging.Level {
	switch {
	case strings.Contains(format, "[error]"):
		return logging.ERROR
	case strings.Contains(format, "[warn]"):
		return logging.WARNING
	case strings.Contains(format, "[info]"):
		return logging.INFO
	case strings.HasPrefix(format, "%s %s\n"):
		if len(args) > 1 {
			if _, ok := args[1].(error); ok {
				return logging.ERROR
			}
		}
		return logging.WARNING
	default:
		return logging.DEBUG
	}
}
