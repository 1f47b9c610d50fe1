package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，重用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrDuplicateDate 表示该日期的记录已存在
var ErrDuplicateDate = errors.New("该日期的记录已存在")

// ErrUsernameExists 表示用户名已存在
var ErrUsernameExists = errors.New("用户名已存在")

// isUniqueViolation 判断是否为唯一约束冲突。
// 优先使用 gorm 的 TranslateError 结果，再退回到匹配 SQLite 的错误文本。
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique constraint") && !strings.Contains(msg, "duplicate key") {
		return false
	}
	return column == "" || strings.Contains(msg, strings.ToLower(column))
}
