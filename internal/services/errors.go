package services

import (
	"errors"
	"fmt"
)

// 服务层错误
var (
	ErrInvalidCredentials   = errors.New("无效的用户名或密码")
	ErrRecordNotFound       = errors.New("记录未找到")
	ErrConfirmationRequired = errors.New("必须确认后才能清空全部数据")
)

// 校验失败代码
const (
	CodeDuplicateDate       = "DUPLICATE_DATE"
	CodeDuplicateUsername   = "DUPLICATE_USERNAME"
	CodeInvalidPrefix       = "INVALID_USERNAME_PREFIX"
	CodeUsernameTooShort    = "USERNAME_TOO_SHORT"
	CodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	CodePasswordTooLong     = "PASSWORD_TOO_LONG"
	CodePasswordMismatch    = "PASSWORD_MISMATCH"
	CodeInvalidDate         = "INVALID_DATE"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeNegativeValue       = "NEGATIVE_VALUE"
	CodeInvalidSortField    = "INVALID_SORT_FIELD"
	CodeInvalidSortOrder    = "INVALID_SORT_ORDER"
	CodeInvalidPagination   = "INVALID_PAGINATION"
	CodeInvalidAction       = "INVALID_ACTION"
	CodeNoFieldsToUpdate    = "NO_FIELDS_TO_UPDATE"
	CodeConfirmationMissing = "CONFIRMATION_REQUIRED"
	CodeInvalidRequest      = "INVALID_REQUEST"
)

// ValidationError 表示一个字段级的业务校验失败。
// 处理器会将其渲染为 success:false 的 200 响应。
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func newValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// AsValidationError 从错误链中取出 ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
