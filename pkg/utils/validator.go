package utils

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalidDateFormat = errors.New("日期格式无效，请使用 YYYY-MM-DD")

// ParseDate 解析日期字符串，支持多种常见格式。结果为 UTC 零点。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	for _, layout := range dateLayouts {
		parsedDate, err := time.Parse(layout, normalizedDateStr)
		if err == nil {
			return parsedDate, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// ParseOptionalDate 解析可选日期参数，空字符串返回 nil
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	d, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ClientIP 返回请求方地址，优先取 X-Forwarded-For 的第一跳
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
