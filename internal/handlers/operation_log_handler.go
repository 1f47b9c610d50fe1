package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecometrics/internal/services"
	"github.com/ecometrics/pkg/utils"
)

// OperationLogHandler 处理操作日志查询，仅管理员可用
type OperationLogHandler struct {
	service services.OperationLogService
}

// NewOperationLogHandler 创建一个新的 OperationLogHandler 实例
func NewOperationLogHandler(service services.OperationLogService) *OperationLogHandler {
	return &OperationLogHandler{service: service}
}

// ListLogs godoc
// @Summary 查询操作日志
// @Description 按创建时间倒序返回，多个筛选条件同时生效。endDate 包含当天全部日志。
// @Tags Logs
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量 (1-100)" default(20)
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Param userId query int false "操作人ID"
// @Param action query string false "操作类型 (CREATE, UPDATE, DELETE)"
// @Success 200 {object} utils.SuccessResponse{data=services.LogPage} "日志列表与分页信息"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "非管理员"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /logs [get]
// @Security BearerAuth
func (h *OperationLogHandler) ListLogs(c *gin.Context) {
	type logsQuery struct {
		Page   *int   `form:"page"`
		Limit  *int   `form:"limit"`
		UserID *int64 `form:"userId"`
		Action string `form:"action"`
	}
	var q logsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	page, err := h.service.Query(c.Request.Context(), services.LogFilter{
		StartDate: start,
		EndDate:   end,
		UserID:    q.UserID,
		Action:    q.Action,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve operation logs")
		return
	}
	utils.RespondSuccess(c, page, "")
}
