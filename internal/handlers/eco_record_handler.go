package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/services"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

const (
	exportFormatJSON = "json"
	exportFormatCSV  = "csv"
)

var csvHeader = []string{
	"Date", "Power Consumption (kWh)", "Drinking Water (L)",
	"Irrigation Water (L)", "Electricity Price (KZT/kWh)",
	"Efficiency", "Daily Cost (KZT)", "Created By", "Updated By",
}

// EcoRecordHandler 封装了水电记录相关的 HTTP 处理逻辑
type EcoRecordHandler struct {
	service services.EcoRecordService
}

// NewEcoRecordHandler 创建一个新的 EcoRecordHandler 实例
func NewEcoRecordHandler(service services.EcoRecordService) *EcoRecordHandler {
	return &EcoRecordHandler{service: service}
}

// ClearAllPayload 清空数据的确认请求体
type ClearAllPayload struct {
	Confirm bool `json:"confirm"`
}

// ClearAllResult 清空数据的结果
type ClearAllResult struct {
	DeletedCount int64  `json:"deletedCount"`
	Warning      string `json:"warning"`
}

// ImportPayload 批量导入请求体
type ImportPayload struct {
	Records           []models.EcoRecordInput `json:"records"`
	OverwriteExisting bool                    `json:"overwriteExisting"`
}

// ExportMetadata JSON 导出文件的元信息
type ExportMetadata struct {
	ExportDate   time.Time `json:"exportDate"`
	TotalRecords int       `json:"totalRecords"`
	Format       string    `json:"format"`
}

// ExportDocument JSON 导出的数据结构
type ExportDocument struct {
	Records  []models.EcoRecordResponse `json:"records"`
	Metadata ExportMetadata             `json:"metadata"`
}

// parseDateRange 解析 startDate/endDate 查询参数；失败时已写入响应
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	start, err := utils.ParseOptionalDate(c.Query("startDate"))
	if err != nil {
		utils.RespondValidationFailure(c, "startDate", services.CodeInvalidDate, "Invalid startDate, expected YYYY-MM-DD")
		return nil, nil, false
	}
	end, err := utils.ParseOptionalDate(c.Query("endDate"))
	if err != nil {
		utils.RespondValidationFailure(c, "endDate", services.CodeInvalidDate, "Invalid endDate, expected YYYY-MM-DD")
		return nil, nil, false
	}
	return start, end, true
}

func parseRecordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondValidationFailure(c, "id", services.CodeInvalidRequest, "Invalid record ID")
		return 0, false
	}
	return id, true
}

// ListRecords godoc
// @Summary 获取水电记录列表
// @Description 支持日期范围筛选、排序与分页。limit 省略时返回全部记录。
// @Tags Data
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量 (1-1000)"
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Param sortBy query string false "排序字段 (date, powerConsumption, drinkingWater, irrigationWater, electricityPrice)" default(date)
// @Param sortOrder query string false "排序顺序 ('asc'或'desc')" default(desc)
// @Success 200 {object} utils.SuccessResponse{data=services.RecordList} "记录列表、分页与汇总信息"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data [get]
// @Security BearerAuth
func (h *EcoRecordHandler) ListRecords(c *gin.Context) {
	type listQuery struct {
		Page      *int   `form:"page"`
		Limit     *int   `form:"limit"`
		SortBy    string `form:"sortBy"`
		SortOrder string `form:"sortOrder"`
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), services.ListFilter{
		StartDate: start,
		EndDate:   end,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve data records")
		return
	}
	utils.RespondSuccess(c, list, "")
}

// CreateRecord godoc
// @Summary 新增一条水电记录
// @Description 每个日期最多一条记录，重复日期返回 DUPLICATE_DATE 校验失败。
// @Tags Data
// @Accept json
// @Produce json
// @Param record body models.EcoRecordInput true "记录数据"
// @Success 200 {object} utils.SuccessResponse{data=models.EcoRecordResponse} "创建成功的记录"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data [post]
// @Security BearerAuth
func (h *EcoRecordHandler) CreateRecord(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var input models.EcoRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.service.Create(c.Request.Context(), input, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create data record")
		return
	}
	utils.RespondSuccess(c, record.ToResponse(), "Data record created successfully")
}

// UpdateRecord godoc
// @Summary 修改水电记录
// @Description 只修改请求体中提供的字段，日期不可修改。
// @Tags Data
// @Accept json
// @Produce json
// @Param id path int true "记录ID"
// @Param updates body models.UpdateEcoRecordPayload true "需要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.EcoRecordResponse} "更新后的记录"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "记录未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data/{id} [put]
// @Security BearerAuth
func (h *EcoRecordHandler) UpdateRecord(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseRecordID(c)
	if !ok {
		return
	}
	var payload models.UpdateEcoRecordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, payload, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update data record")
		return
	}
	utils.RespondSuccess(c, record.ToResponse(), "Data record updated successfully")
}

// DeleteRecord godoc
// @Summary 删除水电记录
// @Tags Data
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "记录未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data/{id} [delete]
// @Security BearerAuth
func (h *EcoRecordHandler) DeleteRecord(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		respondServiceError(c, err, "Failed to delete data record")
		return
	}
	utils.RespondSuccess(c, nil, "Data record deleted successfully")
}

// ClearAllRecords godoc
// @Summary 清空全部水电记录
// @Description 需要请求体 {"confirm": true} 或查询参数 confirm=true。
// @Tags Data
// @Accept json
// @Produce json
// @Param confirm query bool false "确认清空"
// @Param payload body ClearAllPayload false "确认清空"
// @Success 200 {object} utils.SuccessResponse{data=ClearAllResult} "删除数量"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data [delete]
// @Security BearerAuth
func (h *EcoRecordHandler) ClearAllRecords(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var payload ClearAllPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}
	confirm := payload.Confirm
	if raw := c.Query("confirm"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil && v {
			confirm = true
		}
	}

	count, err := h.service.ClearAll(c.Request.Context(), confirm, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to clear all data")
		return
	}
	utils.RespondSuccess(c, ClearAllResult{
		DeletedCount: count,
		Warning:      "All system data has been permanently deleted",
	}, "All data records deleted successfully")
}

// ImportRecords godoc
// @Summary 批量导入水电记录
// @Description 已存在的日期根据 overwriteExisting 覆盖或跳过；单条失败不会中断导入。
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body ImportPayload true "导入数据"
// @Success 200 {object} utils.SuccessResponse{data=services.ImportResult} "导入统计"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data/import [post]
// @Security BearerAuth
func (h *EcoRecordHandler) ImportRecords(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var payload ImportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Import(c.Request.Context(), payload.Records, payload.OverwriteExisting, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to import data")
		return
	}
	utils.RespondSuccess(c, result, "Data imported successfully")
}

// ExportRecords godoc
// @Summary 导出水电记录
// @Description 按日期升序导出为 JSON 或 CSV。CSV 可通过 bom=true 添加 UTF-8 BOM。
// @Tags Data
// @Produce json
// @Produce text/csv
// @Param format query string true "导出格式 ('json'或'csv')"
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Param filename query string false "CSV 文件名"
// @Param bom query bool false "CSV 是否添加 UTF-8 BOM"
// @Success 200 {object} utils.SuccessResponse{data=ExportDocument} "JSON 导出"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /data/export [get]
// @Security BearerAuth
func (h *EcoRecordHandler) ExportRecords(c *gin.Context) {
	format := strings.ToLower(c.Query("format"))
	if format != exportFormatJSON && format != exportFormatCSV {
		utils.RespondValidationFailure(c, "format", services.CodeInvalidRequest, "format must be json or csv")
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	records, err := h.service.Export(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to export data")
		return
	}

	if format == exportFormatJSON {
		h.writeJSONExport(c, records)
		return
	}
	withBOM, _ := strconv.ParseBool(c.Query("bom"))
	h.writeCSVExport(c, records, exportFilename(c.Query("filename"), time.Now()), withBOM)
}

func (h *EcoRecordHandler) writeJSONExport(c *gin.Context, records []models.EcoRecord) {
	doc := ExportDocument{
		Records: make([]models.EcoRecordResponse, 0, len(records)),
		Metadata: ExportMetadata{
			ExportDate:   time.Now().UTC(),
			TotalRecords: len(records),
			Format:       exportFormatJSON,
		},
	}
	for _, r := range records {
		doc.Records = append(doc.Records, r.ToResponse())
	}

	body, err := json.Marshal(utils.SuccessResponse{Success: true, Data: doc})
	if err != nil {
		logger.Errorf("Failed to encode JSON export: %v", err)
		utils.RespondInternalServerError(c, "Failed to export data")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *EcoRecordHandler) writeCSVExport(c *gin.Context, records []models.EcoRecord, filename string, withBOM bool) {
	body, err := renderCSV(records, withBOM)
	if err != nil {
		logger.Errorf("Failed to encode CSV export: %v", err)
		utils.RespondInternalServerError(c, "Failed to export data")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// renderCSV 生成 CSV 内容，可选在开头写入 UTF-8 BOM
func renderCSV(records []models.EcoRecord, withBOM bool) ([]byte, error) {
	var buf bytes.Buffer
	var out io.Writer = &buf
	var bomWriter *transform.Writer
	if withBOM {
		bomWriter = transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())
		out = bomWriter
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format(models.DateLayout),
			formatAmount(r.PowerConsumption),
			formatAmount(r.DrinkingWater),
			formatAmount(r.IrrigationWater),
			formatAmount(r.ElectricityPrice),
			formatAmount(r.Efficiency()),
			formatAmount(r.DailyCost()),
			usernameOf(r.Creator),
			usernameOf(r.Updater),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if bomWriter != nil {
		if err := bomWriter.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func usernameOf(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

// exportFilename 返回 CSV 文件名，缺少扩展名时补上 .csv
func exportFilename(requested string, now time.Time) string {
	name := strings.TrimSpace(requested)
	name = strings.NewReplacer("/", "_", "\\", "_", "\"", "", ";", "_").Replace(name)
	if name == "" {
		return fmt.Sprintf("ecometrics_export_%s.csv", now.Format("20060102_150405"))
	}
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	return name
}
