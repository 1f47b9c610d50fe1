package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
	"github.com/ecometrics/pkg/logger"
	"github.com/ecometrics/pkg/utils"
)

const (
	ecoRecordTable   = "eco_records"
	MaxRecordPageLen = 1000
	SortAsc          = "asc"
	SortDesc         = "desc"
)

// sortColumns 将对外的排序字段映射到数据库列名，不在表中的字段一律拒绝
var sortColumns = map[string]string{
	"date":             "date",
	"powerConsumption": "power_consumption",
	"power":            "power_consumption",
	"drinkingWater":    "drinking_water",
	"irrigationWater":  "irrigation_water",
	"electricityPrice": "electricity_price",
	"price":            "electricity_price",
}

// Actor 标识发起修改的用户及其来源地址，用于填写 created_by/updated_by 和操作日志
type Actor struct {
	UserID    int64
	IPAddress string
}

// ListFilter 是记录列表的查询条件。日期范围两端均包含。
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string
	Page      *int // nil 表示第1页
	Limit     *int // nil 表示返回全部
}

// RecordList 是列表接口返回的数据
type RecordList struct {
	Records    []models.EcoRecordResponse `json:"records"`
	Pagination RecordPagination           `json:"pagination"`
	Summary    RecordSummary              `json:"summary"`
}

// RecordPagination 记录列表分页信息
type RecordPagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit *int  `json:"limit"`
	Pages int64 `json:"pages"`
}

// RecordSummary 汇总信息，DateRange 取自当前页的记录
type RecordSummary struct {
	TotalRecords int64     `json:"totalRecords"`
	DateRange    DateRange `json:"dateRange"`
}

// DateRange 日期区间，无记录时两个字段都省略
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ImportResult 批量导入的统计结果
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// EcoRecordService 定义了水电记录服务的接口
type EcoRecordService interface {
	List(ctx context.Context, filter ListFilter) (*RecordList, error)
	Create(ctx context.Context, input models.EcoRecordInput, actor Actor) (*models.EcoRecord, error)
	Update(ctx context.Context, id int64, payload models.UpdateEcoRecordPayload, actor Actor) (*models.EcoRecord, error)
	Delete(ctx context.Context, id int64, actor Actor) error
	ClearAll(ctx context.Context, confirm bool, actor Actor) (int64, error)
	Import(ctx context.Context, records []models.EcoRecordInput, overwriteExisting bool, actor Actor) (*ImportResult, error)
	Export(ctx context.Context, from, to *time.Time) ([]models.EcoRecord, error)
}

type ecoRecordService struct {
	repo repositories.EcoRecordRepository
	logs OperationLogService
	now  func() time.Time
}

// NewEcoRecordService 创建一个新的 ecoRecordService 实例
func NewEcoRecordService(repo repositories.EcoRecordRepository, logs OperationLogService) EcoRecordService {
	return &ecoRecordService{
		repo: repo,
		logs: logs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List 按条件查询记录，默认按日期倒序
func (s *ecoRecordService) List(ctx context.Context, filter ListFilter) (*RecordList, error) {
	page := 1
	if filter.Page != nil {
		page = *filter.Page
	}
	if page < 1 {
		return nil, newValidationError("page", CodeInvalidPagination, "page must be at least 1")
	}
	limit := 0
	if filter.Limit != nil {
		limit = *filter.Limit
		if limit < 1 || limit > MaxRecordPageLen {
			return nil, newValidationError("limit", CodeInvalidPagination, "limit must be between 1 and 1000")
		}
	}
	if err := checkDateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, newValidationError("sortBy", CodeInvalidSortField, fmt.Sprintf("unsupported sort field: %s", sortBy))
	}
	sortOrder := filter.SortOrder
	if sortOrder == "" {
		sortOrder = SortDesc
	}
	if sortOrder != SortAsc && sortOrder != SortDesc {
		return nil, newValidationError("sortOrder", CodeInvalidSortOrder, "sortOrder must be asc or desc")
	}

	q := repositories.EcoRecordQuery{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		SortColumn: column,
		Descending: sortOrder == SortDesc,
		Limit:      limit,
	}
	if limit > 0 {
		q.Offset = (page - 1) * limit
	}

	records, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Retrieved %d of %d records (sort %s %s)", len(records), total, column, sortOrder)

	pages := int64(1)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}

	result := &RecordList{
		Records: make([]models.EcoRecordResponse, 0, len(records)),
		Pagination: RecordPagination{
			Total: total,
			Page:  page,
			Limit: filter.Limit,
			Pages: pages,
		},
		Summary: RecordSummary{TotalRecords: total},
	}

	var first, last time.Time
	for i, r := range records {
		result.Records = append(result.Records, r.ToResponse())
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	if len(records) > 0 {
		result.Summary.DateRange = DateRange{
			Start: first.Format(models.DateLayout),
			End:   last.Format(models.DateLayout),
		}
	}
	return result, nil
}

// parseRecordInput 校验日期与数值，返回待写入的记录（不含操作人）
func parseRecordInput(input models.EcoRecordInput) (*models.EcoRecord, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, newValidationError("date", CodeInvalidDate, "Invalid date format, expected YYYY-MM-DD")
	}
	amounts := map[string]float64{
		"powerConsumption": input.PowerConsumption,
		"drinkingWater":    input.DrinkingWater,
		"irrigationWater":  input.IrrigationWater,
		"electricityPrice": input.ElectricityPrice,
	}
	for _, field := range []string{"powerConsumption", "drinkingWater", "irrigationWater", "electricityPrice"} {
		if err := checkNonNegative(field, amounts[field]); err != nil {
			return nil, err
		}
	}
	return &models.EcoRecord{
		Date:             date,
		PowerConsumption: models.RoundAmount(input.PowerConsumption),
		DrinkingWater:    models.RoundAmount(input.DrinkingWater),
		IrrigationWater:  models.RoundAmount(input.IrrigationWater),
		ElectricityPrice: models.RoundAmount(input.ElectricityPrice),
	}, nil
}

func checkNonNegative(field string, v float64) error {
	if v < 0 {
		return newValidationError(field, CodeNegativeValue, field+" must not be negative")
	}
	return nil
}

func duplicateDateError() error {
	return newValidationError("date", CodeDuplicateDate, "Date already exists")
}

func (s *ecoRecordService) Create(ctx context.Context, input models.EcoRecordInput, actor Actor) (*models.EcoRecord, error) {
	record, err := parseRecordInput(input)
	if err != nil {
		return nil, err
	}
	record.CreatedBy = actor.UserID

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateDate) {
			logger.Debugf("Duplicate date rejected: %s", record.Date.Format(models.DateLayout))
			return nil, duplicateDateError()
		}
		return nil, err
	}
	logger.Infof("Record created with ID: %d (%s)", record.ID, record.Date.Format(models.DateLayout))

	id := record.ID
	s.logs.Record(ctx, LogEntry{
		UserID:      actor.UserID,
		Action:      models.ActionCreate,
		TableName:   ecoRecordTable,
		RecordID:    &id,
		NewData:     record.Snapshot(),
		Description: fmt.Sprintf("Created water and electricity record (%s)", record.Date.Format(models.DateLayout)),
		IPAddress:   actor.IPAddress,
	})
	return record, nil
}

// Update 只修改提供的字段，updated_by 与 updated_at 总会刷新
func (s *ecoRecordService) Update(ctx context.Context, id int64, payload models.UpdateEcoRecordPayload, actor Actor) (*models.EcoRecord, error) {
	if payload.IsEmpty() {
		return nil, newValidationError("body", CodeNoFieldsToUpdate, "No fields to update")
	}

	changed := map[string]interface{}{}
	updates := map[string]interface{}{}
	fields := []struct {
		name   string
		column string
		value  *float64
	}{
		{"powerConsumption", "power_consumption", payload.PowerConsumption},
		{"drinkingWater", "drinking_water", payload.DrinkingWater},
		{"irrigationWater", "irrigation_water", payload.IrrigationWater},
		{"electricityPrice", "electricity_price", payload.ElectricityPrice},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := checkNonNegative(f.name, *f.value); err != nil {
			return nil, err
		}
		v := models.RoundAmount(*f.value)
		changed[f.name] = v
		updates[f.column] = v
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	oldData := existing.Snapshot()

	updates["updated_by"] = actor.UserID
	updates["updated_at"] = s.now()

	record, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	logger.Infof("Record %d updated by user %d", id, actor.UserID)

	s.logs.Record(ctx, LogEntry{
		UserID:      actor.UserID,
		Action:      models.ActionUpdate,
		TableName:   ecoRecordTable,
		RecordID:    &id,
		OldData:     oldData,
		NewData:     changed,
		Description: fmt.Sprintf("Updated water and electricity record (%s)", record.Date.Format(models.DateLayout)),
		IPAddress:   actor.IPAddress,
	})
	return record, nil
}

func (s *ecoRecordService) Delete(ctx context.Context, id int64, actor Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	oldData := existing.Snapshot()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	logger.Infof("Record %d deleted by user %d", id, actor.UserID)

	s.logs.Record(ctx, LogEntry{
		UserID:      actor.UserID,
		Action:      models.ActionDelete,
		TableName:   ecoRecordTable,
		RecordID:    &id,
		OldData:     oldData,
		Description: fmt.Sprintf("Deleted water and electricity record (%s)", existing.Date.Format(models.DateLayout)),
		IPAddress:   actor.IPAddress,
	})
	return nil
}

// ClearAll 删除全部记录，confirm 必须为 true
func (s *ecoRecordService) ClearAll(ctx context.Context, confirm bool, actor Actor) (int64, error) {
	if !confirm {
		return 0, ErrConfirmationRequired
	}

	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logger.Warningf("User %d cleared all records (%d deleted)", actor.UserID, count)

	s.logs.Record(ctx, LogEntry{
		UserID:      actor.UserID,
		Action:      models.ActionDelete,
		TableName:   ecoRecordTable,
		Description: fmt.Sprintf("Cleared all data (%d records)", count),
		IPAddress:   actor.IPAddress,
	})
	return count, nil
}

// Import 逐条导入记录，单条失败只记录错误并继续
func (s *ecoRecordService) Import(ctx context.Context, records []models.EcoRecordInput, overwriteExisting bool, actor Actor) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for _, input := range records {
		outcome, err := s.importOne(ctx, input, overwriteExisting, actor)
		if err != nil {
			msg := err.Error()
			if ve, ok := AsValidationError(err); ok {
				msg = ve.Message
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Error importing record for %s: %s", input.Date, msg))
			continue
		}
		switch outcome {
		case importInserted:
			result.Imported++
		case importOverwritten:
			result.Updated++
		case importSkipped:
			result.Skipped++
		}
	}
	logger.Infof("Import finished: imported %d, updated %d, skipped %d, errors %d",
		result.Imported, result.Updated, result.Skipped, len(result.Errors))

	s.logs.Record(ctx, LogEntry{
		UserID:      actor.UserID,
		Action:      models.ActionCreate,
		TableName:   ecoRecordTable,
		Description: fmt.Sprintf("Batch imported data (imported: %d, updated: %d, skipped: %d)", result.Imported, result.Updated, result.Skipped),
		IPAddress:   actor.IPAddress,
	})
	return result, nil
}

type importOutcome int

const (
	importInserted importOutcome = iota
	importOverwritten
	importSkipped
)

func (s *ecoRecordService) importOne(ctx context.Context, input models.EcoRecordInput, overwrite bool, actor Actor) (importOutcome, error) {
	record, err := parseRecordInput(input)
	if err != nil {
		return 0, err
	}

	existing, err := s.repo.GetByDate(ctx, record.Date)
	switch {
	case err == nil:
		if !overwrite {
			return importSkipped, nil
		}
		_, err := s.repo.Update(ctx, existing.ID, map[string]interface{}{
			"power_consumption": record.PowerConsumption,
			"drinking_water":    record.DrinkingWater,
			"irrigation_water":  record.IrrigationWater,
			"electricity_price": record.ElectricityPrice,
			"updated_by":        actor.UserID,
			"updated_at":        s.now(),
		})
		if err != nil {
			return 0, err
		}
		return importOverwritten, nil
	case errors.Is(err, repositories.ErrRecordNotFound):
		record.CreatedBy = actor.UserID
		if err := s.repo.Create(ctx, record); err != nil {
			if errors.Is(err, repositories.ErrDuplicateDate) {
				return 0, duplicateDateError()
			}
			return 0, err
		}
		return importInserted, nil
	default:
		return 0, err
	}
}

// Export 返回日期范围内按日期升序排列的全部记录
func (s *ecoRecordService) Export(ctx context.Context, from, to *time.Time) ([]models.EcoRecord, error) {
	if err := checkDateRange(from, to); err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx, repositories.EcoRecordQuery{
		StartDate:  from,
		EndDate:    to,
		SortColumn: "date",
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("Exporting %d records", len(records))
	return records, nil
}
