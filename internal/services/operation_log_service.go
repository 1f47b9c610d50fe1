package services

import (
	"context"
	"time"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
	"github.com/ecometrics/pkg/logger"
)

const (
	DefaultLogPageSize = 20
	MaxLogPageSize     = 100
)

// LogEntry 描述一条待追加的操作日志
type LogEntry struct {
	UserID      int64
	Action      models.OperationAction
	TableName   string
	RecordID    *int64
	OldData     map[string]interface{}
	NewData     map[string]interface{}
	Description string
	IPAddress   string
}

// LogFilter 是日志查询条件；EndDate 包含当天
type LogFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	UserID    *int64
	Action    string
	Page      *int
	Limit     *int
}

// LogPage 是一页日志及分页信息
type LogPage struct {
	Logs       []models.OperationLogResponse `json:"logs"`
	Pagination LogPagination                 `json:"pagination"`
}

// LogPagination 日志分页信息
type LogPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// OperationLogService 定义了操作日志服务的接口
type OperationLogService interface {
	// Record 追加日志。失败只记录到应用日志，不会影响调用方的业务操作。
	Record(ctx context.Context, entry LogEntry)
	Query(ctx context.Context, filter LogFilter) (*LogPage, error)
}

type operationLogService struct {
	repo repositories.OperationLogRepository
}

// NewOperationLogService 创建一个新的 operationLogService 实例
func NewOperationLogService(repo repositories.OperationLogRepository) OperationLogService {
	return &operationLogService{repo: repo}
}

func (s *operationLogService) Record(ctx context.Context, entry LogEntry) {
	log := &models.OperationLog{
		UserID:      entry.UserID,
		Action:      entry.Action,
		TargetTable: entry.TableName,
		RecordID:    entry.RecordID,
	}
	if entry.OldData != nil {
		log.OldData = entry.OldData
	}
	if entry.NewData != nil {
		log.NewData = entry.NewData
	}
	if entry.Description != "" {
		desc := entry.Description
		log.Description = &desc
	}
	if entry.IPAddress != "" {
		ip := entry.IPAddress
		log.IPAddress = &ip
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Errorf("Failed to log %s operation on %s by user %d: %v", entry.Action, entry.TableName, entry.UserID, err)
		return
	}
	logger.Debugf("Operation log created with ID: %d", log.ID)
}

func (s *operationLogService) Query(ctx context.Context, filter LogFilter) (*LogPage, error) {
	page, limit := 1, DefaultLogPageSize
	if filter.Page != nil {
		page = *filter.Page
	}
	if filter.Limit != nil {
		limit = *filter.Limit
	}
	if page < 1 {
		return nil, newValidationError("page", CodeInvalidPagination, "page must be at least 1")
	}
	if limit < 1 || limit > MaxLogPageSize {
		return nil, newValidationError("limit", CodeInvalidPagination, "limit must be between 1 and 100")
	}
	if err := checkDateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	q := repositories.OperationLogQuery{
		From:   filter.StartDate,
		UserID: filter.UserID,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if filter.Action != "" {
		action := models.OperationAction(filter.Action)
		if !action.IsValid() {
			return nil, newValidationError("action", CodeInvalidAction, "action must be one of CREATE, UPDATE, DELETE")
		}
		q.Action = action
	}
	if filter.EndDate != nil {
		before := filter.EndDate.AddDate(0, 0, 1)
		q.Before = &before
	}

	logs, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]models.OperationLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, l.ToResponse())
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &LogPage{
		Logs: items,
		Pagination: LogPagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNext:     int64(page) < totalPages,
			HasPrev:     page > 1,
		},
	}, nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return newValidationError("endDate", CodeInvalidDateRange, "endDate must not be before startDate")
	}
	return nil
}
