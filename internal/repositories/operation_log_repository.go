package repositories

import (
	"context"
	"time"

	"github.com/ecometrics/internal/models"
	"gorm.io/gorm"
)

// OperationLogQuery 描述日志查询条件，各条件之间为 AND 关系
type OperationLogQuery struct {
	From   *time.Time // created_at >= From
	Before *time.Time // created_at < Before
	UserID *int64
	Action models.OperationAction
	Offset int
	Limit  int
}

// OperationLogRepository 定义了操作日志仓库的接口，只提供追加和查询
type OperationLogRepository interface {
	Create(ctx context.Context, log *models.OperationLog) error
	Find(ctx context.Context, q OperationLogQuery) ([]models.OperationLog, int64, error)
}

type gormOperationLogRepository struct {
	db *gorm.DB
}

// NewGormOperationLogRepository 创建一个新的GORM操作日志仓库实例
func NewGormOperationLogRepository(db *gorm.DB) OperationLogRepository {
	return &gormOperationLogRepository{db: db}
}

// Create 追加一条日志记录
func (r *gormOperationLogRepository) Create(ctx context.Context, log *models.OperationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// Find 按条件查询日志，按创建时间倒序
func (r *gormOperationLogRepository) Find(ctx context.Context, q OperationLogQuery) ([]models.OperationLog, int64, error) {
	var logs []models.OperationLog
	var total int64

	queryBuilder := r.db.WithContext(ctx).Model(&models.OperationLog{})
	if q.From != nil {
		queryBuilder = queryBuilder.Where("created_at >= ?", *q.From)
	}
	if q.Before != nil {
		queryBuilder = queryBuilder.Where("created_at < ?", *q.Before)
	}
	if q.UserID != nil {
		queryBuilder = queryBuilder.Where("user_id = ?", *q.UserID)
	}
	if q.Action != "" {
		queryBuilder = queryBuilder.Where("action = ?", q.Action)
	}

	if err := queryBuilder.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := queryBuilder.Preload("User").
		Order("created_at desc").Order("id desc").
		Offset(q.Offset).Limit(q.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
