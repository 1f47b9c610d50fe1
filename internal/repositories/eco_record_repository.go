package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ecometrics/internal/models"
	"gorm.io/gorm"
)

// EcoRecordQuery 描述列表查询条件。SortColumn 必须是已通过白名单映射的列名。
type EcoRecordQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	SortColumn string
	Descending bool
	Offset     int
	Limit      int // 0 表示不分页
}

// EcoRecordRepository 定义了水电记录数据仓库的接口
type EcoRecordRepository interface {
	Create(ctx context.Context, record *models.EcoRecord) error
	GetByID(ctx context.Context, id int64) (*models.EcoRecord, error)
	GetByDate(ctx context.Context, date time.Time) (*models.EcoRecord, error)
	List(ctx context.Context, q EcoRecordQuery) ([]models.EcoRecord, int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.EcoRecord, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type gormEcoRecordRepository struct {
	db *gorm.DB
}

// NewGormEcoRecordRepository 创建一个新的 gormEcoRecordRepository 实例
func NewGormEcoRecordRepository(db *gorm.DB) EcoRecordRepository {
	return &gormEcoRecordRepository{db: db}
}

func (r *gormEcoRecordRepository) withUsers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Creator").Preload("Updater")
}

// Create 在数据库中创建一条记录；同日期已存在时返回 ErrDuplicateDate
func (r *gormEcoRecordRepository) Create(ctx context.Context, record *models.EcoRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EcoRecord
		if err := tx.Where("date = ?", record.Date).First(&existing).Error; err == nil {
			return ErrDuplicateDate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(record).Error; err != nil {
			if isUniqueViolation(err, "eco_records.date") {
				return ErrDuplicateDate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, record)
}

func (r *gormEcoRecordRepository) reload(ctx context.Context, record *models.EcoRecord) error {
	return r.withUsers(ctx).First(record, record.ID).Error
}

func (r *gormEcoRecordRepository) GetByID(ctx context.Context, id int64) (*models.EcoRecord, error) {
	var record models.EcoRecord
	if err := r.withUsers(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gormEcoRecordRepository) GetByDate(ctx context.Context, date time.Time) (*models.EcoRecord, error) {
	var record models.EcoRecord
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List 按日期范围筛选、排序并分页
func (r *gormEcoRecordRepository) List(ctx context.Context, q EcoRecordQuery) ([]models.EcoRecord, int64, error) {
	var records []models.EcoRecord
	var total int64

	queryBuilder := r.db.WithContext(ctx).Model(&models.EcoRecord{})
	if q.StartDate != nil {
		queryBuilder = queryBuilder.Where("date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		queryBuilder = queryBuilder.Where("date <= ?", *q.EndDate)
	}

	if err := queryBuilder.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn := q.SortColumn
	if sortColumn == "" {
		sortColumn = "date"
	}
	order := sortColumn + " asc"
	if q.Descending {
		order = sortColumn + " desc"
	}
	// id 作为次级排序，保证分页稳定
	queryBuilder = queryBuilder.Preload("Creator").Preload("Updater").Order(order).Order("id asc")

	if q.Limit > 0 {
		queryBuilder = queryBuilder.Offset(q.Offset).Limit(q.Limit)
	}

	if err := queryBuilder.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Update 更新指定ID的记录并返回最新数据
func (r *gormEcoRecordRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.EcoRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.EcoRecord{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *gormEcoRecordRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.EcoRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteAll 删除全部记录并返回删除数量
func (r *gormEcoRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.EcoRecord{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
