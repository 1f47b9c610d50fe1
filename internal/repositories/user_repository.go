package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ecometrics/internal/models"
	"gorm.io/gorm"
)

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 创建用户；用户名冲突（包括并发竞争）返回 ErrUsernameExists
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err, "users.username") {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin 只更新 last_login_at，不触碰其他字段
func (r *gormUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).
		Error
}
