package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 对应于数据库中的 users 表
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"column:username;uniqueIndex;not null;size:50"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Role         string     `json:"role" gorm:"column:role;not null;default:'user';size:20"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" gorm:"column:last_login_at"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 判断用户是否为管理员
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse 是返回给客户端的用户视图
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	LoginTime *time.Time `json:"loginTime,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToResponse 转换为对外的用户视图
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		LoginTime: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
}
