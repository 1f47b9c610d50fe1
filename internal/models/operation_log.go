package models

import (
	"time"

	"gorm.io/datatypes"
)

// OperationAction 定义了操作日志的动作类型
type OperationAction string

const (
	ActionCreate OperationAction = "CREATE"
	ActionUpdate OperationAction = "UPDATE"
	ActionDelete OperationAction = "DELETE"
)

// IsValid 判断动作是否为已知类型
func (a OperationAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// OperationLog 对应于数据库中的 operation_logs 表，只追加不修改
type OperationLog struct {
	ID          int64             `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64             `json:"userId" gorm:"column:user_id;not null;index"`
	User        *User             `json:"-" gorm:"foreignKey:UserID"`
	Action      OperationAction   `json:"action" gorm:"column:action;type:varchar(20);not null;index"`
	TargetTable string            `json:"tableName" gorm:"column:table_name;size:50;not null"`
	RecordID    *int64            `json:"recordId" gorm:"column:record_id;index"`
	OldData     datatypes.JSONMap `json:"oldData" gorm:"column:old_data;type:json" swaggertype:"object"`
	NewData     datatypes.JSONMap `json:"newData" gorm:"column:new_data;type:json" swaggertype:"object"`
	Description *string           `json:"description" gorm:"column:description;type:text"`
	IPAddress   *string           `json:"ipAddress" gorm:"column:ip_address;size:45"` // 支持IPv6
	CreatedAt   time.Time         `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime;index"`
}

// TableName 指定 OperationLog 结构体对应的数据库表名
func (OperationLog) TableName() string {
	return "operation_logs"
}

// OperationLogResponse 是日志的对外视图，附带操作人用户名
type OperationLogResponse struct {
	ID          int64                  `json:"id"`
	UserID      int64                  `json:"userId"`
	Username    string                 `json:"username"`
	Action      OperationAction        `json:"action"`
	TableName   string                 `json:"tableName"`
	RecordID    *int64                 `json:"recordId"`
	OldData     map[string]interface{} `json:"oldData"`
	NewData     map[string]interface{} `json:"newData"`
	Description *string                `json:"description"`
	IPAddress   *string                `json:"ipAddress"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToResponse 转换为对外视图；User 需预加载
func (l OperationLog) ToResponse() OperationLogResponse {
	resp := OperationLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Action:      l.Action,
		TableName:   l.TargetTable,
		RecordID:    l.RecordID,
		OldData:     l.OldData,
		NewData:     l.NewData,
		Description: l.Description,
		IPAddress:   l.IPAddress,
		CreatedAt:   l.CreatedAt,
	}
	if l.User != nil {
		resp.Username = l.User.Username
	}
	return resp
}
