package models

import (
	"math"
	"time"
)

// DateLayout 是记录日期在 API 与导出文件中的格式
const DateLayout = "2006-01-02"

// EcoRecord 对应于数据库中的 eco_records 表，每天最多一条记录
type EcoRecord struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Date             time.Time `json:"date" gorm:"column:date;type:date;uniqueIndex;not null"`
	PowerConsumption float64   `json:"powerConsumption" gorm:"column:power_consumption;type:decimal(10,2);not null"` // 电量消耗 kWh
	DrinkingWater    float64   `json:"drinkingWater" gorm:"column:drinking_water;type:decimal(10,2);not null"`       // 饮用水消耗 L
	IrrigationWater  float64   `json:"irrigationWater" gorm:"column:irrigation_water;type:decimal(10,2);not null"`   // 灌溉水消耗 L
	ElectricityPrice float64   `json:"electricityPrice" gorm:"column:electricity_price;type:decimal(10,2);not null"` // 电价 KZT/kWh
	CreatedBy        int64     `json:"createdBy" gorm:"column:created_by;not null;index"`
	Creator          *User     `json:"-" gorm:"foreignKey:CreatedBy"`
	UpdatedBy        *int64    `json:"updatedBy,omitempty" gorm:"column:updated_by;index"`
	Updater          *User     `json:"-" gorm:"foreignKey:UpdatedBy"`
	CreatedAt        time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 EcoRecord 结构体对应的数据库表名
func (EcoRecord) TableName() string {
	return "eco_records"
}

// Efficiency 计算单位用水量的耗电量，保留6位小数。总用水量为0时返回0。
func Efficiency(power, drinkingWater, irrigationWater float64) float64 {
	totalWater := drinkingWater + irrigationWater
	if totalWater <= 0 {
		return 0
	}
	return roundTo(power/totalWater, 6)
}

// DailyCost 计算当日电费（电量 × 电价），保留2位小数
func DailyCost(power, price float64) float64 {
	return roundTo(power*price, 2)
}

// RoundAmount 按 decimal(10,2) 列的精度保留2位小数
func RoundAmount(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Efficiency 按当前字段实时计算
func (r EcoRecord) Efficiency() float64 {
	return Efficiency(r.PowerConsumption, r.DrinkingWater, r.IrrigationWater)
}

// DailyCost 按当前字段实时计算
func (r EcoRecord) DailyCost() float64 {
	return DailyCost(r.PowerConsumption, r.ElectricityPrice)
}

// Snapshot 返回写入操作日志的字段快照
func (r EcoRecord) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"date":             r.Date.Format(DateLayout),
		"powerConsumption": r.PowerConsumption,
		"drinkingWater":    r.DrinkingWater,
		"irrigationWater":  r.IrrigationWater,
		"electricityPrice": r.ElectricityPrice,
	}
}

// EcoRecordResponse 是记录的对外视图，包含派生指标
type EcoRecordResponse struct {
	ID               int64     `json:"id"`
	Date             string    `json:"date" example:"2024-01-01"`
	PowerConsumption float64   `json:"powerConsumption"`
	DrinkingWater    float64   `json:"drinkingWater"`
	IrrigationWater  float64   `json:"irrigationWater"`
	ElectricityPrice float64   `json:"electricityPrice"`
	Efficiency       float64   `json:"efficiency"`
	DailyCost        float64   `json:"dailyCost"`
	CreatedBy        int64     `json:"createdBy"`
	CreatedByName    *string   `json:"createdByName"`
	UpdatedBy        *int64    `json:"updatedBy"`
	UpdatedByName    *string   `json:"updatedByName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToResponse 转换为对外视图；Creator/Updater 需预加载才会带出用户名
func (r EcoRecord) ToResponse() EcoRecordResponse {
	resp := EcoRecordResponse{
		ID:               r.ID,
		Date:             r.Date.Format(DateLayout),
		PowerConsumption: r.PowerConsumption,
		DrinkingWater:    r.DrinkingWater,
		IrrigationWater:  r.IrrigationWater,
		ElectricityPrice: r.ElectricityPrice,
		Efficiency:       r.Efficiency(),
		DailyCost:        r.DailyCost(),
		CreatedBy:        r.CreatedBy,
		UpdatedBy:        r.UpdatedBy,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.Creator != nil {
		name := r.Creator.Username
		resp.CreatedByName = &name
	}
	if r.Updater != nil {
		name := r.Updater.Username
		resp.UpdatedByName = &name
	}
	return resp
}

// EcoRecordInput 是创建/导入记录时的字段集合
type EcoRecordInput struct {
	Date             string  `json:"date" binding:"required" example:"2024-01-01"`
	PowerConsumption float64 `json:"powerConsumption"`
	DrinkingWater    float64 `json:"drinkingWater"`
	IrrigationWater  float64 `json:"irrigationWater"`
	ElectricityPrice float64 `json:"electricityPrice"`
}

// UpdateEcoRecordPayload 只包含需要修改的字段
type UpdateEcoRecordPayload struct {
	PowerConsumption *float64 `json:"powerConsumption,omitempty"`
	DrinkingWater    *float64 `json:"drinkingWater,omitempty"`
	IrrigationWater  *float64 `json:"irrigationWater,omitempty"`
	ElectricityPrice *float64 `json:"electricityPrice,omitempty"`
}

// IsEmpty 判断是否没有提供任何更新字段
func (p UpdateEcoRecordPayload) IsEmpty() bool {
	return p.PowerConsumption == nil && p.DrinkingWater == nil && p.IrrigationWater == nil && p.ElectricityPrice == nil
}
