package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Setup 交易策略（setup），日志按它分组统计
type Setup struct {
	ID              string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID          string                      `gorm:"type:varchar(26);not null;index" json:"user_id"`
	Name            string                      `gorm:"type:varchar(100);not null" json:"name"`
	Description     string                      `gorm:"type:text" json:"description"`
	EntryStrategy   string                      `gorm:"type:text" json:"entry_strategy"`   // 入场规则
	HoldingStrategy string                      `gorm:"type:text" json:"holding_strategy"` // 持仓管理
	ExitStrategy    string                      `gorm:"type:text" json:"exit_strategy"`    // 出场规则
	ImageURLs       datatypes.JSONSlice[string] `gorm:"type:json" json:"image_urls"`
	Tags            datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (Setup) TableName() string {
	return "setups"
}
