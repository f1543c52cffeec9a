package models

import (
	"time"

	"github.com/trackedge/trackedge/pkg/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TradingPlan 交易计划：某个时段交易哪些品种、用哪些 setup
type TradingPlan struct {
	ID            string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID        string                      `gorm:"type:varchar(26);not null;index" json:"user_id"`
	Session       metrics.Session             `gorm:"type:varchar(20);not null" json:"session"`
	CurrencyPairs datatypes.JSONSlice[string] `gorm:"type:json" json:"currency_pairs"`
	Strategies    datatypes.JSONSlice[string] `gorm:"type:json" json:"strategies"` // setup ID
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (TradingPlan) TableName() string {
	return "trading_plans"
}

// HasStrategy 计划是否引用了该 setup
func (p TradingPlan) HasStrategy(setupID string) bool {
	for _, id := range p.Strategies {
		if id == setupID {
			return true
		}
	}
	return false
}
