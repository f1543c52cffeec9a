package models

import (
	"time"

	"github.com/trackedge/trackedge/pkg/metrics"
	"gorm.io/datatypes"
)

// ReviewDecision 复盘后对 setup 的仓位决定
type ReviewDecision string

const (
	DecisionIncreaseSize ReviewDecision = "increase-size"
	DecisionMaintain     ReviewDecision = "maintain"
	DecisionReduceSize   ReviewDecision = "reduce-size"
	DecisionEliminate    ReviewDecision = "eliminate"
)

// SetupRanking 单个 setup 的周表现
type SetupRanking struct {
	SetupID      string         `json:"setup_id"`
	SetupName    string         `json:"setup_name"`
	Grade        metrics.Grade  `json:"grade"` // A+/A/B/C/F
	NumOfTrades  int            `json:"num_of_trades"`
	WinRate      float64        `json:"win_rate"`
	TotalPnl     float64        `json:"total_pnl"`
	ProfitFactor metrics.Ratio  `json:"profit_factor"`
	StdDeviation *float64       `json:"std_deviation"`
	Decision     ReviewDecision `json:"decision"`
}

// ReviewInsights 周复盘结论，值为 setup 名称，无法判断时为空
type ReviewInsights struct {
	BestPerformingSetup  string `json:"best_performing_setup"`
	WorstPerformingSetup string `json:"worst_performing_setup"`
	MostConsistentSetup  string `json:"most_consistent_setup"`
	MostImprovedSetup    string `json:"most_improved_setup"`
}

// SetupReview 周复盘
type SetupReview struct {
	ID          string                             `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string                             `gorm:"type:varchar(26);not null;index" json:"user_id"`
	WeekEnding  time.Time                          `gorm:"not null;index" json:"week_ending"`
	Rankings    datatypes.JSONSlice[SetupRanking]  `gorm:"type:json" json:"setup_rankings"`
	Insights    datatypes.JSONType[ReviewInsights] `gorm:"type:json" json:"insights"`
	Adjustments datatypes.JSONSlice[string]        `gorm:"type:json" json:"adjustments"`
	CreatedAt   time.Time                          `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (SetupReview) TableName() string {
	return "setup_reviews"
}
