package models

import (
	"time"

	"github.com/trackedge/trackedge/pkg/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JournalEntry 交易日志：一笔已平仓交易及其复盘
//
// 交易字段创建后不可修改，复盘字段可以编辑。
type JournalEntry struct {
	ID      string `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID  string `gorm:"type:varchar(26);not null;index" json:"user_id"`
	SetupID string `gorm:"type:varchar(26);index" json:"setup_id"` // 为空表示未归类

	// 交易
	Symbol     string            `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Direction  metrics.Direction `gorm:"type:varchar(10);not null" json:"direction"` // long/short
	Volume     float64           `gorm:"type:decimal(20,8);not null" json:"volume"`  // 手数
	EntryPrice float64           `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	ExitPrice  float64           `gorm:"type:decimal(20,8);not null" json:"exit_price"`
	EntryAt    time.Time         `gorm:"not null" json:"entry_at"`
	ExitAt     time.Time         `gorm:"not null;index" json:"exit_at"`
	StopLoss   float64           `gorm:"type:decimal(20,8)" json:"stop_loss"`
	TakeProfit float64           `gorm:"type:decimal(20,8)" json:"take_profit"`

	// 执行质量与市场环境
	Grade        metrics.Grade      `gorm:"type:varchar(2)" json:"grade"`
	EntryQuality int                `gorm:"type:int" json:"entry_quality"` // 1-5，0 表示未评分
	ExitQuality  int                `gorm:"type:int" json:"exit_quality"`
	MarketType   metrics.MarketType `gorm:"type:varchar(10)" json:"market_type"`
	Session      metrics.Session    `gorm:"type:varchar(10)" json:"session"`

	// 创建时计算的结果
	Pnl         float64  `gorm:"type:decimal(20,8)" json:"pnl"`
	HoldMinutes int      `gorm:"type:int" json:"hold_minutes"`
	Pips        float64  `gorm:"type:decimal(20,2)" json:"pips"`
	RMultiple   *float64 `gorm:"type:decimal(20,8)" json:"r_multiple"` // 止损等于入场价时为空

	// 复盘
	FollowedPlan *bool                       `json:"followed_plan"`
	Notes        string                      `gorm:"type:text" json:"notes"`
	Mistakes     datatypes.JSONSlice[string] `gorm:"type:json" json:"mistakes"`
	Lessons      datatypes.JSONSlice[string] `gorm:"type:json" json:"lessons"`
	ImageURLs    datatypes.JSONSlice[string] `gorm:"type:json" json:"image_urls"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// ToTrade 转换为统计引擎的交易记录，时间换算到 loc
func (m JournalEntry) ToTrade(loc *time.Location) metrics.Trade {
	entryAt, exitAt := m.EntryAt, m.ExitAt
	if loc != nil {
		entryAt, exitAt = entryAt.In(loc), exitAt.In(loc)
	}
	return metrics.Trade{
		Symbol:     m.Symbol,
		Direction:  m.Direction,
		Volume:     m.Volume,
		EntryPrice: m.EntryPrice,
		ExitPrice:  m.ExitPrice,
		EntryTime:  entryAt,
		ExitTime:   exitAt,
		StopLoss:   m.StopLoss,
		TakeProfit: m.TakeProfit,
		Annotations: metrics.Annotations{
			Grade:        m.Grade,
			EntryQuality: m.EntryQuality,
			ExitQuality:  m.ExitQuality,
			MarketType:   m.MarketType,
			Session:      m.Session,
		},
	}
}
