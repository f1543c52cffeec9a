// Package metrics 交易复盘统计引擎
//
// 所有计算都是对一组已平仓交易的纯函数变换：不缓存、不持有可变状态，
// 同一组交易可以被多个模块并发读取。
package metrics

import (
	"fmt"
	"time"
)

// Direction 交易方向
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Grade 交易执行评级
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Grades 按从好到差的顺序
var Grades = []Grade{GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeF}

func (g Grade) Valid() bool {
	for _, v := range Grades {
		if g == v {
			return true
		}
	}
	return false
}

// MarketType 市场状态
type MarketType string

const (
	MarketTrending MarketType = "trending"
	MarketRange    MarketType = "range"
	MarketVolatile MarketType = "volatile"
)

// Session 交易时段
type Session string

const (
	SessionAsian   Session = "asian"
	SessionLondon  Session = "london"
	SessionNewYork Session = "new york"
)

// Sessions 时段展示顺序
var Sessions = []Session{SessionAsian, SessionLondon, SessionNewYork}

// Annotations 复盘标注，均为可选
type Annotations struct {
	Grade        Grade      `json:"grade,omitempty" yaml:"grade,omitempty"`
	EntryQuality int        `json:"entry_quality,omitempty" yaml:"entry_quality,omitempty"` // 1-5
	ExitQuality  int        `json:"exit_quality,omitempty" yaml:"exit_quality,omitempty"`   // 1-5
	MarketType   MarketType `json:"market_type,omitempty" yaml:"market_type,omitempty"`
	Session      Session    `json:"session,omitempty" yaml:"session,omitempty"`
}

// Trade 一笔已平仓交易
type Trade struct {
	Symbol      string      `json:"symbol" yaml:"symbol"`
	Direction   Direction   `json:"direction" yaml:"direction"`
	Volume      float64     `json:"volume" yaml:"volume"` // 手数
	EntryPrice  float64     `json:"entry_price" yaml:"entry_price"`
	ExitPrice   float64     `json:"exit_price" yaml:"exit_price"`
	EntryTime   time.Time   `json:"entry_time" yaml:"entry_time"`
	ExitTime    time.Time   `json:"exit_time" yaml:"exit_time"`
	StopLoss    float64     `json:"stop_loss" yaml:"stop_loss"`
	TakeProfit  float64     `json:"take_profit" yaml:"take_profit"`
	Annotations Annotations `json:"annotations" yaml:"annotations"`
}

// Validate 检查交易记录的数值域，错误均为 ErrInvalidInput
func (t Trade) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if !t.Direction.Valid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, t.Direction)
	}
	if t.Volume <= 0 {
		return fmt.Errorf("%w: volume must be positive, got %v", ErrInvalidInput, t.Volume)
	}
	if t.EntryPrice <= 0 || t.ExitPrice <= 0 {
		return fmt.Errorf("%w: entry and exit prices must be positive", ErrInvalidInput)
	}
	if t.ExitTime.Before(t.EntryTime) {
		return fmt.Errorf("%w: exit time %s precedes entry time %s", ErrInvalidInput,
			t.ExitTime.Format(time.RFC3339), t.EntryTime.Format(time.RFC3339))
	}
	return nil
}

// priceMove 按方向计算的价格变动，正数为盈利
func (t Trade) priceMove() float64 {
	if t.Direction == DirectionShort {
		return t.EntryPrice - t.ExitPrice
	}
	return t.ExitPrice - t.EntryPrice
}

// Risk 计划风险 |entry - stop|
func (t Trade) Risk() float64 {
	r := t.EntryPrice - t.StopLoss
	if r < 0 {
		return -r
	}
	return r
}

// RMultiple 实际盈亏相对计划风险的倍数；风险为 0 时 ok 为 false
func (t Trade) RMultiple() (r float64, ok bool) {
	risk := t.Risk()
	if risk == 0 {
		return 0, false
	}
	return t.priceMove() / risk, true
}
