package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// HitRate 目标达成分布，四项之和为 1
type HitRate struct {
	FullTarget float64 `json:"full_target" yaml:"full_target"`
	HalfTarget float64 `json:"half_target" yaml:"half_target"`
	Stopped    float64 `json:"stopped" yaml:"stopped"`
	EarlyExit  float64 `json:"early_exit" yaml:"early_exit"`
}

// HitOutcome 单笔交易相对计划的结果
type HitOutcome string

const (
	HitFullTarget HitOutcome = "full_target"
	HitHalfTarget HitOutcome = "half_target"
	HitStopped    HitOutcome = "stopped"
	HitEarlyExit  HitOutcome = "early_exit"
)

var (
	fullTargetThreshold = decimal.RequireFromString("0.9")
	halfTargetThreshold = decimal.RequireFromString("0.5")
	stoppedThreshold    = decimal.RequireFromString("-0.9")
)

// ConsistencyMetrics 稳定性数据；样本不足的字段为 null
type ConsistencyMetrics struct {
	BestStreak   int      `json:"best_streak" yaml:"best_streak"`
	WorstStreak  int      `json:"worst_streak" yaml:"worst_streak"`
	StdDeviation *float64 `json:"std_deviation" yaml:"std_deviation"`
	HitRate      *HitRate `json:"hit_rate" yaml:"hit_rate"`
}

// Consistency 连胜连败、盈亏离散度与目标达成率
//
// 交易按出场时间升序稳定排序（相同时间保持原顺序），连胜连败的结果依赖这个顺序。
type Consistency struct {
	sorted []Trade
	pnls   []float64 // 与 sorted 一一对应
}

func NewConsistency(trades []Trade, opts ...Option) (*Consistency, error) {
	o := buildOptions(opts)
	pnls, err := evaluate(trades, o.pricer)
	if err != nil {
		return nil, err
	}
	return newConsistency(trades, pnls), nil
}

type pairedTrade struct {
	trade Trade
	pnl   float64
}

func newConsistency(trades []Trade, pnls []float64) *Consistency {
	pairs := make([]pairedTrade, len(trades))
	for i := range trades {
		pairs[i] = pairedTrade{trade: trades[i], pnl: pnls[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].trade.ExitTime.Before(pairs[j].trade.ExitTime)
	})

	c := &Consistency{
		sorted: make([]Trade, len(pairs)),
		pnls:   make([]float64, len(pairs)),
	}
	for i, p := range pairs {
		c.sorted[i] = p.trade
		c.pnls[i] = p.pnl
	}
	return c
}

// streaks 一次遍历同时得到最长连胜和最长连败；保本交易同时打断两者
func (c *Consistency) streaks() (best, worst int) {
	var wins, losses int
	for _, pnl := range c.pnls {
		switch {
		case pnl > 0:
			wins++
			losses = 0
			best = max(best, wins)
		case pnl < 0:
			losses++
			wins = 0
			worst = max(worst, losses)
		default:
			wins, losses = 0, 0
		}
	}
	return best, worst
}

func (c *Consistency) BestStreak() int {
	best, _ := c.streaks()
	return best
}

func (c *Consistency) WorstStreak() int {
	_, worst := c.streaks()
	return worst
}

// StdDeviation 逐笔盈亏的总体标准差（除以 N）
func (c *Consistency) StdDeviation() (float64, error) {
	n := len(c.pnls)
	if n == 0 {
		return 0, fmt.Errorf("%w: standard deviation needs at least one trade", ErrInsufficientData)
	}

	var sum float64
	for _, pnl := range c.pnls {
		sum += pnl
	}
	mean := sum / float64(n)

	var variance float64
	for _, pnl := range c.pnls {
		d := pnl - mean
		variance += d * d
	}
	variance /= float64(n)

	return math.Sqrt(variance), nil
}

// ClassifyHit 按阈值顺序归类，先命中者为准
func ClassifyHit(t Trade) HitOutcome {
	entry := decimal.NewFromFloat(t.EntryPrice)
	exit := decimal.NewFromFloat(t.ExitPrice)

	actual := exit.Sub(entry)
	if t.Direction == DirectionShort {
		actual = entry.Sub(exit)
	}
	plannedReward := decimal.NewFromFloat(t.TakeProfit).Sub(entry).Abs()
	plannedRisk := entry.Sub(decimal.NewFromFloat(t.StopLoss)).Abs()

	switch {
	case actual.GreaterThanOrEqual(plannedReward.Mul(fullTargetThreshold)):
		return HitFullTarget
	case actual.GreaterThanOrEqual(plannedReward.Mul(halfTargetThreshold)):
		return HitHalfTarget
	case actual.LessThanOrEqual(plannedRisk.Mul(stoppedThreshold)):
		return HitStopped
	default:
		return HitEarlyExit
	}
}

func (c *Consistency) HitRate() (HitRate, error) {
	total := len(c.sorted)
	if total == 0 {
		return HitRate{}, fmt.Errorf("%w: hit rate needs at least one trade", ErrInsufficientData)
	}

	counts := make(map[HitOutcome]int, 4)
	for _, t := range c.sorted {
		counts[ClassifyHit(t)]++
	}

	n := float64(total)
	return HitRate{
		FullTarget: float64(counts[HitFullTarget]) / n,
		HalfTarget: float64(counts[HitHalfTarget]) / n,
		Stopped:    float64(counts[HitStopped]) / n,
		EarlyExit:  float64(counts[HitEarlyExit]) / n,
	}, nil
}

func (c *Consistency) Summary() (ConsistencyMetrics, error) {
	best, worst := c.streaks()
	m := ConsistencyMetrics{
		BestStreak:  best,
		WorstStreak: worst,
	}

	std, err := c.StdDeviation()
	switch {
	case err == nil:
		m.StdDeviation = &std
	case !errors.Is(err, ErrInsufficientData):
		return m, err
	}

	hitRate, err := c.HitRate()
	switch {
	case err == nil:
		m.HitRate = &hitRate
	case !errors.Is(err, ErrInsufficientData):
		return m, err
	}

	return m, nil
}
