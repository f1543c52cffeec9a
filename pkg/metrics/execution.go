package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// HourlyBucket 按入场小时聚合的统计，每次计算临时构建
type HourlyBucket struct {
	Hour        int
	NumOfTrades int
	NumOfWins   int
	NumOfLosses int
	TotalPnl    float64
	SumOfWins   float64
	SumOfLosses float64
}

// score 时段排序用的近似盈利因子；分母至少为 1，与 CorePerformance.ProfitFactor 不同
func (b *HourlyBucket) score() float64 {
	return b.TotalPnl / math.Max(1, math.Abs(b.SumOfLosses))
}

// TimeOfDay 某个入场小时的表现
type TimeOfDay struct {
	Hour     string  `json:"hour" yaml:"hour"` // "09:00"
	Trades   int     `json:"trades" yaml:"trades"`
	WinRate  float64 `json:"win_rate" yaml:"win_rate"`
	AvgPnl   float64 `json:"avg_pnl" yaml:"avg_pnl"`
	TotalPnl float64 `json:"total_pnl" yaml:"total_pnl"`
}

// ExecutionMetrics 执行质量数据；样本不足的字段为 null
type ExecutionMetrics struct {
	AvgEntryEfficiency *float64   `json:"avg_entry_efficiency" yaml:"avg_entry_efficiency"`
	AvgExitEfficiency  *float64   `json:"avg_exit_efficiency" yaml:"avg_exit_efficiency"`
	AvgHoldTime        *float64   `json:"avg_hold_time" yaml:"avg_hold_time"` // 分钟
	BestTimeOfDay      *TimeOfDay `json:"best_time_of_day" yaml:"best_time_of_day"`
	WorstTimeOfDay     *TimeOfDay `json:"worst_time_of_day" yaml:"worst_time_of_day"`
}

// Execution 执行质量与入场时段分析
type Execution struct {
	trades           []Trade
	buckets          []*HourlyBucket // 按小时升序，只含有交易的小时
	minTradesPerHour int
}

func NewExecution(trades []Trade, opts ...Option) (*Execution, error) {
	o := buildOptions(opts)
	pnls, err := evaluate(trades, o.pricer)
	if err != nil {
		return nil, err
	}
	return newExecution(trades, pnls, o), nil
}

func newExecution(trades []Trade, pnls []float64, o options) *Execution {
	return &Execution{
		trades:           trades,
		buckets:          groupByHour(trades, pnls, o.location),
		minTradesPerHour: o.minTradesPerHour,
	}
}

func groupByHour(trades []Trade, pnls []float64, loc *time.Location) []*HourlyBucket {
	var byHour [24]*HourlyBucket
	for i, t := range trades {
		entry := t.EntryTime
		if loc != nil {
			entry = entry.In(loc)
		}
		hour := entry.Hour()

		b := byHour[hour]
		if b == nil {
			b = &HourlyBucket{Hour: hour}
			byHour[hour] = b
		}

		pnl := pnls[i]
		b.NumOfTrades++
		b.TotalPnl += pnl
		if pnl > 0 {
			b.NumOfWins++
			b.SumOfWins += pnl
		} else if pnl < 0 {
			b.NumOfLosses++
			b.SumOfLosses += pnl
		}
	}

	buckets := make([]*HourlyBucket, 0, 24)
	for _, b := range byHour {
		if b != nil {
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// HourlyBuckets 返回各小时统计的副本
func (e *Execution) HourlyBuckets() []HourlyBucket {
	out := make([]HourlyBucket, len(e.buckets))
	for i, b := range e.buckets {
		out[i] = *b
	}
	return out
}

// AvgHoldTime 平均持仓分钟数
func (e *Execution) AvgHoldTime() (float64, error) {
	if len(e.trades) == 0 {
		return 0, fmt.Errorf("%w: average hold time needs at least one trade", ErrInsufficientData)
	}
	var total int
	for _, t := range e.trades {
		minutes, err := HoldingMinutes(t.EntryTime, t.ExitTime)
		if err != nil {
			return 0, err
		}
		total += minutes
	}
	return float64(total) / float64(len(e.trades)), nil
}

// rankedHours 过滤掉交易笔数不足的小时后排序，分数相同时小时早的在前
func (e *Execution) rankedHours(descending bool) []*HourlyBucket {
	eligible := make([]*HourlyBucket, 0, len(e.buckets))
	for _, b := range e.buckets {
		if b.NumOfTrades >= e.minTradesPerHour {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if descending {
			return eligible[i].score() > eligible[j].score()
		}
		return eligible[i].score() < eligible[j].score()
	})
	return eligible
}

func (e *Execution) BestTimeOfDay() *TimeOfDay {
	ranked := e.rankedHours(true)
	if len(ranked) == 0 {
		return nil
	}
	return toTimeOfDay(ranked[0])
}

func (e *Execution) WorstTimeOfDay() *TimeOfDay {
	ranked := e.rankedHours(false)
	if len(ranked) == 0 {
		return nil
	}
	return toTimeOfDay(ranked[0])
}

func toTimeOfDay(b *HourlyBucket) *TimeOfDay {
	n := float64(b.NumOfTrades)
	return &TimeOfDay{
		Hour:     fmt.Sprintf("%02d:00", b.Hour),
		Trades:   b.NumOfTrades,
		WinRate:  float64(b.NumOfWins) / n,
		AvgPnl:   b.TotalPnl / n,
		TotalPnl: b.TotalPnl,
	}
}

// AvgEntryEfficiency 入场质量评分（1-5）除以 5 的平均值；没有评分时为 nil
func (e *Execution) AvgEntryEfficiency() *float64 {
	return avgEfficiency(e.trades, func(a Annotations) int { return a.EntryQuality })
}

func (e *Execution) AvgExitEfficiency() *float64 {
	return avgEfficiency(e.trades, func(a Annotations) int { return a.ExitQuality })
}

const maxQuality = 5

func avgEfficiency(trades []Trade, quality func(Annotations) int) *float64 {
	var sum float64
	var n int
	for _, t := range trades {
		q := quality(t.Annotations)
		if q < 1 || q > maxQuality {
			continue
		}
		sum += float64(q) / maxQuality
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func (e *Execution) Summary() (ExecutionMetrics, error) {
	m := ExecutionMetrics{
		AvgEntryEfficiency: e.AvgEntryEfficiency(),
		AvgExitEfficiency:  e.AvgExitEfficiency(),
		BestTimeOfDay:      e.BestTimeOfDay(),
		WorstTimeOfDay:     e.WorstTimeOfDay(),
	}

	holdTime, err := e.AvgHoldTime()
	switch {
	case err == nil:
		m.AvgHoldTime = &holdTime
	case !errors.Is(err, ErrInsufficientData):
		return m, err
	}

	return m, nil
}
