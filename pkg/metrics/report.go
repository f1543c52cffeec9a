package metrics

import (
	"fmt"
	"time"
)

// Report 单个 setup 的完整统计报告
type Report struct {
	SetupID           string               `json:"setup_id" yaml:"setup_id"`
	GeneratedAt       time.Time            `json:"generated_at" yaml:"generated_at"`
	Performance       CoreMetrics          `json:"performance" yaml:"performance"`
	Consistency       ConsistencyMetrics   `json:"consistency" yaml:"consistency"`
	Execution         ExecutionMetrics     `json:"execution" yaml:"execution"`
	MarketContext     MarketContextMetrics `json:"market_context" yaml:"market_context"`
	GradeDistribution []GradeCount         `json:"grade_distribution" yaml:"grade_distribution"`
}

// BuildReport 一次计算全部模块
//
// 盈亏只逐笔算一次，各模块共享同一份只读切片。任何一笔交易的数值域错误都会中止整个报告；
// 样本不足的统计量以 null 输出。
func BuildReport(setupID string, trades []Trade, opts ...Option) (*Report, error) {
	o := buildOptions(opts)

	for i, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("trade %d (%s): %w", i, t.Symbol, err)
		}
	}

	pnls, err := evaluate(trades, o.pricer)
	if err != nil {
		return nil, err
	}

	consistency, err := newConsistency(trades, pnls).Summary()
	if err != nil {
		return nil, err
	}
	execution, err := newExecution(trades, pnls, o).Summary()
	if err != nil {
		return nil, err
	}

	return &Report{
		SetupID:           setupID,
		GeneratedAt:       o.now().UTC(),
		Performance:       newCorePerformance(trades, pnls).Summary(),
		Consistency:       consistency,
		Execution:         execution,
		MarketContext:     marketContext(trades, pnls),
		GradeDistribution: GradeDistribution(trades),
	}, nil
}
