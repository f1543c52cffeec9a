package metrics

import "math"

// CorePerformance 核心绩效指标
//
// 胜负笔数与盈亏合计在构造时一次算好，所有 getter 只读这些聚合值。
// 盈亏为 0 的交易既不算胜也不算负。
type CorePerformance struct {
	trades      []Trade
	numOfWins   int
	numOfLosses int
	sumOfWins   float64
	sumOfLosses float64 // <= 0
}

// CoreMetrics 核心绩效数据
type CoreMetrics struct {
	TotalTrades  int     `json:"total_trades" yaml:"total_trades"`
	WinRate      float64 `json:"win_rate" yaml:"win_rate"`
	AvgWin       float64 `json:"avg_win" yaml:"avg_win"`
	AvgLoss      float64 `json:"avg_loss" yaml:"avg_loss"`
	AvgRRR       float64 `json:"avg_rrr" yaml:"avg_rrr"`
	ProfitFactor Ratio   `json:"profit_factor" yaml:"profit_factor"`
	Expectancy   float64 `json:"expectancy" yaml:"expectancy"`
	TotalPnL     float64 `json:"total_pnl" yaml:"total_pnl"`
}

func NewCorePerformance(trades []Trade, opts ...Option) (*CorePerformance, error) {
	o := buildOptions(opts)
	pnls, err := evaluate(trades, o.pricer)
	if err != nil {
		return nil, err
	}
	return newCorePerformance(trades, pnls), nil
}

func newCorePerformance(trades []Trade, pnls []float64) *CorePerformance {
	c := &CorePerformance{trades: trades}
	for _, pnl := range pnls {
		switch {
		case pnl > 0:
			c.numOfWins++
			c.sumOfWins += pnl
		case pnl < 0:
			c.numOfLosses++
			c.sumOfLosses += pnl
		}
	}
	return c
}

func (c *CorePerformance) TotalTrades() int {
	return len(c.trades)
}

func (c *CorePerformance) WinRate() float64 {
	if len(c.trades) == 0 {
		return 0
	}
	return float64(c.numOfWins) / float64(len(c.trades))
}

func (c *CorePerformance) lossRate() float64 {
	if len(c.trades) == 0 {
		return 0
	}
	return float64(c.numOfLosses) / float64(len(c.trades))
}

func (c *CorePerformance) AvgWin() float64 {
	if c.numOfWins == 0 {
		return 0
	}
	return c.sumOfWins / float64(c.numOfWins)
}

// AvgLoss 平均亏损，负数或 0
func (c *CorePerformance) AvgLoss() float64 {
	if c.numOfLosses == 0 {
		return 0
	}
	return c.sumOfLosses / float64(c.numOfLosses)
}

// AvgRRR 平均 R 倍数；止损等于入场价的交易无法定义风险，直接剔除
func (c *CorePerformance) AvgRRR() float64 {
	var sum float64
	var n int
	for _, t := range c.trades {
		r, ok := t.RMultiple()
		if !ok {
			continue
		}
		sum += r
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ProfitFactor 总盈利 / |总亏损|；没有亏损但有盈利时返回 Infinite，都为 0 时返回 0
func (c *CorePerformance) ProfitFactor() float64 {
	if c.sumOfLosses == 0 {
		if c.sumOfWins > 0 {
			return Infinite
		}
		return 0
	}
	return c.sumOfWins / math.Abs(c.sumOfLosses)
}

func (c *CorePerformance) Expectancy() float64 {
	return c.WinRate()*c.AvgWin() - math.Abs(c.lossRate()*c.AvgLoss())
}

func (c *CorePerformance) TotalPnL() float64 {
	return c.sumOfWins + c.sumOfLosses
}

func (c *CorePerformance) Summary() CoreMetrics {
	return CoreMetrics{
		TotalTrades:  c.TotalTrades(),
		WinRate:      c.WinRate(),
		AvgWin:       c.AvgWin(),
		AvgLoss:      c.AvgLoss(),
		AvgRRR:       c.AvgRRR(),
		ProfitFactor: Ratio(c.ProfitFactor()),
		Expectancy:   c.Expectancy(),
		TotalPnL:     c.TotalPnL(),
	}
}
