package metrics

// ContextStats 某一市场环境下的表现
type ContextStats struct {
	Trades  int     `json:"trades" yaml:"trades"`
	WinRate float64 `json:"win_rate" yaml:"win_rate"`
	AvgPnl  float64 `json:"avg_pnl" yaml:"avg_pnl"`
}

// SessionStats 交易时段表现
type SessionStats struct {
	Session Session `json:"session" yaml:"session"`
	ContextStats
}

// MarketContextMetrics 按市场状态、波动和时段拆分的表现，只统计带标注的交易
type MarketContextMetrics struct {
	Trending       ContextStats   `json:"trending" yaml:"trending"`
	Ranging        ContextStats   `json:"ranging" yaml:"ranging"`
	LowVolatility  ContextStats   `json:"low_volatility" yaml:"low_volatility"`
	HighVolatility ContextStats   `json:"high_volatility" yaml:"high_volatility"`
	Sessions       []SessionStats `json:"sessions" yaml:"sessions"`
}

// GradeCount 某一评级的交易笔数
type GradeCount struct {
	Grade Grade `json:"grade" yaml:"grade"`
	Count int   `json:"count" yaml:"count"`
}

type contextAccumulator struct {
	trades int
	wins   int
	pnl    float64
}

func (a *contextAccumulator) add(pnl float64) {
	a.trades++
	a.pnl += pnl
	if pnl > 0 {
		a.wins++
	}
}

func (a *contextAccumulator) stats() ContextStats {
	if a.trades == 0 {
		return ContextStats{}
	}
	n := float64(a.trades)
	return ContextStats{
		Trades:  a.trades,
		WinRate: float64(a.wins) / n,
		AvgPnl:  a.pnl / n,
	}
}

func NewMarketContext(trades []Trade, opts ...Option) (MarketContextMetrics, error) {
	o := buildOptions(opts)
	pnls, err := evaluate(trades, o.pricer)
	if err != nil {
		return MarketContextMetrics{}, err
	}
	return marketContext(trades, pnls), nil
}

// marketContext volatile 归为高波动，其余已标注的市场状态归为低波动
func marketContext(trades []Trade, pnls []float64) MarketContextMetrics {
	var trending, ranging, low, high contextAccumulator
	sessions := make(map[Session]*contextAccumulator, len(Sessions))
	for _, s := range Sessions {
		sessions[s] = &contextAccumulator{}
	}

	for i, t := range trades {
		pnl := pnls[i]
		switch t.Annotations.MarketType {
		case MarketTrending:
			trending.add(pnl)
			low.add(pnl)
		case MarketRange:
			ranging.add(pnl)
			low.add(pnl)
		case MarketVolatile:
			high.add(pnl)
		}
		if acc, ok := sessions[t.Annotations.Session]; ok {
			acc.add(pnl)
		}
	}

	m := MarketContextMetrics{
		Trending:       trending.stats(),
		Ranging:        ranging.stats(),
		LowVolatility:  low.stats(),
		HighVolatility: high.stats(),
		Sessions:       make([]SessionStats, 0, len(Sessions)),
	}
	for _, s := range Sessions {
		m.Sessions = append(m.Sessions, SessionStats{Session: s, ContextStats: sessions[s].stats()})
	}
	return m
}

// GradeDistribution 各评级笔数，按 A+ 到 F 排列，未评级的交易不计入
func GradeDistribution(trades []Trade) []GradeCount {
	counts := make(map[Grade]int, len(Grades))
	for _, t := range trades {
		counts[t.Annotations.Grade]++
	}
	out := make([]GradeCount, 0, len(Grades))
	for _, g := range Grades {
		out = append(out, GradeCount{Grade: g, Count: counts[g]})
	}
	return out
}
