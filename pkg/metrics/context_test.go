package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketContext(t *testing.T) {
	trades := tradesWithPnL(10, -4, 6, 20, -10, 3)
	trades[0].Annotations = Annotations{MarketType: MarketTrending, Session: SessionLondon}
	trades[1].Annotations = Annotations{MarketType: MarketTrending, Session: SessionLondon}
	trades[2].Annotations = Annotations{MarketType: MarketRange, Session: SessionAsian}
	trades[3].Annotations = Annotations{MarketType: MarketVolatile, Session: SessionNewYork}
	trades[4].Annotations = Annotations{MarketType: MarketVolatile}
	// trades[5] 没有标注

	m, err := NewMarketContext(trades, WithPricer(priceDiffPricer{}))
	require.NoError(t, err)

	assert.Equal(t, ContextStats{Trades: 2, WinRate: 0.5, AvgPnl: 3}, m.Trending)
	assert.Equal(t, ContextStats{Trades: 1, WinRate: 1, AvgPnl: 6}, m.Ranging)
	assert.Equal(t, 3, m.LowVolatility.Trades)
	assert.InDelta(t, 4, m.LowVolatility.AvgPnl, 1e-9)
	assert.Equal(t, ContextStats{Trades: 2, WinRate: 0.5, AvgPnl: 5}, m.HighVolatility)

	require.Len(t, m.Sessions, 3)
	assert.Equal(t, SessionAsian, m.Sessions[0].Session)
	assert.Equal(t, 1, m.Sessions[0].Trades)
	assert.Equal(t, SessionLondon, m.Sessions[1].Session)
	assert.Equal(t, 2, m.Sessions[1].Trades)
	assert.Equal(t, SessionNewYork, m.Sessions[2].Session)
	assert.InDelta(t, 20, m.Sessions[2].AvgPnl, 1e-9)
}

func TestMarketContextEmpty(t *testing.T) {
	m, err := NewMarketContext(nil)
	require.NoError(t, err)

	assert.Equal(t, ContextStats{}, m.Trending)
	assert.Len(t, m.Sessions, 3)
}

func TestGradeDistribution(t *testing.T) {
	trades := tradesWithPnL(1, 2, 3, 4, 5)
	trades[0].Annotations.Grade = GradeAPlus
	trades[1].Annotations.Grade = GradeA
	trades[2].Annotations.Grade = GradeA
	trades[3].Annotations.Grade = GradeF

	dist := GradeDistribution(trades)
	assert.Equal(t, []GradeCount{
		{GradeAPlus, 1},
		{GradeA, 2},
		{GradeB, 0},
		{GradeC, 0},
		{GradeD, 0},
		{GradeF, 1},
	}, dist)
}
