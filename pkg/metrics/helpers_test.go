package metrics

import "time"

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// priceDiffPricer 盈亏直接等于按方向计算的价格差，方便构造指定盈亏的交易
type priceDiffPricer struct{}

func (priceDiffPricer) PnL(_ string, entry, exit, _ float64, d Direction) (float64, error) {
	if d == DirectionShort {
		return entry - exit, nil
	}
	return exit - entry, nil
}

// tradeWithPnL 入场 100，止损 90，止盈 120 的多单；配合 priceDiffPricer 盈亏即为 pnl
func tradeWithPnL(pnl float64, exitAt time.Time) Trade {
	return Trade{
		Symbol:     "TEST",
		Direction:  DirectionLong,
		Volume:     1,
		EntryPrice: 100,
		ExitPrice:  100 + pnl,
		EntryTime:  exitAt.Add(-time.Hour),
		ExitTime:   exitAt,
		StopLoss:   90,
		TakeProfit: 120,
	}
}

func tradesWithPnL(pnls ...float64) []Trade {
	trades := make([]Trade, len(pnls))
	for i, pnl := range pnls {
		trades[i] = tradeWithPnL(pnl, baseTime.Add(time.Duration(i)*time.Hour))
	}
	return trades
}

func enteredAt(entry time.Time, pnl float64) Trade {
	t := tradeWithPnL(pnl, entry.Add(30*time.Minute))
	t.EntryTime = entry
	return t
}
