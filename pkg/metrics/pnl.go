package metrics

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Pricer 盈亏计算模型，调用方只依赖该接口，便于替换为更完整的定价模型
type Pricer interface {
	PnL(symbol string, entryPrice, exitPrice, volume float64, direction Direction) (float64, error)
}

var (
	pipUnitJPY     = decimal.RequireFromString("0.01")
	pipUnitDefault = decimal.RequireFromString("0.0001")
	valuePerPipLot = decimal.NewFromInt(10)
	defaultPricer  = StandardLotPricer{}
)

var _ Pricer = StandardLotPricer{}

// StandardLotPricer 简化的外汇盈亏模型
//
// 报价货币为 JPY 的品种 1 pip = 0.01，其余 1 pip = 0.0001；每标准手每 pip 固定 10 美元。
// 这是近似模型：没有逐品种的 pip 表，也没有汇率换算，贵金属和指数的金额并不准确。
type StandardLotPricer struct{}

func (StandardLotPricer) PnL(symbol string, entryPrice, exitPrice, volume float64, direction Direction) (float64, error) {
	if volume <= 0 {
		return 0, fmt.Errorf("%w: volume must be positive, got %v", ErrInvalidInput, volume)
	}
	if entryPrice <= 0 || exitPrice <= 0 {
		return 0, fmt.Errorf("%w: entry and exit prices must be positive", ErrInvalidInput)
	}

	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	var priceDiff decimal.Decimal
	switch direction {
	case DirectionLong:
		priceDiff = exit.Sub(entry)
	case DirectionShort:
		priceDiff = entry.Sub(exit)
	default:
		return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}

	pips := priceDiff.Div(pipUnit(symbol))
	valuePerPip := decimal.NewFromFloat(volume).Mul(valuePerPipLot)

	return pips.Mul(valuePerPip).InexactFloat64(), nil
}

func pipUnit(symbol string) decimal.Decimal {
	if strings.HasSuffix(strings.ToUpper(symbol), "JPY") {
		return pipUnitJPY
	}
	return pipUnitDefault
}

// CalculatePnL 使用默认模型计算账户货币盈亏，正数为盈利
func CalculatePnL(symbol string, entryPrice, exitPrice, volume float64, direction Direction) (float64, error) {
	return defaultPricer.PnL(symbol, entryPrice, exitPrice, volume, direction)
}

// evaluate 逐笔计算盈亏，任一笔失败即中止
func evaluate(trades []Trade, pricer Pricer) ([]float64, error) {
	pnls := make([]float64, len(trades))
	for i, t := range trades {
		pnl, err := pricer.PnL(t.Symbol, t.EntryPrice, t.ExitPrice, t.Volume, t.Direction)
		if err != nil {
			return nil, fmt.Errorf("trade %d (%s): %w", i, t.Symbol, err)
		}
		pnls[i] = pnl
	}
	return pnls, nil
}
