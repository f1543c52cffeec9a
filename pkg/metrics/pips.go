package metrics

import (
	"strings"

	"github.com/shopspring/decimal"
)

type pipMultiplier struct {
	pattern    string
	multiplier int64
}

// 按顺序匹配，命中第一个即返回，顺序不能调整
var pipMultipliers = []pipMultiplier{
	{"JPY", 100},
	{"XAU", 10},
	{"XAG", 1000},
	{"US30", 1},
	{"NAS100", 1},
	{"US100", 1},
	{"SPX500", 10},
	{"US500", 10},
	{"GER40", 1},
	{"DE40", 1},
	{"UK100", 1},
}

const defaultPipMultiplier = 10000

// PipMultiplier 价格距离换算为 pip 的乘数
func PipMultiplier(symbol string) int64 {
	s := strings.ToUpper(symbol)
	for _, m := range pipMultipliers {
		if strings.Contains(s, m.pattern) {
			return m.multiplier
		}
	}
	return defaultPipMultiplier
}

// CalculatePips 展示用的 pip 距离，保留 1 位小数
func CalculatePips(symbol string, entryPrice, exitPrice float64, direction Direction) float64 {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	diff := exit.Sub(entry)
	if direction == DirectionShort {
		diff = entry.Sub(exit)
	}

	return diff.Mul(decimal.NewFromInt(PipMultiplier(symbol))).Round(1).InexactFloat64()
}
