package metrics

import (
	"fmt"
	"time"
)

// HoldingMinutes 持仓时长（分钟，四舍五入）
//
// 出场早于入场视为脏数据，返回 ErrInvalidInput 而不是 0。
func HoldingMinutes(entry, exit time.Time) (int, error) {
	if exit.Before(entry) {
		return 0, fmt.Errorf("%w: exit time %s precedes entry time %s", ErrInvalidInput,
			exit.Format(time.RFC3339), entry.Format(time.RFC3339))
	}
	return int(exit.Sub(entry).Round(time.Minute) / time.Minute), nil
}
