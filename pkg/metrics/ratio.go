package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Infinite 盈利因子在没有亏损时的哨兵值
var Infinite = math.Inf(1)

const infinityLiteral = "Infinity"

// Ratio 可能为 +Inf 的比值；JSON 中 +Inf 编码为字符串 "Infinity"
type Ratio float64

func (r Ratio) IsInfinite() bool {
	return math.IsInf(float64(r), 1)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInfinite() {
		return []byte(`"` + infinityLiteral + `"`), nil
	}
	return []byte(strconv.FormatFloat(float64(r), 'f', -1, 64)), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != infinityLiteral {
			return fmt.Errorf("metrics: invalid ratio %q", s)
		}
		*r = Ratio(Infinite)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}
