package metrics

import "time"

// DefaultMinTradesPerHour 时段统计的可靠性下限
const DefaultMinTradesPerHour = 5

type options struct {
	pricer           Pricer
	location         *time.Location
	minTradesPerHour int
	now              func() time.Time
}

// Option 计算选项
type Option func(o *options)

// WithPricer 替换盈亏模型
func WithPricer(p Pricer) Option {
	return func(o *options) {
		if p != nil {
			o.pricer = p
		}
	}
}

// WithLocation 按指定时区取入场小时；默认使用时间自带的时区
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithMinTradesPerHour 调整时段统计的最少交易笔数
func WithMinTradesPerHour(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minTradesPerHour = n
		}
	}
}

// WithClock 报告生成时间，测试用
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		pricer:           defaultPricer,
		minTradesPerHour: DefaultMinTradesPerHour,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
