package metrics

import "errors"

var (
	// ErrInvalidInput 数值域错误：非正价格/手数、出场早于入场、未知方向
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData 样本量不足以定义该统计量（例如 0 笔交易的标准差）
	ErrInsufficientData = errors.New("insufficient data")
)
