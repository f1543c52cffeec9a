package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams      = orz.NewError(10400, "参数无效")
	ErrInvalidToken       = orz.NewError(10403, "令牌无效")
	ErrPermissionDenied   = orz.NewError(10401, "您没有权限查看/修改/删除此数据")
	ErrAccountAlreadyUsed = orz.NewError(10000, "账户已被使用")
	ErrIncorrectPassword  = orz.NewError(10001, "账户或密码错误")
	ErrUserDisabled       = orz.NewError(10002, "用户已被禁用")
	ErrTooManyRequests    = orz.NewError(10429, "请求过于频繁，请稍后再试")

	ErrInvalidInput         = orz.NewError(20400, "交易数据无效")
	ErrInsufficientData     = orz.NewError(20001, "样本不足")
	ErrStoreUnavailable     = orz.NewError(20503, "交易数据暂不可用")
	ErrSetupNotFound        = orz.NewError(20404, "交易策略不存在")
	ErrJournalEntryNotFound = orz.NewError(20405, "交易日志不存在")
	ErrReviewNotFound       = orz.NewError(20406, "周复盘不存在")
	ErrTradingPlanNotFound  = orz.NewError(20407, "交易计划不存在")
)
