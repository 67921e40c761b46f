package ecode

// 错误码注册表，0表示成功，非0表示失败
// 业务错误码按子系统分段：2xxxx 信号/仓位/风控
const (
	Success = 0
	// 通用错误
	Unknown        = 10001
	ValidateErr    = 10002
	NotFoundErr    = 10003
	RequireAuthErr = 10004
	InternalErr    = 10005

	// 信号生命周期
	InvalidSignalErr     = 20101 // 信号字段校验失败
	InvalidTransitionErr = 20102 // 非法的状态迁移
	AlreadyTerminalErr   = 20103 // 信号已处于终态（executed/rejected）

	// 仓位
	DuplicateOpenErr = 20201 // 同一信号重复开仓
	AlreadyClosedErr = 20202 // 仓位已平

	// 风控
	TradingHaltedErr     = 20301 // 风控闸门拦截
	ReconcileMismatchErr = 20302 // 信号已执行但开仓失败，需要人工对账
)

var messages = map[int]string{
	Success:              "OK",
	Unknown:              "internal error",
	ValidateErr:          "validation failed",
	NotFoundErr:          "resource not found",
	RequireAuthErr:       "authentication required",
	InternalErr:          "internal error",
	InvalidSignalErr:     "invalid signal",
	InvalidTransitionErr: "invalid signal transition",
	AlreadyTerminalErr:   "signal already in terminal state",
	DuplicateOpenErr:     "position already open for signal",
	AlreadyClosedErr:     "position already closed",
	TradingHaltedErr:     "trading halted",
	ReconcileMismatchErr: "execution/position reconciliation mismatch",
}

// Text 返回错误码对应的默认提示
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
