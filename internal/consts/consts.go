package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

const (
	// redis缓存键
	AccountSnapshotKey = "tradedesk:account:latest"
	MarkPricePrefix    = "tradedesk:price:" // + ticker
	RiskStatusKey      = "tradedesk:risk:status"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24
)
