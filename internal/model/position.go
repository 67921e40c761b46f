package model

import "time"

type PositionStatus string

const (
	PositionOpen   PositionStatus = "open"
	PositionClosed PositionStatus = "closed"
)

// Position 执行信号产生的持仓
// SignalID 是弱引用，仅用于回查，仓位的生命周期独立于信号
type Position struct {
	ID       string         `json:"position_id"`
	SignalID string         `json:"signal_id,omitempty"`
	Ticker   string         `json:"ticker"`
	Strategy string         `json:"strategy"`
	Quantity float64        `json:"quantity"` // 带符号，多头为正空头为负，持仓期间非零
	MaxRisk  float64        `json:"max_risk"` // 从信号继承，组合热度计算用
	Status   PositionStatus `json:"status"`

	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`
	ExitPrice    float64 `json:"exit_price,omitempty"`

	// Pnl/PnlPercent 始终由价格和数量推导，不单独维护
	Pnl        float64 `json:"pnl"`
	PnlPercent float64 `json:"pnl_percent"`

	EntryTime time.Time  `json:"entry_time"`
	ExitTime  *time.Time `json:"exit_time,omitempty"`

	// 合约元数据（期权腿、到期日等），核心不解释其内容
	Contract map[string]string `json:"contract,omitempty"`
}

// Tick 行情推送 (ticker, price, timestamp)
type Tick struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

type PositionListReq struct {
	Status string `form:"status" binding:"omitempty,oneof=open closed all"`
}
