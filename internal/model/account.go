package model

import "time"

// AccountSnapshot 账户时点快照，一经产生不可变，由下一份快照整体替换
type AccountSnapshot struct {
	NetLiquidation     float64   `json:"net_liquidation"`
	Cash               float64   `json:"cash"`
	SettledCash        float64   `json:"settled_cash"`
	AvailableFunds     float64   `json:"available_funds"`
	BuyingPower        float64   `json:"buying_power"`
	GrossPositionValue float64   `json:"gross_position_value"`
	RealizedPnl        float64   `json:"realized_pnl"`
	UnrealizedPnl      float64   `json:"unrealized_pnl"`
	Timestamp          time.Time `json:"timestamp"`
}
