package model

// 风控限额，启动时从配置构造，RiskGate独占持有
type RiskLimits struct {
	DailyLossLimit     float64 `json:"daily_loss_limit"`
	MaxPositionSize    float64 `json:"max_position_size"`
	MaxDrawdownLimit   float64 `json:"max_drawdown_limit"`
	PortfolioHeatLimit float64 `json:"portfolio_heat_limit"`
}

// 被触发的限额名称
const (
	LimitDailyLoss     = "daily_loss_limit"
	LimitPositionSize  = "max_position_size"
	LimitDrawdown      = "max_drawdown_limit"
	LimitPortfolioHeat = "portfolio_heat_limit"
)

// Breach 单条限额违例
type Breach struct {
	Limit     string  `json:"limit"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Message   string  `json:"message"`
}

// RiskVerdict 风控评估结论，列出全部违例而不是只报第一条
type RiskVerdict struct {
	Breaches []Breach `json:"breaches,omitempty"`
}

func (v RiskVerdict) OK() bool { return len(v.Breaches) == 0 }

// Has 是否违反了指定限额
func (v RiskVerdict) Has(limit string) bool {
	for _, b := range v.Breaches {
		if b.Limit == limit {
			return true
		}
	}
	return false
}

// RiskStatus 风控闸门当前状态
// EmergencyStop 与 TradingPaused 相互独立：前者触发时会连带置位后者，
// 且无法通过 resume 解除
type RiskStatus struct {
	EmergencyStop bool       `json:"emergency_stop"`
	TradingPaused bool       `json:"trading_paused"`
	Limits        RiskLimits `json:"limits"`
}
