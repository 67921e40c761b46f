package risk

import (
	"fmt"
	"math"

	"tradedesk/internal/model"
)

// Policy 纯函数式的限额评估器，只读配置，无可变状态
// 回撤需要历史峰值，由调用方跟踪后传入，保持这里无状态
type Policy struct {
	limits model.RiskLimits
}

func NewPolicy(limits model.RiskLimits) *Policy {
	return &Policy{limits: limits}
}

func (p *Policy) Limits() model.RiskLimits { return p.limits }

// Evaluate 对账户/仓位快照做一次完整评估，列出全部违例
func (p *Policy) Evaluate(account model.AccountSnapshot, open []model.Position, peakEquity float64) model.RiskVerdict {
	var verdict model.RiskVerdict

	// 当日亏损（已实现+浮动）
	dayPnl := account.RealizedPnl + account.UnrealizedPnl
	if dayPnl < 0 && -dayPnl > p.limits.DailyLossLimit {
		verdict.Breaches = append(verdict.Breaches, model.Breach{
			Limit:     model.LimitDailyLoss,
			Value:     -dayPnl,
			Threshold: p.limits.DailyLossLimit,
			Message:   fmt.Sprintf("daily loss %.2f exceeds limit %.2f", -dayPnl, p.limits.DailyLossLimit),
		})
	}

	// 最大单仓名义价值
	var largest float64
	for _, pos := range open {
		notional := math.Abs(pos.Quantity) * pos.CurrentPrice
		if notional > largest {
			largest = notional
		}
	}
	if largest > p.limits.MaxPositionSize {
		verdict.Breaches = append(verdict.Breaches, model.Breach{
			Limit:     model.LimitPositionSize,
			Value:     largest,
			Threshold: p.limits.MaxPositionSize,
			Message:   fmt.Sprintf("largest position notional %.2f exceeds limit %.2f", largest, p.limits.MaxPositionSize),
		})
	}

	// 峰值回撤
	if peakEquity > 0 {
		drawdown := (peakEquity - account.NetLiquidation) / peakEquity
		if drawdown > p.limits.MaxDrawdownLimit {
			verdict.Breaches = append(verdict.Breaches, model.Breach{
				Limit:     model.LimitDrawdown,
				Value:     drawdown,
				Threshold: p.limits.MaxDrawdownLimit,
				Message:   fmt.Sprintf("drawdown %.2f%% exceeds limit %.2f%%", drawdown*100, p.limits.MaxDrawdownLimit*100),
			})
		}
	}

	// 组合热度：未平仓位的风险敞口占净值比例
	// 单仓风险取信号的MaxRisk，未给出时退化为开仓名义价值
	var openRisk float64
	for _, pos := range open {
		if pos.MaxRisk > 0 {
			openRisk += pos.MaxRisk
		} else {
			openRisk += math.Abs(pos.Quantity) * pos.EntryPrice
		}
	}
	if openRisk > 0 {
		heat := 1.0 // 净值非正时任何敞口都视为满热度
		if account.NetLiquidation > 0 {
			heat = openRisk / account.NetLiquidation
		}
		if heat > p.limits.PortfolioHeatLimit {
			verdict.Breaches = append(verdict.Breaches, model.Breach{
				Limit:     model.LimitPortfolioHeat,
				Value:     heat,
				Threshold: p.limits.PortfolioHeatLimit,
				Message:   fmt.Sprintf("portfolio heat %.4f exceeds limit %.4f", heat, p.limits.PortfolioHeatLimit),
			})
		}
	}

	return verdict
}
