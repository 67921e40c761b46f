package risk

import (
	"sync"

	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
	"tradedesk/pkg/logger"
	"tradedesk/pkg/metrics"
)

// Gate 全局熔断器，任何改变信号状态的操作先过这里
// 两个标志位相互独立：emergencyStop置位时连带暂停交易，且本接口不提供解除，
// 自动恢复有重新进入触发条件的风险，解除只能走带外管理操作
type Gate struct {
	mu            sync.Mutex
	emergencyStop bool
	tradingPaused bool
	limits        model.RiskLimits
}

func NewGate(limits model.RiskLimits) *Gate {
	return &Gate{limits: limits}
}

// CheckGate 放行返回nil，拦截返回TradingHalted并携带原因
func (g *Gate) CheckGate() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.emergencyStop {
		metrics.GateBlocks.WithLabelValues("emergency_stop").Inc()
		return errors.WithCode(ecode.TradingHaltedErr, "emergency stop active")
	}
	if g.tradingPaused {
		metrics.GateBlocks.WithLabelValues("trading_paused").Inc()
		return errors.WithCode(ecode.TradingHaltedErr, "trading paused")
	}
	return nil
}

// EmergencyStop 置位熔断，连带暂停交易
func (g *Gate) EmergencyStop() model.RiskStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.emergencyStop = true
	g.tradingPaused = true
	return g.statusLocked()
}

// PauseTrading 软暂停，可通过ResumeTrading恢复
func (g *Gate) PauseTrading() model.RiskStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.emergencyStop {
		g.tradingPaused = true
	}
	return g.statusLocked()
}

// ResumeTrading 恢复交易，emergencyStop置位时是无操作
func (g *Gate) ResumeTrading() model.RiskStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.emergencyStop {
		g.tradingPaused = false
	}
	return g.statusLocked()
}

func (g *Gate) Status() model.RiskStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

func (g *Gate) statusLocked() model.RiskStatus {
	return model.RiskStatus{
		EmergencyStop: g.emergencyStop,
		TradingPaused: g.tradingPaused,
		Limits:        g.limits,
	}
}

// Reconcile 每份新账户快照到达时调用
// 硬限额（当日亏损/回撤）违例直接熔断，软限额（热度/单仓规模）只暂停，
// 恢复永远由外部显式发起，不自动resume
func (g *Gate) Reconcile(verdict model.RiskVerdict) model.RiskStatus {
	if verdict.OK() {
		return g.Status()
	}

	hard := verdict.Has(model.LimitDailyLoss) || verdict.Has(model.LimitDrawdown)

	g.mu.Lock()
	defer g.mu.Unlock()

	if hard {
		if !g.emergencyStop {
			// 高危事件，需要运维显式确认后才能解除
			logger.Error("EMERGENCY STOP tripped by risk reconciliation",
				logger.Pair("breaches", verdict.Breaches))
			metrics.RiskTrips.WithLabelValues("emergency_stop").Inc()
		}
		g.emergencyStop = true
		g.tradingPaused = true
		return g.statusLocked()
	}

	if !g.tradingPaused {
		logger.Warn("trading paused by risk reconciliation",
			logger.Pair("breaches", verdict.Breaches))
		metrics.RiskTrips.WithLabelValues("pause").Inc()
	}
	if !g.emergencyStop {
		g.tradingPaused = true
	}
	return g.statusLocked()
}
