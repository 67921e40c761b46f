package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradedesk/internal/model"
)

func testLimits() model.RiskLimits {
	return model.RiskLimits{
		DailyLossLimit:     1000,
		MaxPositionSize:    10000,
		MaxDrawdownLimit:   0.15,
		PortfolioHeatLimit: 0.06,
	}
}

func account(netLiq, realized, unrealized float64) model.AccountSnapshot {
	return model.AccountSnapshot{
		NetLiquidation: netLiq,
		RealizedPnl:    realized,
		UnrealizedPnl:  unrealized,
	}
}

func openPos(qty, entry, current, maxRisk float64) model.Position {
	return model.Position{
		Quantity:     qty,
		EntryPrice:   entry,
		CurrentPrice: current,
		MaxRisk:      maxRisk,
		Status:       model.PositionOpen,
	}
}

func TestPolicy_AllClear(t *testing.T) {
	p := NewPolicy(testLimits())
	verdict := p.Evaluate(account(100000, 100, 50), nil, 100000)
	assert.True(t, verdict.OK())
}

func TestPolicy_DailyLossBreach(t *testing.T) {
	p := NewPolicy(testLimits())
	verdict := p.Evaluate(account(100000, -800, -300), nil, 100000)
	assert.False(t, verdict.OK())
	assert.True(t, verdict.Has(model.LimitDailyLoss))
}

func TestPolicy_DailyGainIsNotABreach(t *testing.T) {
	p := NewPolicy(testLimits())
	verdict := p.Evaluate(account(100000, 5000, 0), nil, 100000)
	assert.True(t, verdict.OK())
}

func TestPolicy_PositionSizeBreach(t *testing.T) {
	p := NewPolicy(testLimits())
	// 100 * 110 = 11000 > 10000
	verdict := p.Evaluate(account(1000000, 0, 0), []model.Position{openPos(100, 100, 110, 100)}, 1000000)
	assert.True(t, verdict.Has(model.LimitPositionSize))
	assert.False(t, verdict.Has(model.LimitDailyLoss))
}

func TestPolicy_DrawdownBreach(t *testing.T) {
	p := NewPolicy(testLimits())
	// 峰值120000，当前100000 → 回撤16.7%
	verdict := p.Evaluate(account(100000, 0, 0), nil, 120000)
	assert.True(t, verdict.Has(model.LimitDrawdown))
}

func TestPolicy_HeatBreach(t *testing.T) {
	p := NewPolicy(testLimits())
	positions := []model.Position{
		openPos(10, 100, 100, 4000),
		openPos(-10, 50, 50, 3000),
	}
	// 7000 / 100000 = 7% > 6%
	verdict := p.Evaluate(account(100000, 0, 0), positions, 100000)
	assert.True(t, verdict.Has(model.LimitPortfolioHeat))
}

func TestPolicy_HeatFallsBackToNotional(t *testing.T) {
	p := NewPolicy(testLimits())
	// MaxRisk未给出，用开仓名义价值 10*700=7000
	verdict := p.Evaluate(account(100000, 0, 0), []model.Position{openPos(10, 700, 700, 0)}, 100000)
	assert.True(t, verdict.Has(model.LimitPortfolioHeat))
}

func TestPolicy_ReportsAllBreaches(t *testing.T) {
	p := NewPolicy(testLimits())
	positions := []model.Position{openPos(200, 100, 100, 20000)}
	verdict := p.Evaluate(account(100000, -2000, 0), positions, 130000)

	// 全部违例都要列出来，不能只报第一条
	assert.True(t, verdict.Has(model.LimitDailyLoss))
	assert.True(t, verdict.Has(model.LimitPositionSize))
	assert.True(t, verdict.Has(model.LimitDrawdown))
	assert.True(t, verdict.Has(model.LimitPortfolioHeat))
	assert.Len(t, verdict.Breaches, 4)
}
