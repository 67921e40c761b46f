package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
)

func TestGate_DefaultOpen(t *testing.T) {
	g := NewGate(testLimits())
	assert.NoError(t, g.CheckGate())

	status := g.Status()
	assert.False(t, status.EmergencyStop)
	assert.False(t, status.TradingPaused)
	assert.Equal(t, testLimits(), status.Limits)
}

func TestGate_PauseResume(t *testing.T) {
	g := NewGate(testLimits())

	status := g.PauseTrading()
	assert.True(t, status.TradingPaused)
	assert.False(t, status.EmergencyStop)

	err := g.CheckGate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.TradingHaltedErr))

	status = g.ResumeTrading()
	assert.False(t, status.TradingPaused)
	assert.NoError(t, g.CheckGate())
}

func TestGate_EmergencyStopLatches(t *testing.T) {
	g := NewGate(testLimits())

	status := g.EmergencyStop()
	assert.True(t, status.EmergencyStop)
	assert.True(t, status.TradingPaused)

	// resume解不开熔断
	status = g.ResumeTrading()
	assert.True(t, status.EmergencyStop)
	assert.True(t, status.TradingPaused)
	assert.True(t, errors.IsCode(g.CheckGate(), ecode.TradingHaltedErr))
}

func TestGate_ReconcileOKIsNoop(t *testing.T) {
	g := NewGate(testLimits())
	status := g.Reconcile(model.RiskVerdict{})
	assert.False(t, status.EmergencyStop)
	assert.False(t, status.TradingPaused)
	assert.NoError(t, g.CheckGate())
}

func TestGate_ReconcileHardBreachTripsEmergencyStop(t *testing.T) {
	for _, limit := range []string{model.LimitDailyLoss, model.LimitDrawdown} {
		g := NewGate(testLimits())
		verdict := model.RiskVerdict{Breaches: []model.Breach{{Limit: limit}}}

		status := g.Reconcile(verdict)
		assert.True(t, status.EmergencyStop, "limit=%s", limit)
		assert.True(t, status.TradingPaused, "limit=%s", limit)
	}
}

func TestGate_ReconcileSoftBreachOnlyPauses(t *testing.T) {
	for _, limit := range []string{model.LimitPositionSize, model.LimitPortfolioHeat} {
		g := NewGate(testLimits())
		verdict := model.RiskVerdict{Breaches: []model.Breach{{Limit: limit}}}

		status := g.Reconcile(verdict)
		assert.False(t, status.EmergencyStop, "limit=%s", limit)
		assert.True(t, status.TradingPaused, "limit=%s", limit)

		// 软暂停可以人工恢复
		status = g.ResumeTrading()
		assert.False(t, status.TradingPaused, "limit=%s", limit)
	}
}

func TestGate_ReconcileNeverResumes(t *testing.T) {
	g := NewGate(testLimits())
	g.Reconcile(model.RiskVerdict{Breaches: []model.Breach{{Limit: model.LimitPortfolioHeat}}})

	// 违例消失后闸门保持关闭，恢复必须显式发起
	status := g.Reconcile(model.RiskVerdict{})
	assert.True(t, status.TradingPaused)
}
