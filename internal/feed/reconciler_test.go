package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/account"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/internal/risk"
)

func newTestReconciler(t *testing.T) (*Reconciler, *risk.Gate, *account.Holder, *position.Book) {
	t.Helper()
	limits := model.RiskLimits{
		DailyLossLimit:     1000,
		MaxPositionSize:    10000,
		MaxDrawdownLimit:   0.15,
		PortfolioHeatLimit: 0.06,
	}
	gate := risk.NewGate(limits)
	book := position.NewBook()
	holder := account.NewHolder(nil)
	r := NewReconciler(risk.NewPolicy(limits), gate, book, holder, time.Minute)
	return r, gate, holder, book
}

func TestReconciler_NoSnapshotIsNoop(t *testing.T) {
	r, gate, _, _ := newTestReconciler(t)
	r.RunOnce()
	assert.NoError(t, gate.CheckGate())
}

func TestReconciler_DailyLossTripsEmergencyStop(t *testing.T) {
	r, gate, holder, _ := newTestReconciler(t)

	holder.Publish(context.Background(), model.AccountSnapshot{
		NetLiquidation: 100000,
		RealizedPnl:    -1500,
	})
	r.RunOnce()

	status := gate.Status()
	assert.True(t, status.EmergencyStop)
	assert.True(t, status.TradingPaused)
}

func TestReconciler_HeatBreachOnlyPauses(t *testing.T) {
	r, gate, holder, book := newTestReconciler(t)

	sig := model.Signal{
		ID: "s1", Ticker: "AAPL", Side: model.Buy, MaxRisk: 7000,
		State: model.SignalExecuted,
	}
	_, err := book.Open(sig, 10, 100)
	require.NoError(t, err)

	// 热度 7000/100000 = 7% > 6%
	holder.Publish(context.Background(), model.AccountSnapshot{NetLiquidation: 100000})
	r.RunOnce()

	status := gate.Status()
	assert.False(t, status.EmergencyStop)
	assert.True(t, status.TradingPaused)
}

func TestReconciler_DrawdownUsesPeakEquity(t *testing.T) {
	r, gate, holder, _ := newTestReconciler(t)
	ctx := context.Background()

	holder.Publish(ctx, model.AccountSnapshot{NetLiquidation: 120000})
	r.RunOnce()
	assert.NoError(t, gate.CheckGate())

	// 峰值120000，回落到100000 → 回撤16.7% > 15%
	holder.Publish(ctx, model.AccountSnapshot{NetLiquidation: 100000})
	r.RunOnce()
	assert.True(t, gate.Status().EmergencyStop)
}

func TestReconciler_KickDoesNotBlock(t *testing.T) {
	r, _, _, _ := newTestReconciler(t)
	// 没有消费者时多次Kick也不能阻塞调用方
	for i := 0; i < 10; i++ {
		r.Kick()
	}
}
