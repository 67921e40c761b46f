package coordinator

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/enhancer"
	"tradedesk/internal/feed"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/internal/risk"
	"tradedesk/internal/signal"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
)

type stubAnnotator struct {
	ann   *model.Annotation
	err   error
	calls int
}

func (s *stubAnnotator) Enhance(ctx context.Context, sig model.Signal) (*model.Annotation, error) {
	s.calls++
	return s.ann, s.err
}

var _ enhancer.Annotator = (*stubAnnotator)(nil)

type deps struct {
	store  *signal.Store
	book   *position.Book
	gate   *risk.Gate
	prices *feed.PriceTable
}

func newCoordinator(t *testing.T, ann enhancer.Annotator) (*Coordinator, deps) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	d := deps{
		store: signal.NewStore(node),
		book:  position.NewBook(),
		gate: risk.NewGate(model.RiskLimits{
			DailyLossLimit:     1000,
			MaxPositionSize:    10000,
			MaxDrawdownLimit:   0.15,
			PortfolioHeatLimit: 0.06,
		}),
		prices: feed.NewPriceTable(),
	}
	return New(d.store, d.book, d.gate, d.prices, ann), d
}

func draft() model.SignalDraft {
	return model.SignalDraft{
		Ticker:     "AAPL",
		Strategy:   "channel-breakout",
		Side:       model.Buy,
		Sentiment:  0.6,
		Confidence: 0.8,
		EntryPrice: 100,
		Target:     110,
		MaxRisk:    500,
	}
}

func TestCoordinator_ApproveExecuteClose(t *testing.T) {
	c, d := newCoordinator(t, nil)
	ctx := context.Background()

	sig, err := c.CreateSignal(ctx, draft())
	require.NoError(t, err)

	approved, err := c.ApproveSignal(ctx, sig.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, model.SignalApproved, approved.State)
	assert.Equal(t, 5.0, approved.Quantity)

	// 执行时用行情表里的最新价开仓
	d.prices.Set("AAPL", 102)
	pos, err := c.ExecuteSignal(ctx, sig.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, sig.ID, pos.SignalID)
	assert.Equal(t, 102.0, pos.EntryPrice)
	assert.Equal(t, 5.0, pos.Quantity)

	got, err := c.store.Get(sig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SignalExecuted, got.State)

	d.prices.Set("AAPL", 105)
	closed, err := c.ClosePosition(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PositionClosed, closed.Status)
	assert.Equal(t, 105.0, closed.ExitPrice)
	assert.Equal(t, 15.0, closed.Pnl)
}

func TestCoordinator_ExecuteFallsBackToSignalEntryPrice(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	_, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)

	// 行情表里没有AAPL，用信号自带的entry price
	pos, err := c.ExecuteSignal(ctx, sig.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pos.EntryPrice)
}

func TestCoordinator_GateBlocksApproveWithoutMutation(t *testing.T) {
	c, d := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	d.gate.PauseTrading()

	_, err := c.ApproveSignal(ctx, sig.ID, 5)
	assert.True(t, errors.IsCode(err, ecode.TradingHaltedErr))

	// 闸门拦截时信号保持pending，数量未被锁定
	got, err := c.store.Get(sig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SignalPending, got.State)
	assert.Equal(t, 0.0, got.Quantity)

	// 恢复后照常审批
	d.gate.ResumeTrading()
	_, err = c.ApproveSignal(ctx, sig.ID, 5)
	assert.NoError(t, err)
}

func TestCoordinator_GateBlocksExecute(t *testing.T) {
	c, d := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	_, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)

	d.gate.EmergencyStop()
	_, err = c.ExecuteSignal(ctx, sig.ID, 1)
	assert.True(t, errors.IsCode(err, ecode.TradingHaltedErr))

	got, _ := c.store.Get(sig.ID)
	assert.Equal(t, model.SignalApproved, got.State)
}

func TestCoordinator_CreateAndCloseBypassGate(t *testing.T) {
	c, d := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	_, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)
	pos, err := c.ExecuteSignal(ctx, sig.ID, 1)
	require.NoError(t, err)

	d.gate.EmergencyStop()

	// 熔断中仍可起草新信号、平掉已有仓位
	_, err = c.CreateSignal(ctx, draft())
	assert.NoError(t, err)

	closed, err := c.ClosePosition(ctx, pos.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.PositionClosed, closed.Status)
}

func TestCoordinator_EnhancerAnnotatesSignal(t *testing.T) {
	stub := &stubAnnotator{ann: &model.Annotation{Pattern: "bull-flag", Score: 0.92, Source: "ml-scorer"}}
	c, _ := newCoordinator(t, stub)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	approved, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	require.NotNil(t, approved.Annotation)
	assert.Equal(t, "bull-flag", approved.Annotation.Pattern)
}

func TestCoordinator_EnhancerFailureDoesNotBlockApproval(t *testing.T) {
	stub := &stubAnnotator{err: fmt.Errorf("connection refused")}
	c, _ := newCoordinator(t, stub)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	approved, err := c.ApproveSignal(ctx, sig.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.SignalApproved, approved.State)
	assert.Nil(t, approved.Annotation)
}

func TestCoordinator_RejectSignal(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	rejected, err := c.RejectSignal(ctx, sig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SignalRejected, rejected.State)

	_, err = c.ApproveSignal(ctx, sig.ID, 1)
	assert.True(t, errors.IsCode(err, ecode.AlreadyTerminalErr))
}

func TestCoordinator_DuplicateExecute(t *testing.T) {
	c, _ := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	_, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)
	_, err = c.ExecuteSignal(ctx, sig.ID, 1)
	require.NoError(t, err)

	_, err = c.ExecuteSignal(ctx, sig.ID, 1)
	assert.True(t, errors.IsCode(err, ecode.AlreadyTerminalErr))
}

func TestCoordinator_OpenFailureReportsMismatch(t *testing.T) {
	c, d := newCoordinator(t, nil)
	ctx := context.Background()

	sig, _ := c.CreateSignal(ctx, draft())
	_, err := c.ApproveSignal(ctx, sig.ID, 1)
	require.NoError(t, err)

	// 同一信号已经有仓位，开仓必然失败
	execSig := sig
	execSig.State = model.SignalExecuted
	_, err = d.book.Open(execSig, 1, 100)
	require.NoError(t, err)

	_, err = c.ExecuteSignal(ctx, sig.ID, 1)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.ReconcileMismatchErr))

	// 信号状态不回滚，留给人工对账
	got, _ := c.store.Get(sig.ID)
	assert.Equal(t, model.SignalExecuted, got.State)
}
