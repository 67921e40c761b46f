package coordinator

import (
	"context"

	"tradedesk/internal/enhancer"
	"tradedesk/internal/feed"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/internal/risk"
	"tradedesk/internal/signal"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
	"tradedesk/pkg/logger"
	"tradedesk/pkg/metrics"
)

// Coordinator 将SignalStore/PositionBook/RiskGate串成对外操作
// 自身不持有任何信号/仓位/风控状态，只负责调用顺序和原子性
type Coordinator struct {
	store    *signal.Store
	book     *position.Book
	gate     *risk.Gate
	prices   *feed.PriceTable
	enhancer enhancer.Annotator // 可为nil，表示不咨询打分服务
}

func New(store *signal.Store, book *position.Book, gate *risk.Gate, prices *feed.PriceTable, ann enhancer.Annotator) *Coordinator {
	return &Coordinator{
		store:    store,
		book:     book,
		gate:     gate,
		prices:   prices,
		enhancer: ann,
	}
}

// CreateSignal 起草信号不走风控闸门
func (c *Coordinator) CreateSignal(ctx context.Context, draft model.SignalDraft) (model.Signal, error) {
	return c.store.Create(draft)
}

// ApproveSignal 审批：先过闸门，再best-effort咨询打分服务，最后迁移状态
// 闸门拦截时不触碰SignalStore
func (c *Coordinator) ApproveSignal(ctx context.Context, id string, quantity float64) (model.Signal, error) {
	if err := c.gate.CheckGate(); err != nil {
		return model.Signal{}, err
	}

	if c.enhancer != nil {
		// 打分服务在临界区之外调用，结果作为普通数据写回
		sig, err := c.store.Get(id)
		if err != nil {
			return model.Signal{}, err
		}
		ann, err := c.enhancer.Enhance(ctx, sig)
		if err != nil {
			metrics.EnhancerFailures.Inc()
			logger.Warnf("enhancer consult failed for signal %s, proceeding without annotation: %v", id, err)
		} else if ann != nil {
			c.store.Annotate(id, ann)
		}
	}

	return c.store.Transition(id, model.SignalApproved, quantity)
}

// RejectSignal 拒绝一条pending/approved信号
func (c *Coordinator) RejectSignal(ctx context.Context, id string) (model.Signal, error) {
	return c.store.Transition(id, model.SignalRejected, 0)
}

// ExecuteSignal 执行：再次过闸门（审批之后状态可能已变），
// 迁移到executed后开仓。开仓失败不回滚信号状态：订单视为已发出，
// 以ReconciliationMismatch上报人工对账，绝不静默重试以免重复执行
func (c *Coordinator) ExecuteSignal(ctx context.Context, id string, quantity float64) (model.Position, error) {
	if err := c.gate.CheckGate(); err != nil {
		return model.Position{}, err
	}

	sig, err := c.store.Transition(id, model.SignalExecuted, quantity)
	if err != nil {
		return model.Position{}, err
	}

	entryPrice := sig.EntryPrice
	if p, ok := c.prices.Get(sig.Ticker); ok {
		entryPrice = p
	}

	pos, err := c.book.Open(sig, sig.Quantity, entryPrice)
	if err != nil {
		logger.Error("signal executed but position open failed, manual reconciliation required",
			logger.Pair("signal_id", id),
			logger.Pair("error", err.Error()))
		return model.Position{}, errors.Wrapf(err, ecode.ReconcileMismatchErr,
			"signal %s executed but position open failed", id)
	}
	return pos, nil
}

// ClosePosition 平仓不过闸门：即便熔断中也永远允许降风险
func (c *Coordinator) ClosePosition(ctx context.Context, id string) (model.Position, error) {
	pos, err := c.book.Get(id)
	if err != nil {
		return model.Position{}, err
	}

	exitPrice := pos.CurrentPrice
	if p, ok := c.prices.Get(pos.Ticker); ok {
		exitPrice = p
	}
	return c.book.Close(id, exitPrice)
}
