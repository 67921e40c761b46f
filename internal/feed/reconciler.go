package feed

import (
	"context"
	"sync/atomic"
	"time"

	"tradedesk/internal/account"
	"tradedesk/internal/position"
	"tradedesk/internal/risk"
	"tradedesk/pkg/logger"
)

// Reconciler 周期性风控复核
// 固定间隔运行，上一轮未结束时本轮直接丢弃（不排队），
// 账户数据源变慢时不会积压
type Reconciler struct {
	policy   *risk.Policy
	gate     *risk.Gate
	book     *position.Book
	holder   *account.Holder
	interval time.Duration

	running atomic.Bool
	kickCh  chan struct{}
}

func NewReconciler(policy *risk.Policy, gate *risk.Gate, book *position.Book, holder *account.Holder, interval time.Duration) *Reconciler {
	return &Reconciler{
		policy:   policy,
		gate:     gate,
		book:     book,
		holder:   holder,
		interval: interval,
		kickCh:   make(chan struct{}, 1),
	}
}

// Kick 请求一次立即复核（行情/账户推送到达时调用），满了就丢
func (r *Reconciler) Kick() {
	select {
	case r.kickCh <- struct{}{}:
	default:
	}
}

// Run 阻塞运行直到ctx结束
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Infof("risk reconciler stopped")
			return
		case <-ticker.C:
			r.runOnce()
		case <-r.kickCh:
			r.runOnce()
		}
	}
}

// RunOnce 立即执行一轮复核，测试和推送路径共用
func (r *Reconciler) RunOnce() { r.runOnce() }

func (r *Reconciler) runOnce() {
	if !r.running.CompareAndSwap(false, true) {
		// 上一轮还没结束，丢弃本轮
		return
	}
	defer r.running.Store(false)

	snap, ok := r.holder.Latest()
	if !ok {
		// 还没有账户快照，无从评估
		return
	}
	verdict := r.policy.Evaluate(snap, r.book.OpenPositions(), r.holder.PeakEquity())
	r.gate.Reconcile(verdict)
}
