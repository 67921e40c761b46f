package account

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"tradedesk/internal/consts"
	"tradedesk/internal/model"
	"tradedesk/pkg/logger"
	"tradedesk/pkg/metrics"
)

// Holder 账户快照的单写者
// 写入方是账户数据源消费协程，读取方（风控评估、接口层）通过原子指针
// 拿到的永远是一份构造完整的快照，不会读到半成品
type Holder struct {
	snap atomic.Pointer[model.AccountSnapshot]

	mu   sync.Mutex
	peak float64 // 净值历史峰值，回撤计算用

	rdb *redis.Client // 可选，给看板层做镜像
}

func NewHolder(rdb *redis.Client) *Holder {
	return &Holder{rdb: rdb}
}

// Publish 整体替换最新快照并更新净值峰值
func (h *Holder) Publish(ctx context.Context, snap model.AccountSnapshot) {
	s := snap
	h.snap.Store(&s)

	h.mu.Lock()
	if snap.NetLiquidation > h.peak {
		h.peak = snap.NetLiquidation
	}
	h.mu.Unlock()

	metrics.Equity.Set(snap.NetLiquidation)

	if h.rdb != nil {
		// 镜像到redis是best effort，失败只记日志
		data, _ := json.Marshal(snap)
		if err := h.rdb.Set(ctx, consts.AccountSnapshotKey, data, consts.RedisExrDefault).Err(); err != nil {
			logger.Warnf("mirror account snapshot to redis failed: %v", err)
		}
	}
}

// Latest 最近一份完整快照
func (h *Holder) Latest() (model.AccountSnapshot, bool) {
	p := h.snap.Load()
	if p == nil {
		return model.AccountSnapshot{}, false
	}
	return *p, true
}

// PeakEquity 净值历史峰值
func (h *Holder) PeakEquity() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.peak
}
