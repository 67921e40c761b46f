package feed

import "sync"

// PriceTable 各ticker最新标记价格
// 单写者（行情消费协程），多读者（执行/平仓定价）
type PriceTable struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewPriceTable() *PriceTable {
	return &PriceTable{prices: make(map[string]float64)}
}

func (t *PriceTable) Set(ticker string, price float64) {
	t.mu.Lock()
	t.prices[ticker] = price
	t.mu.Unlock()
}

func (t *PriceTable) Get(ticker string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.prices[ticker]
	return p, ok
}

// Snapshot 全量拷贝，ws广播用
func (t *PriceTable) Snapshot() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]float64, len(t.prices))
	for k, v := range t.prices {
		out[k] = v
	}
	return out
}
