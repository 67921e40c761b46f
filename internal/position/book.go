package position

import (
	"math"
	"sort"
	"sync"
	"time"

	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
	"tradedesk/pkg/metrics"
	"tradedesk/utils/uuid"
)

// Book 仓位的唯一持有者
// 同一信号的开仓串行化，保证一个信号最多产生一个未平仓位
type Book struct {
	mu        sync.RWMutex
	positions map[string]*model.Position
	bySignal  map[string]string // signalID → 未平仓位id
	now       func() time.Time
}

func NewBook() *Book {
	return &Book{
		positions: make(map[string]*model.Position),
		bySignal:  make(map[string]string),
		now:       time.Now,
	}
}

// Open 由已执行的信号开仓
// 同一信号已有未平仓位时返回DuplicateOpen，防止重复执行落两笔仓位
func (b *Book) Open(sig model.Signal, quantity, entryPrice float64) (model.Position, error) {
	if quantity == 0 {
		return model.Position{}, errors.WithCode(ecode.ValidateErr, "open quantity must be nonzero")
	}

	// 空头数量为负
	signed := math.Abs(quantity)
	if sig.Side == model.Sell {
		signed = -signed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if openID, ok := b.bySignal[sig.ID]; ok {
		return model.Position{}, errors.WithCode(ecode.DuplicateOpenErr,
			"signal %s already has open position %s", sig.ID, openID)
	}

	pos := &model.Position{
		ID:           uuid.GenUUID(),
		SignalID:     sig.ID,
		Ticker:       sig.Ticker,
		Strategy:     sig.Strategy,
		Quantity:     signed,
		MaxRisk:      sig.MaxRisk,
		Status:       model.PositionOpen,
		EntryPrice:   entryPrice,
		CurrentPrice: entryPrice,
		EntryTime:    b.now(),
	}
	recalc(pos, entryPrice)

	b.positions[pos.ID] = pos
	b.bySignal[sig.ID] = pos.ID
	metrics.OpenPositions.Inc()
	return *pos, nil
}

// UpdateMarkPrice 行情推送，刷新该ticker全部未平仓位的浮动盈亏
// 没有对应仓位时是无操作
func (b *Book) UpdateMarkPrice(ticker string, price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, pos := range b.positions {
		if pos.Status != model.PositionOpen || pos.Ticker != ticker {
			continue
		}
		recalc(pos, price)
	}
}

// Close 平仓并落实盈亏
func (b *Book) Close(id string, exitPrice float64) (model.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos, ok := b.positions[id]
	if !ok {
		return model.Position{}, errors.WithCode(ecode.NotFoundErr, "position %s not found", id)
	}
	if pos.Status == model.PositionClosed {
		return model.Position{}, errors.WithCode(ecode.AlreadyClosedErr, "position %s already closed", id)
	}

	recalc(pos, exitPrice)
	pos.ExitPrice = exitPrice
	pos.Status = model.PositionClosed
	now := b.now()
	pos.ExitTime = &now
	delete(b.bySignal, pos.SignalID)
	metrics.OpenPositions.Dec()
	return *pos, nil
}

// Get 返回仓位快照
func (b *Book) Get(id string) (model.Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	pos, ok := b.positions[id]
	if !ok {
		return model.Position{}, errors.WithCode(ecode.NotFoundErr, "position %s not found", id)
	}
	return *pos, nil
}

// OpenPositions 未平仓位快照，非实时视图，调用方需要新数据时重新获取
func (b *Book) OpenPositions() []model.Position {
	return b.snapshot(func(p *model.Position) bool { return p.Status == model.PositionOpen })
}

// All 全部仓位快照
func (b *Book) All() []model.Position {
	return b.snapshot(func(p *model.Position) bool { return true })
}

// Closed 已平仓位快照
func (b *Book) Closed() []model.Position {
	return b.snapshot(func(p *model.Position) bool { return p.Status == model.PositionClosed })
}

func (b *Book) snapshot(keep func(*model.Position) bool) []model.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Position, 0, len(b.positions))
	for _, pos := range b.positions {
		if keep(pos) {
			out = append(out, *pos)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	return out
}

// recalc 盈亏始终由价格和带符号数量推导
// pnl = (current - entry) * quantity，空头由负数量自然翻转符号
// entry为0时百分比定义为0，避免NaN向上传播
func recalc(pos *model.Position, price float64) {
	pos.CurrentPrice = price
	pos.Pnl = (price - pos.EntryPrice) * pos.Quantity
	if pos.EntryPrice == 0 {
		pos.PnlPercent = 0
		return
	}
	pos.PnlPercent = pos.Pnl / (pos.EntryPrice * math.Abs(pos.Quantity)) * 100
}
