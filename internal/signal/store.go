package signal

import (
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
	"tradedesk/pkg/metrics"
)

// Store 信号的唯一持有者，负责生命周期状态机
// 同一信号的迁移串行化，不同信号互不阻塞
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	node    *snowflake.Node
	now     func() time.Time
}

// entry 每个信号独立一把锁，迁移时只锁自己
type entry struct {
	mu  sync.Mutex
	sig model.Signal
}

func NewStore(node *snowflake.Node) *Store {
	return &Store{
		entries: make(map[string]*entry),
		node:    node,
		now:     time.Now,
	}
}

// Create 校验draft并生成pending信号
func (s *Store) Create(draft model.SignalDraft) (model.Signal, error) {
	if draft.Ticker == "" {
		return model.Signal{}, errors.WithCode(ecode.InvalidSignalErr, "ticker is required")
	}
	if draft.Confidence < 0 || draft.Confidence > 1 {
		return model.Signal{}, errors.WithCode(ecode.InvalidSignalErr, "confidence %v out of range [0,1]", draft.Confidence)
	}
	if draft.Side != model.Buy && draft.Side != model.Sell {
		return model.Signal{}, errors.WithCode(ecode.InvalidSignalErr, "side must be buy or sell, got %q", draft.Side)
	}

	sig := model.Signal{
		ID:         s.node.Generate().String(),
		Ticker:     draft.Ticker,
		Strategy:   draft.Strategy,
		Side:       draft.Side,
		Sentiment:  draft.Sentiment,
		Confidence: draft.Confidence,
		EntryPrice: draft.EntryPrice,
		Target:     draft.Target,
		MaxRisk:    draft.MaxRisk,
		Expiry:     draft.Expiry,
		Reasoning:  draft.Reasoning,
		State:      model.SignalPending,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.entries[sig.ID] = &entry{sig: sig}
	s.mu.Unlock()
	return sig, nil
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.WithCode(ecode.NotFoundErr, "signal %s not found", id)
	}
	return e, nil
}

// Get 返回信号的当前快照
func (s *Store) Get(id string) (model.Signal, error) {
	e, err := s.lookup(id)
	if err != nil {
		return model.Signal{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sig, nil
}

// Annotate 挂上ML附注，不影响状态机
func (s *Store) Annotate(id string, ann *model.Annotation) {
	e, err := s.lookup(id)
	if err != nil {
		return
	}
	e.mu.Lock()
	e.sig.Annotation = ann
	e.mu.Unlock()
}

// Transition 执行一次状态迁移
// 终态上的任何迁移请求返回AlreadyTerminal，便于调用方识别重复提交
func (s *Store) Transition(id string, target model.SignalState, quantity float64) (model.Signal, error) {
	e, err := s.lookup(id)
	if err != nil {
		return model.Signal{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sig := &e.sig
	if sig.State.Terminal() {
		return model.Signal{}, errors.WithCode(ecode.AlreadyTerminalErr,
			"signal %s already %s", id, sig.State)
	}

	now := s.now()
	switch target {
	case model.SignalApproved:
		if sig.State != model.SignalPending {
			return model.Signal{}, errors.WithCode(ecode.InvalidTransitionErr,
				"cannot approve signal %s in state %s", id, sig.State)
		}
		if !sig.Expiry.IsZero() && now.After(sig.Expiry) {
			return model.Signal{}, errors.WithCode(ecode.ValidateErr,
				"signal %s expired at %s", id, sig.Expiry.Format(time.RFC3339))
		}
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return model.Signal{}, errors.WithCode(ecode.ValidateErr,
				"approve quantity must be >= 1, got %v", quantity)
		}
		sig.State = model.SignalApproved
		sig.Quantity = quantity
		sig.ApprovedAt = &now

	case model.SignalExecuted:
		if sig.State != model.SignalApproved {
			return model.Signal{}, errors.WithCode(ecode.InvalidTransitionErr,
				"cannot execute signal %s in state %s", id, sig.State)
		}
		// 数量在审批时锁定，执行侧不一致按硬错误处理
		if quantity != 0 && quantity != sig.Quantity {
			return model.Signal{}, errors.WithCode(ecode.ValidateErr,
				"execute quantity %v does not match approved quantity %v", quantity, sig.Quantity)
		}
		sig.State = model.SignalExecuted
		sig.ExecutedAt = &now

	case model.SignalRejected:
		sig.State = model.SignalRejected
		sig.RejectedAt = &now

	default:
		return model.Signal{}, errors.WithCode(ecode.InvalidTransitionErr,
			"unsupported target state %q", target)
	}

	metrics.SignalTransitions.WithLabelValues(string(target)).Inc()
	return *sig, nil
}

// List 返回全部信号快照，按创建时间倒序
// state为空时不过滤
func (s *Store) List(state model.SignalState) []model.Signal {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]model.Signal, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		sig := e.sig
		e.mu.Unlock()
		if state != "" && sig.State != state {
			continue
		}
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
