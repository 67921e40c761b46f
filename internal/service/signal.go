package service

import (
	"context"

	"tradedesk/internal/coordinator"
	"tradedesk/internal/dao"
	"tradedesk/internal/model"
	"tradedesk/internal/signal"
	"tradedesk/pkg/logger"
)

// SignalService 信号操作入口：编排器负责语义，这里补充历史留存
type SignalService struct {
	coord *coordinator.Coordinator
	store *signal.Store
	d     *dao.SignalDao   // 可为nil（无数据库部署）
	pd    *dao.PositionDao // 执行开仓的落库钩子，可为nil
}

func NewSignalService(coord *coordinator.Coordinator, store *signal.Store, d *dao.SignalDao, pd *dao.PositionDao) *SignalService {
	return &SignalService{coord: coord, store: store, d: d, pd: pd}
}

// journal 落库是write-behind，失败只记日志，不影响内存态结果
func (s *SignalService) journal(ctx context.Context, sig model.Signal) {
	if s.d == nil {
		return
	}
	if err := s.d.Upsert(ctx, sig); err != nil {
		logger.Errorf("journal signal %s failed: %v", sig.ID, err)
	}
}

func (s *SignalService) Create(ctx context.Context, draft model.SignalDraft) (model.Signal, error) {
	sig, err := s.coord.CreateSignal(ctx, draft)
	if err != nil {
		return model.Signal{}, err
	}
	s.journal(ctx, sig)
	return sig, nil
}

func (s *SignalService) Get(ctx context.Context, id string) (model.Signal, error) {
	return s.store.Get(id)
}

func (s *SignalService) List(ctx context.Context, state string) []model.Signal {
	return s.store.List(model.SignalState(state))
}

func (s *SignalService) Approve(ctx context.Context, id string, quantity float64) (model.Signal, error) {
	sig, err := s.coord.ApproveSignal(ctx, id, quantity)
	if err != nil {
		return model.Signal{}, err
	}
	s.journal(ctx, sig)
	return sig, nil
}

func (s *SignalService) Reject(ctx context.Context, id string) (model.Signal, error) {
	sig, err := s.coord.RejectSignal(ctx, id)
	if err != nil {
		return model.Signal{}, err
	}
	s.journal(ctx, sig)
	return sig, nil
}

// Execute 成功时返回新开仓位；信号本身的终态由store持有
func (s *SignalService) Execute(ctx context.Context, id string, quantity float64) (model.Position, error) {
	pos, err := s.coord.ExecuteSignal(ctx, id, quantity)
	// 无论成败，信号状态都可能已推进，读一次落库
	if sig, gerr := s.store.Get(id); gerr == nil {
		s.journal(ctx, sig)
	}
	if err == nil && s.pd != nil {
		if jerr := s.pd.Upsert(ctx, pos); jerr != nil {
			logger.Errorf("journal position %s failed: %v", pos.ID, jerr)
		}
	}
	return pos, err
}
