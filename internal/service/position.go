package service

import (
	"context"

	"tradedesk/internal/coordinator"
	"tradedesk/internal/dao"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/pkg/logger"
)

// PositionService 仓位查询与平仓入口
type PositionService struct {
	coord *coordinator.Coordinator
	book  *position.Book
	d     *dao.PositionDao // 可为nil
}

func NewPositionService(coord *coordinator.Coordinator, book *position.Book, d *dao.PositionDao) *PositionService {
	return &PositionService{coord: coord, book: book, d: d}
}

func (s *PositionService) journal(ctx context.Context, pos model.Position) {
	if s.d == nil {
		return
	}
	if err := s.d.Upsert(ctx, pos); err != nil {
		logger.Errorf("journal position %s failed: %v", pos.ID, err)
	}
}

// List status: open（默认）/ closed / all
func (s *PositionService) List(ctx context.Context, status string) []model.Position {
	switch status {
	case "all":
		return s.book.All()
	case string(model.PositionClosed):
		return s.book.Closed()
	default:
		return s.book.OpenPositions()
	}
}

func (s *PositionService) Close(ctx context.Context, id string) (model.Position, error) {
	pos, err := s.coord.ClosePosition(ctx, id)
	if err != nil {
		return model.Position{}, err
	}
	s.journal(ctx, pos)
	return pos, nil
}
