package dao

import (
	"context"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradedesk/internal/model"
	"tradedesk/internal/model/entity"
)

type PositionDao struct {
	db *gorm.DB
}

func NewPositionDao(db *gorm.DB) *PositionDao {
	return &PositionDao{db: db}
}

// Upsert 以position_id为键写入或更新仓位记录
func (d *PositionDao) Upsert(ctx context.Context, pos model.Position) error {
	rec := toPositionEntity(pos)
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "position_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "exit_price", "pnl", "pnl_percent", "exit_time", "updated_at"}),
		}).
		Create(&rec).Error
}

// ListByStatus 查询仓位历史，status为空时返回全部
func (d *PositionDao) ListByStatus(ctx context.Context, status string, limit int) ([]entity.Position, error) {
	var recs []entity.Position
	q := d.db.WithContext(ctx).Order("entry_time DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func toPositionEntity(pos model.Position) entity.Position {
	var contract []byte
	if len(pos.Contract) > 0 {
		contract, _ = json.Marshal(pos.Contract)
	}
	return entity.Position{
		PositionID: pos.ID,
		SignalID:   pos.SignalID,
		Ticker:     pos.Ticker,
		Strategy:   pos.Strategy,
		Quantity:   pos.Quantity,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  pos.ExitPrice,
		Pnl:        pos.Pnl,
		PnlPercent: pos.PnlPercent,
		Status:     string(pos.Status),
		Contract:   contract,
		EntryTime:  pos.EntryTime,
		ExitTime:   pos.ExitTime,
	}
}
