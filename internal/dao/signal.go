package dao

import (
	"context"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradedesk/internal/model"
	"tradedesk/internal/model/entity"
)

type SignalDao struct {
	db *gorm.DB
}

func NewSignalDao(db *gorm.DB) *SignalDao {
	return &SignalDao{db: db}
}

// Upsert 以signal_id为键写入或更新一条信号记录
func (d *SignalDao) Upsert(ctx context.Context, sig model.Signal) error {
	rec := toSignalEntity(sig)
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "signal_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "quantity", "annotation_json", "updated_at"}),
		}).
		Create(&rec).Error
}

// GetBySignalID 查询单条历史记录
func (d *SignalDao) GetBySignalID(ctx context.Context, signalID string) (*entity.Signal, error) {
	var rec entity.Signal
	err := d.db.WithContext(ctx).Where("signal_id = ?", signalID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByState 按状态查询历史信号，state为空时返回全部
func (d *SignalDao) ListByState(ctx context.Context, state string, limit int) ([]entity.Signal, error) {
	var recs []entity.Signal
	q := d.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if state != "" {
		q = q.Where("state = ?", state)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func toSignalEntity(sig model.Signal) entity.Signal {
	var annotation []byte
	if sig.Annotation != nil {
		annotation, _ = json.Marshal(sig.Annotation)
	}
	return entity.Signal{
		SignalID:   sig.ID,
		Ticker:     sig.Ticker,
		Strategy:   sig.Strategy,
		Side:       string(sig.Side),
		Sentiment:  sig.Sentiment,
		Confidence: sig.Confidence,
		EntryPrice: sig.EntryPrice,
		Target:     sig.Target,
		MaxRisk:    sig.MaxRisk,
		Reasoning:  sig.Reasoning,
		State:      string(sig.State),
		Quantity:   sig.Quantity,
		Annotation: annotation,
		Expiry:     sig.Expiry,
		CreatedAt:  sig.CreatedAt,
	}
}
