package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Position 仓位落库记录
type Position struct {
	ID         uint                  `gorm:"column:id;primary_key;autoIncrement" json:"id"`
	PositionID string                `gorm:"column:position_id;uniqueIndex;size:40" json:"position_id"`
	SignalID   string                `gorm:"column:signal_id;index;size:32" json:"signal_id"` // 弱引用，仅回查
	Ticker     string                `gorm:"column:ticker;index;size:16" json:"ticker"`
	Strategy   string                `gorm:"column:strategy;size:64" json:"strategy"`
	Quantity   float64               `gorm:"column:quantity;type:decimal(15,4)" json:"quantity"`
	EntryPrice float64               `gorm:"column:entry_price;type:decimal(15,6)" json:"entry_price"`
	ExitPrice  float64               `gorm:"column:exit_price;type:decimal(15,6)" json:"exit_price"`
	Pnl        float64               `gorm:"column:pnl;type:decimal(15,2)" json:"pnl"`
	PnlPercent float64               `gorm:"column:pnl_percent;type:decimal(8,4)" json:"pnl_percent"`
	Status     string                `gorm:"column:status;index;size:8" json:"status"`
	Contract   datatypes.JSON        `gorm:"column:contract_json" json:"contract"` // 合约元数据原文
	EntryTime  time.Time             `gorm:"column:entry_time" json:"entry_time"`
	ExitTime   *time.Time            `gorm:"column:exit_time" json:"exit_time"`
	CreatedAt  time.Time             `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  soft_delete.DeletedAt `gorm:"column:deleted_at;softDelete:flag" json:"-"`
}

func (Position) TableName() string {
	return "positions"
}
