package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Signal 信号落库记录，内存状态为准，这里做历史留存
type Signal struct {
	ID         uint                  `gorm:"column:id;primary_key;autoIncrement" json:"id"`
	SignalID   string                `gorm:"column:signal_id;uniqueIndex;size:32" json:"signal_id"`
	Ticker     string                `gorm:"column:ticker;index;size:16" json:"ticker"`
	Strategy   string                `gorm:"column:strategy;size:64" json:"strategy"`
	Side       string                `gorm:"column:side;size:8" json:"side"`
	Sentiment  float64               `gorm:"column:sentiment;type:decimal(6,4)" json:"sentiment"`
	Confidence float64               `gorm:"column:confidence;type:decimal(6,4)" json:"confidence"`
	EntryPrice float64               `gorm:"column:entry_price;type:decimal(15,6)" json:"entry_price"`
	Target     float64               `gorm:"column:target_price;type:decimal(15,6)" json:"target_price"`
	MaxRisk    float64               `gorm:"column:max_risk;type:decimal(15,2)" json:"max_risk"`
	Reasoning  string                `gorm:"column:reasoning;type:text" json:"reasoning"`
	State      string                `gorm:"column:state;index;size:16" json:"state"`
	Quantity   float64               `gorm:"column:quantity;type:decimal(15,4)" json:"quantity"`
	Annotation datatypes.JSON        `gorm:"column:annotation_json" json:"annotation"` // ML附注原文
	Expiry     time.Time             `gorm:"column:expiry" json:"expiry"`
	CreatedAt  time.Time             `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  soft_delete.DeletedAt `gorm:"column:deleted_at;softDelete:flag" json:"-"`
}

func (Signal) TableName() string {
	return "signals"
}
