package model

import "time"

// 信号生命周期状态机：pending → approved → executed
//                    pending|approved → rejected
// executed/rejected 是终态，只能向前流转
type SignalState string

const (
	SignalPending  SignalState = "pending"
	SignalApproved SignalState = "approved"
	SignalExecuted SignalState = "executed"
	SignalRejected SignalState = "rejected"
)

// Terminal 是否终态
func (s SignalState) Terminal() bool {
	return s == SignalExecuted || s == SignalRejected
}

func (s SignalState) Valid() bool {
	switch s {
	case SignalPending, SignalApproved, SignalExecuted, SignalRejected:
		return true
	}
	return false
}

type SignalSide string

const (
	Buy  SignalSide = "buy"
	Sell SignalSide = "sell"
)

// Annotation ML打分服务返回的附加信息，缺失不影响审批流程
type Annotation struct {
	Pattern    string  `json:"pattern"`
	Score      float64 `json:"score"`
	Source     string  `json:"source"`
	Commentary string  `json:"commentary,omitempty"`
}

// Signal 一条待审批的交易信号
type Signal struct {
	ID         string      `json:"signal_id"`
	Ticker     string      `json:"ticker"`
	Strategy   string      `json:"strategy"`
	Side       SignalSide  `json:"side"`
	Sentiment  float64     `json:"sentiment"`  // 期权流情绪 -1~1
	Confidence float64     `json:"confidence"` // 0~1
	EntryPrice float64     `json:"entry_price"`
	Target     float64     `json:"target_price"`
	MaxRisk    float64     `json:"max_risk"` // 该笔信号允许承担的最大亏损金额
	Expiry     time.Time   `json:"expiry"`
	Reasoning  string      `json:"reasoning"`
	Annotation *Annotation `json:"annotation,omitempty"`

	State    SignalState `json:"state"`
	Quantity float64     `json:"quantity"` // 审批时锁定，执行时必须一致

	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

// SignalDraft 创建信号的请求体
type SignalDraft struct {
	Ticker     string     `json:"ticker" binding:"required,ticker"`
	Strategy   string     `json:"strategy" binding:"required"`
	Side       SignalSide `json:"side" binding:"required,oneof=buy sell"`
	Sentiment  float64    `json:"sentiment" binding:"gte=-1,lte=1"`
	Confidence float64    `json:"confidence" binding:"gte=0,lte=1"`
	EntryPrice float64    `json:"entry_price" binding:"gte=0"`
	Target     float64    `json:"target_price" binding:"gte=0"`
	MaxRisk    float64    `json:"max_risk" binding:"gte=0"`
	Expiry     time.Time  `json:"expiry"`
	Reasoning  string     `json:"reasoning"`
}

// QuantityReq 审批/执行请求体，quantity缺省为1
type QuantityReq struct {
	Quantity float64 `json:"quantity" binding:"gte=0"`
}

type SignalListReq struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved executed rejected"`
}
