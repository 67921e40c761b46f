package service

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"tradedesk/internal/consts"
	"tradedesk/internal/model"
	"tradedesk/internal/risk"
	"tradedesk/pkg/logger"
)

// RiskService 风控闸门的操作入口
type RiskService struct {
	gate *risk.Gate
	rdb  *redis.Client // 可为nil
}

func NewRiskService(gate *risk.Gate, rdb *redis.Client) *RiskService {
	return &RiskService{gate: gate, rdb: rdb}
}

func (s *RiskService) mirror(ctx context.Context, status model.RiskStatus) {
	if s.rdb == nil {
		return
	}
	data, _ := json.Marshal(status)
	if err := s.rdb.Set(ctx, consts.RiskStatusKey, data, consts.RedisExrDefault).Err(); err != nil {
		logger.Debugf("mirror risk status to redis failed: %v", err)
	}
}

func (s *RiskService) Status(ctx context.Context) model.RiskStatus {
	return s.gate.Status()
}

// EmergencyStop 运维手动熔断，高危操作记录审计日志
func (s *RiskService) EmergencyStop(ctx context.Context) model.RiskStatus {
	logger.Error("EMERGENCY STOP triggered by operator")
	status := s.gate.EmergencyStop()
	s.mirror(ctx, status)
	return status
}

func (s *RiskService) PauseTrading(ctx context.Context) model.RiskStatus {
	logger.Warn("trading paused by operator")
	status := s.gate.PauseTrading()
	s.mirror(ctx, status)
	return status
}

func (s *RiskService) ResumeTrading(ctx context.Context) model.RiskStatus {
	logger.Infof("trading resume requested by operator")
	status := s.gate.ResumeTrading()
	s.mirror(ctx, status)
	return status
}
