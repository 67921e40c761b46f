package riskctl

import (
	"github.com/gin-gonic/gin"

	"tradedesk/internal/service"
	"tradedesk/pkg/response"
)

type RiskHandler struct {
	riskService *service.RiskService
}

func NewRiskHandler(riskService *service.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

func (rh *RiskHandler) RiskGetStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, rh.riskService.Status(ctx))
	}
}

func (rh *RiskHandler) EmergencyStop() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, rh.riskService.EmergencyStop(ctx))
	}
}

func (rh *RiskHandler) PauseTrading() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, rh.riskService.PauseTrading(ctx))
	}
}

func (rh *RiskHandler) ResumeTrading() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, rh.riskService.ResumeTrading(ctx))
	}
}
