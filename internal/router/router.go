package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradedesk/internal/handler/account"
	"tradedesk/internal/handler/ping"
	"tradedesk/internal/handler/position"
	"tradedesk/internal/handler/riskctl"
	"tradedesk/internal/handler/signal"
	"tradedesk/internal/handler/ticker"
	"tradedesk/internal/middleware"
)

type ApiRouter struct {
	signalHandler   *signal.SignalHandler
	positionHandler *position.PositionHandler
	riskHandler     *riskctl.RiskHandler
	accountHandler  *account.AccountHandler
	tickerHandler   *ticker.TickerHandler
}

func NewApiRouter(sh *signal.SignalHandler, ph *position.PositionHandler, rh *riskctl.RiskHandler,
	ah *account.AccountHandler, th *ticker.TickerHandler) *ApiRouter {
	return &ApiRouter{
		signalHandler:   sh,
		positionHandler: ph,
		riskHandler:     rh,
		accountHandler:  ah,
		tickerHandler:   th,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/ping", ping.Ping())
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))

	base := g.Group("/api")

	sg := base.Group("/signals")
	{
		sg.GET("", api.signalHandler.SignalGetList())
		sg.POST("", middleware.AntiDuplicateMiddleware(), api.signalHandler.SignalCreate())
		sg.GET("/:id", api.signalHandler.SignalGetDetail())
		sg.POST("/:id/approve", api.signalHandler.SignalApprove())
		sg.POST("/:id/execute", api.signalHandler.SignalExecute())
		sg.POST("/:id/reject", api.signalHandler.SignalReject())
	}

	p := base.Group("/positions")
	{
		p.GET("", api.positionHandler.PositionGetList())
		// 平仓是降风险操作，熔断状态下也放行
		p.POST("/:id/close", api.positionHandler.PositionClose())
	}

	r := base.Group("/risk")
	{
		r.GET("/status", api.riskHandler.RiskGetStatus())
		r.POST("/emergency-stop", api.riskHandler.EmergencyStop())
		r.POST("/pause-trading", api.riskHandler.PauseTrading())
		r.POST("/resume-trading", api.riskHandler.ResumeTrading())
	}

	base.GET("/account", api.accountHandler.AccountGet())

	t := base.Group("/ticker")
	{
		t.GET("/ws", api.tickerHandler.ServeWS) // 通过websocket连接获取价格
	}
}
