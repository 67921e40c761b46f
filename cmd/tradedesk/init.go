package api

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tradedesk/conf"
	"tradedesk/internal/account"
	"tradedesk/internal/coordinator"
	"tradedesk/internal/dao"
	"tradedesk/internal/enhancer"
	"tradedesk/internal/feed"
	accounth "tradedesk/internal/handler/account"
	positionh "tradedesk/internal/handler/position"
	"tradedesk/internal/handler/riskctl"
	signalh "tradedesk/internal/handler/signal"
	"tradedesk/internal/handler/ticker"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/internal/risk"
	"tradedesk/internal/router"
	"tradedesk/internal/service"
	"tradedesk/internal/signal"
	"tradedesk/pkg/kafka"
	"tradedesk/pkg/logger"
)

// InitRouter 组装核心组件并启动后台任务
// ctx结束时行情/账户消费和风控复核一并退出
func InitRouter(ctx context.Context, db *gorm.DB, rdb *redis.Client) Router {
	appCfg := conf.AppConfig

	limits := model.RiskLimits{
		DailyLossLimit:     appCfg.Risk.DailyLossLimit,
		MaxPositionSize:    appCfg.Risk.MaxPositionSize,
		MaxDrawdownLimit:   appCfg.Risk.MaxDrawdownLimit,
		PortfolioHeatLimit: appCfg.Risk.PortfolioHeatLimit,
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		logger.Fatalf("init snowflake node: %v", err)
	}

	// 核心：信号、仓位、风控的唯一持有者
	store := signal.NewStore(node)
	book := position.NewBook()
	gate := risk.NewGate(limits)
	policy := risk.NewPolicy(limits)
	holder := account.NewHolder(rdb)
	prices := feed.NewPriceTable()

	var ann enhancer.Annotator
	if appCfg.Enhancer.Enabled {
		ann = enhancer.NewHTTPEnhancer(appCfg.Enhancer)
	}

	coord := coordinator.New(store, book, gate, prices, ann)

	var signalDao *dao.SignalDao
	var positionDao *dao.PositionDao
	if db != nil {
		signalDao = dao.NewSignalDao(db)
		positionDao = dao.NewPositionDao(db)
	}

	signalService := service.NewSignalService(coord, store, signalDao, positionDao)
	positionService := service.NewPositionService(coord, book, positionDao)
	riskService := service.NewRiskService(gate, rdb)
	accountService := service.NewAccountService(holder)

	tickerHandler := ticker.NewTickerHandler(prices)

	// 风控复核 + 行情/账户消费
	reconciler := feed.NewReconciler(policy, gate, book, holder, appCfg.Reconcile.Interval)
	go reconciler.Run(ctx)

	consumer := kafka.NewKafkaConsumer(appCfg.Kafka.Broker)
	marketFeed := feed.NewMarketFeed(consumer, appCfg.Kafka, book, prices, reconciler, rdb, tickerHandler)
	accountFeed := feed.NewAccountFeed(consumer, appCfg.Kafka, holder, reconciler)
	go func() {
		if err := marketFeed.Run(ctx); err != nil {
			logger.Errorf("market feed stopped: %v", err)
		}
	}()
	go func() {
		if err := accountFeed.Run(ctx); err != nil {
			logger.Errorf("account feed stopped: %v", err)
		}
	}()

	return router.NewApiRouter(
		signalh.NewSignalHandler(signalService),
		positionh.NewPositionHandler(positionService),
		riskctl.NewRiskHandler(riskService),
		accounth.NewAccountHandler(accountService),
		tickerHandler,
	)
}
