package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"tradedesk/conf"
	"tradedesk/internal/consts"
	"tradedesk/internal/model"
	"tradedesk/internal/position"
	"tradedesk/pkg/kafka"
	"tradedesk/pkg/logger"
)

// Broadcaster 行情对外推送（ws网关实现）
type Broadcaster interface {
	Broadcast(tick model.Tick)
}

// MarketFeed 行情消费：tick → 仓位浮动盈亏刷新 → 触发风控复核
type MarketFeed struct {
	consumer   kafka.ConsumerService
	cfg        conf.KafkaConfig
	book       *position.Book
	prices     *PriceTable
	reconciler *Reconciler
	rdb        *redis.Client // 可选
	bc         Broadcaster   // 可选
}

func NewMarketFeed(consumer kafka.ConsumerService, cfg conf.KafkaConfig, book *position.Book,
	prices *PriceTable, reconciler *Reconciler, rdb *redis.Client, bc Broadcaster) *MarketFeed {
	return &MarketFeed{
		consumer:   consumer,
		cfg:        cfg,
		book:       book,
		prices:     prices,
		reconciler: reconciler,
		rdb:        rdb,
		bc:         bc,
	}
}

// Run 阻塞消费行情主题直到ctx结束
func (f *MarketFeed) Run(ctx context.Context) error {
	msgCh, err := f.consumer.Consume(ctx, f.cfg.TickerTopic, f.cfg.GroupID)
	if err != nil {
		return err
	}
	logger.Infof("market feed consuming topic %s", f.cfg.TickerTopic)

	for msg := range msgCh {
		var tick model.Tick
		if err := json.Unmarshal(msg.Value, &tick); err != nil {
			logger.Errorf("drop malformed tick: %v", err)
			continue
		}
		if tick.Ticker == "" || tick.Price <= 0 {
			continue
		}
		f.apply(ctx, tick)
	}
	return nil
}

// Apply 应用单个tick，测试可直接调用
func (f *MarketFeed) Apply(ctx context.Context, tick model.Tick) { f.apply(ctx, tick) }

func (f *MarketFeed) apply(ctx context.Context, tick model.Tick) {
	f.prices.Set(tick.Ticker, tick.Price)
	f.book.UpdateMarkPrice(tick.Ticker, tick.Price)

	if f.rdb != nil {
		key := fmt.Sprintf("%s%s", consts.MarkPricePrefix, tick.Ticker)
		if err := f.rdb.Set(ctx, key, tick.Price, time.Hour).Err(); err != nil {
			logger.Debugf("mirror mark price to redis failed: %v", err)
		}
	}
	if f.bc != nil {
		f.bc.Broadcast(tick)
	}

	// 每个tick都触发复核，复核器自己负责丢弃过载
	f.reconciler.Kick()
}
