package feed

import (
	"context"

	"github.com/goccy/go-json"

	"tradedesk/conf"
	"tradedesk/internal/account"
	"tradedesk/internal/model"
	"tradedesk/pkg/kafka"
	"tradedesk/pkg/logger"
)

// AccountFeed 账户快照消费：整体替换最新快照并触发风控复核
type AccountFeed struct {
	consumer   kafka.ConsumerService
	cfg        conf.KafkaConfig
	holder     *account.Holder
	reconciler *Reconciler
}

func NewAccountFeed(consumer kafka.ConsumerService, cfg conf.KafkaConfig, holder *account.Holder, reconciler *Reconciler) *AccountFeed {
	return &AccountFeed{
		consumer:   consumer,
		cfg:        cfg,
		holder:     holder,
		reconciler: reconciler,
	}
}

// Run 阻塞消费账户主题直到ctx结束
func (f *AccountFeed) Run(ctx context.Context) error {
	msgCh, err := f.consumer.Consume(ctx, f.cfg.AccountTopic, f.cfg.GroupID)
	if err != nil {
		return err
	}
	logger.Infof("account feed consuming topic %s", f.cfg.AccountTopic)

	for msg := range msgCh {
		var snap model.AccountSnapshot
		if err := json.Unmarshal(msg.Value, &snap); err != nil {
			logger.Errorf("drop malformed account snapshot: %v", err)
			continue
		}
		f.holder.Publish(ctx, snap)
		f.reconciler.Kick()
	}
	return nil
}
