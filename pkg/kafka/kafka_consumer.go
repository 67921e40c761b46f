package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"tradedesk/pkg/logger"
)

// ConsumerService 定义了消费 Kafka 消息的通用接口
type ConsumerService interface {
	// Consume 启动一个协程消费指定主题，将消息发送到返回的通道
	Consume(ctx context.Context, topic string, groupID string) (<-chan kafka.Message, error)
	Close()
}

type kafkaConsumer struct {
	brokerURL string
}

func NewKafkaConsumer(brokerURL string) ConsumerService {
	return &kafkaConsumer{
		brokerURL: brokerURL,
	}
}

func (c *kafkaConsumer) Consume(ctx context.Context, topic string, groupID string) (<-chan kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{c.brokerURL},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
		// 从最新的 offset 开始消费，行情/账户快照只关心最新值
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second, // 自动提交，每秒提交一次
		MaxAttempts:    3,
	})
	outputCh := make(chan kafka.Message, 1000) // 缓冲区用于平滑流量

	go func() {
		defer close(outputCh)
		defer r.Close()
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				// Context 被取消（服务关闭），正常退出
				if ctx.Err() != nil {
					return
				}
				logger.Errorf("kafka read error on topic %s: %v", topic, err)
				time.Sleep(time.Second)
				continue
			}

			select {
			case outputCh <- m:
				// 成功发送，依赖 CommitInterval 自动提交 Offset
			case <-ctx.Done():
				return
			default:
				// 队列满则丢弃，手动提交告诉 Broker 该消息已处理
				if err := r.CommitMessages(ctx, m); err != nil {
					logger.Errorf("kafka commit dropped message failed: %v", err)
				}
			}
		}
	}()

	return outputCh, nil
}

func (c *kafkaConsumer) Close() {
	// Reader 在消费协程退出时关闭，这里仅记录日志
	logger.Infof("kafka consumer service closing")
}
