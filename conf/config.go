package conf

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// 配置加载（风控阈值、行情源、数据库等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type KafkaConfig struct {
	Broker       string `yaml:"broker"`
	TickerTopic  string `yaml:"ticker-topic"`
	AccountTopic string `yaml:"account-topic"`
	GroupID      string `yaml:"group-id"`
}

// RiskConfig 风控阈值，进程启动时构造一次，之后由RiskGate独占持有
type RiskConfig struct {
	DailyLossLimit     float64 `yaml:"daily-loss-limit"`     // 当日最大亏损（绝对金额）
	MaxPositionSize    float64 `yaml:"max-position-size"`    // 单仓位最大名义价值
	MaxDrawdownLimit   float64 `yaml:"max-drawdown-limit"`   // 峰值回撤上限（0~1）
	PortfolioHeatLimit float64 `yaml:"portfolio-heat-limit"` // 组合风险敞口占净值比例上限（0~1）
}

// EnhancerConfig ML信号打分服务，只在审批时以best-effort方式咨询
type EnhancerConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Enabled  bool          `yaml:"enabled"`
}

type ReconcileConfig struct {
	Interval time.Duration `yaml:"interval"` // 风控定时复核周期
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Db        `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Risk      RiskConfig      `yaml:"risk"`
	Enhancer  EnhancerConfig  `yaml:"enhancer"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	AppConfig.applyDefaults()
	return AppConfig.Validate()
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":12190"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
	if c.Kafka.TickerTopic == "" {
		c.Kafka.TickerTopic = "marketdata_ticker"
	}
	if c.Kafka.AccountTopic == "" {
		c.Kafka.AccountTopic = "account_snapshots"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "tradedesk-core"
	}
	if c.Enhancer.Timeout == 0 {
		c.Enhancer.Timeout = 2 * time.Second
	}
	if c.Reconcile.Interval == 0 {
		c.Reconcile.Interval = 15 * time.Second
	}
}

// Validate 聚合所有配置问题一次性返回，避免逐个试错
func (c *Config) Validate() error {
	var err error
	if c.Risk.DailyLossLimit <= 0 {
		err = multierr.Append(err, fmt.Errorf("risk.daily-loss-limit must be positive, got %v", c.Risk.DailyLossLimit))
	}
	if c.Risk.MaxPositionSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("risk.max-position-size must be positive, got %v", c.Risk.MaxPositionSize))
	}
	if c.Risk.MaxDrawdownLimit <= 0 || c.Risk.MaxDrawdownLimit > 1 {
		err = multierr.Append(err, fmt.Errorf("risk.max-drawdown-limit must be in (0,1], got %v", c.Risk.MaxDrawdownLimit))
	}
	if c.Risk.PortfolioHeatLimit <= 0 || c.Risk.PortfolioHeatLimit > 1 {
		err = multierr.Append(err, fmt.Errorf("risk.portfolio-heat-limit must be in (0,1], got %v", c.Risk.PortfolioHeatLimit))
	}
	if c.Enhancer.Enabled && c.Enhancer.Endpoint == "" {
		err = multierr.Append(err, fmt.Errorf("enhancer.endpoint required when enhancer is enabled"))
	}
	return err
}
