package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения. Значения читаются из окружения.
type Config struct {
	HTTPAddr    string `env:"ORDER_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr    string `env:"ORDER_GRPC_ADDR" envDefault:":50051"` // "off" отключает gRPC
	MetricsAddr string `env:"ORDER_METRICS_ADDR" envDefault:":9090"`

	LogLevel  string `env:"ORDER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ORDER_LOG_FORMAT" envDefault:"text"`

	StorageDriver       string `env:"ORDER_STORAGE_DRIVER" envDefault:"memory"`
	PostgresDSN         string `env:"ORDER_POSTGRES_DSN"`
	PostgresAutoMigrate bool   `env:"ORDER_POSTGRES_AUTO_MIGRATE" envDefault:"true"`
	PostgresSeed        bool   `env:"ORDER_POSTGRES_SEED" envDefault:"true"`

	RequestTimeout time.Duration `env:"ORDER_REQUEST_TIMEOUT" envDefault:"15s"`

	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string   `env:"ORDER_KAFKA_TOPIC" envDefault:"burger.order.events"`
	KafkaDLQTopic string   `env:"ORDER_KAFKA_DLQ_TOPIC" envDefault:"burger.order.events.dlq"`

	OutboxPollInterval time.Duration `env:"ORDER_OUTBOX_POLL_INTERVAL" envDefault:"1s"`
	OutboxBatchSize    int           `env:"ORDER_OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxMaxAttempts  int           `env:"ORDER_OUTBOX_MAX_ATTEMPTS" envDefault:"3"`
	OutboxRetryDelay   time.Duration `env:"ORDER_OUTBOX_RETRY_DELAY" envDefault:"50ms"`
	OutboxMaxPending   int           `env:"ORDER_OUTBOX_MAX_PENDING" envDefault:"1000"`

	IdempotencyTTL              time.Duration `env:"ORDER_IDEMPOTENCY_TTL" envDefault:"24h"`
	IdempotencyCleanupInterval  time.Duration `env:"ORDER_IDEMPOTENCY_CLEANUP_INTERVAL" envDefault:"10m"`
	IdempotencyCleanupBatchSize int           `env:"ORDER_IDEMPOTENCY_CLEANUP_BATCH_SIZE" envDefault:"500"`
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию, без учёта окружения.
func DefaultConfig() Config {
	cfg, err := LoadConfigFromMap(map[string]string{})
	if err != nil {
		// envDefault задан в коде, ошибка здесь означает опечатку в тегах.
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// LoadConfig читает конфигурацию из переменных окружения процесса.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadConfigFromMap читает конфигурацию из переданного окружения.
func LoadConfigFromMap(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	if strings.EqualFold(strings.TrimSpace(c.GRPCAddr), "off") {
		c.GRPCAddr = ""
	}

	brokers := c.KafkaBrokers[:0]
	for _, b := range c.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.KafkaBrokers = brokers
}

// KafkaEnabled сообщает, что настроены брокеры Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("outbox poll interval must be positive"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox batch size must be positive"))
	}
	if c.OutboxMaxAttempts <= 0 {
		errs = append(errs, errors.New("outbox max attempts must be positive"))
	}
	if c.OutboxRetryDelay < 0 {
		errs = append(errs, errors.New("outbox retry delay must not be negative"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("idempotency ttl must be positive"))
	}
	if c.IdempotencyCleanupInterval <= 0 {
		errs = append(errs, errors.New("idempotency cleanup interval must be positive"))
	}
	if c.IdempotencyCleanupBatchSize <= 0 {
		errs = append(errs, errors.New("idempotency cleanup batch size must be positive"))
	}
	if c.KafkaEnabled() && strings.TrimSpace(c.KafkaTopic) == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}

	return errors.Join(errs...)
}
