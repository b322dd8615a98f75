package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Sink names accepted by MOCK_DATA_SINK.
const (
	SinkHTTP  = "http"
	SinkKafka = "kafka"
	SinkAMQP  = "amqp"
	SinkRedis = "redis"
)

// ErrInvalidSink is returned for an unsupported MOCK_DATA_SINK value.
var ErrInvalidSink = errors.New("invalid sink")

// Config holds all application configuration.
type Config struct {
	// Generator destination
	MockDataURL string        `env:"MOCK_DATA_URL"`
	Sink        string        `env:"MOCK_DATA_SINK"    envDefault:"http"`
	SendTimeout time.Duration `env:"MOCK_DATA_TIMEOUT" envDefault:"10s"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"   envDefault:"mock-payments"`

	// RabbitMQ
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"mock_payments"`

	// Redis
	RedisURL    string `env:"REDIS_URL"`
	RedisStream string `env:"REDIS_STREAM" envDefault:"mock-payments"`

	// Metrics listener for the generator (disabled when empty)
	MetricsAddr string `env:"METRICS_ADDR"`

	// Receiver
	ReceiverAddr            string        `env:"RECEIVER_ADDR"             envDefault:":8000"`
	ReceiverRateLimit       float64       `env:"RECEIVER_RATE_LIMIT"       envDefault:"50"`
	ReceiverRateBurst       int           `env:"RECEIVER_RATE_BURST"       envDefault:"100"`
	ReceiverReadTimeout     time.Duration `env:"RECEIVER_READ_TIMEOUT"     envDefault:"30s"`
	ReceiverWriteTimeout    time.Duration `env:"RECEIVER_WRITE_TIMEOUT"    envDefault:"30s"`
	ReceiverShutdownTimeout time.Duration `env:"RECEIVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	IdempotencyTTL          time.Duration `env:"IDEMPOTENCY_TTL"           envDefault:"24h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads the optional dotenv files (".env" when none are given),
// parses configuration from the environment and validates the generator
// settings. Variables already set in the environment win over dotenv values.
func Load(files ...string) (*Config, error) {
	return load((*Config).Validate, files)
}

// LoadReceiver is Load for the receiver. Generator-only settings are not
// validated.
func LoadReceiver(files ...string) (*Config, error) {
	return load((*Config).ValidateReceiver, files)
}

func load(validate func(*Config) error, files []string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the generator values env tags cannot express.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkHTTP, SinkKafka, SinkAMQP, SinkRedis:
	default:
		return fmt.Errorf("%w: %q (want http, kafka, amqp or redis)", ErrInvalidSink, c.Sink)
	}

	if c.SendTimeout <= 0 {
		return fmt.Errorf("MOCK_DATA_TIMEOUT must be positive, got %s", c.SendTimeout)
	}

	return nil
}

// ValidateReceiver checks the receiver values env tags cannot express.
func (c *Config) ValidateReceiver() error {
	if c.ReceiverAddr == "" {
		return errors.New("RECEIVER_ADDR must not be empty")
	}
	if c.ReceiverRateLimit <= 0 || c.ReceiverRateBurst <= 0 {
		return fmt.Errorf("RECEIVER_RATE_LIMIT and RECEIVER_RATE_BURST must be positive, got %v/%d",
			c.ReceiverRateLimit, c.ReceiverRateBurst)
	}
	if c.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive, got %s", c.IdempotencyTTL)
	}

	return nil
}

// Destination returns the configured address for the selected sink, or ""
// when the sink has nowhere to send.
func (c *Config) Destination() string {
	switch c.Sink {
	case SinkKafka:
		if len(c.KafkaBrokers) == 0 {
			return ""
		}
		return c.KafkaBrokers[0]
	case SinkAMQP:
		return c.AMQPURL
	case SinkRedis:
		return c.RedisURL
	default:
		return c.MockDataURL
	}
}

// DestinationVar names the variable Destination reads for the selected sink.
func (c *Config) DestinationVar() string {
	switch c.Sink {
	case SinkKafka:
		return "KAFKA_BROKERS"
	case SinkAMQP:
		return "AMQP_URL"
	case SinkRedis:
		return "REDIS_URL"
	default:
		return "MOCK_DATA_URL"
	}
}
