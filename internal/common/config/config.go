// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // bot.timezone must resolve in minimal containers
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Bot      BotConfig      `mapstructure:"bot"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Camunda  CamundaConfig  `mapstructure:"camunda"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	MetricsPort     int `mapstructure:"metrics_port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// BotConfig describes the dialog engine bot the forwarder talks to and the
// calendar the slot validator judges dates against.
type BotConfig struct {
	Name           string            `mapstructure:"name"`
	Alias          string            `mapstructure:"alias"`
	UserID         string            `mapstructure:"user_id"`
	Timezone       string            `mapstructure:"timezone"`
	DefaultPrompts map[string]string `mapstructure:"default_prompts"`
}

// Location resolves Timezone. Validate has already rejected unknown names.
func (b BotConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type AWSConfig struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // local emulators only
	SQS      struct {
		QueueURL string `mapstructure:"queue_url"`
	} `mapstructure:"sqs"`
	SES struct {
		FromEmail string `mapstructure:"from_email"`
		Subject   string `mapstructure:"subject"`
	} `mapstructure:"ses"`
	DynamoDB struct {
		Table string `mapstructure:"table"`
	} `mapstructure:"dynamodb"`
}

// QueueConfig selects the reservation queue backend ("sqs" or "redis").
type QueueConfig struct {
	Backend           string `mapstructure:"backend"`
	Stream            string `mapstructure:"stream"`
	Group             string `mapstructure:"group"`
	Consumer          string `mapstructure:"consumer"`
	VisibilityTimeout int    `mapstructure:"visibility_timeout"` // milliseconds
	WaitTime          int    `mapstructure:"wait_time"`          // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects the restaurant detail store ("dynamodb" or "postgres").
// CacheTTL of zero disables the Redis read-through cache.
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	CacheTTL int    `mapstructure:"cache_ttl"` // milliseconds
}

// WorkerConfig drives cmd/recommendation-worker.
type WorkerConfig struct {
	Trigger         string `mapstructure:"trigger"`  // "poll" or "zeebe"
	Interval        int    `mapstructure:"interval"` // milliseconds
	Recommendations int    `mapstructure:"recommendations"`
	SearchSize      int    `mapstructure:"search_size"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	JobType        string `mapstructure:"job_type"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}
