// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dining-concierge/internal/common/errors"
)

const (
	QueueBackendSQS   = "sqs"
	QueueBackendRedis = "redis"

	StoreBackendDynamoDB = "dynamodb"
	StoreBackendPostgres = "postgres"

	TriggerPoll  = "poll"
	TriggerZeebe = "zeebe"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}

	return &cfg, nil
}

// AutomaticEnv only consults keys viper already knows about, so keys that
// may be absent from the YAML are bound explicitly.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"aws.region", "aws.endpoint", "aws.sqs.queue_url", "aws.ses.from_email",
		"aws.dynamodb.table", "queue.backend", "store.backend", "worker.trigger",
		"database.redis.address", "database.redis.password",
		"database.postgres.host", "database.postgres.user", "database.postgres.password",
		"database.elasticsearch.username", "database.elasticsearch.password",
		"camunda.broker_address", "logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dining-concierge"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Bot.Name == "" {
		cfg.Bot.Name = "RecommendRestaurant"
	}
	if cfg.Bot.Alias == "" {
		cfg.Bot.Alias = "dev"
	}
	if cfg.Bot.UserID == "" {
		cfg.Bot.UserID = "123"
	}
	if cfg.Bot.Timezone == "" {
		cfg.Bot.Timezone = "America/New_York"
	}

	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.AWS.SES.Subject == "" {
		cfg.AWS.SES.Subject = "Your Restaurant Recommendation from Chatbot"
	}
	if cfg.AWS.DynamoDB.Table == "" {
		cfg.AWS.DynamoDB.Table = "yelp-restaurants"
	}

	if cfg.Queue.Backend == "" {
		cfg.Queue.Backend = QueueBackendSQS
	}
	if cfg.Queue.Stream == "" {
		cfg.Queue.Stream = "dining-requests"
	}
	if cfg.Queue.Group == "" {
		cfg.Queue.Group = "recommendation-workers"
	}
	if cfg.Queue.Consumer == "" {
		if host, err := os.Hostname(); err == nil {
			cfg.Queue.Consumer = host
		} else {
			cfg.Queue.Consumer = "worker-1"
		}
	}
	if cfg.Queue.VisibilityTimeout == 0 {
		cfg.Queue.VisibilityTimeout = 10000
	}
	if cfg.Queue.WaitTime == 0 {
		cfg.Queue.WaitTime = 10000
	}

	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "restaurants"
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendDynamoDB
	}

	if cfg.Worker.Trigger == "" {
		cfg.Worker.Trigger = TriggerPoll
	}
	if cfg.Worker.Interval == 0 {
		cfg.Worker.Interval = 60000
	}
	if cfg.Worker.Recommendations == 0 {
		cfg.Worker.Recommendations = 3
	}
	if cfg.Worker.SearchSize == 0 {
		cfg.Worker.SearchSize = 1000
	}
	if cfg.Worker.Timeout == 0 {
		cfg.Worker.Timeout = 30000
	}

	if cfg.Camunda.JobType == "" {
		cfg.Camunda.JobType = "restaurant-recommendation"
	}
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 1
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}
}

// Validate checks the fields the selected backends depend on.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Bot.Timezone); err != nil {
		return fmt.Errorf("bot.timezone %q: %w", c.Bot.Timezone, err)
	}

	switch c.Queue.Backend {
	case QueueBackendSQS:
		if c.AWS.SQS.QueueURL == "" {
			return fmt.Errorf("aws.sqs.queue_url is required for the sqs queue backend")
		}
	case QueueBackendRedis:
		if c.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis queue backend")
		}
	default:
		return fmt.Errorf("queue.backend must be %q or %q, got %q", QueueBackendSQS, QueueBackendRedis, c.Queue.Backend)
	}

	switch c.Store.Backend {
	case StoreBackendDynamoDB:
	case StoreBackendPostgres:
		if c.Database.Postgres.Host == "" || c.Database.Postgres.Database == "" || c.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres host, database and user are required for the postgres store")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreBackendDynamoDB, StoreBackendPostgres, c.Store.Backend)
	}

	if c.Store.CacheTTL > 0 && c.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when store.cache_ttl is set")
	}

	switch c.Worker.Trigger {
	case TriggerPoll:
	case TriggerZeebe:
		if c.Camunda.BrokerAddress == "" {
			return fmt.Errorf("camunda.broker_address is required for the zeebe trigger")
		}
	default:
		return fmt.Errorf("worker.trigger must be %q or %q, got %q", TriggerPoll, TriggerZeebe, c.Worker.Trigger)
	}

	if c.Worker.Recommendations <= 0 {
		return fmt.Errorf("worker.recommendations must be positive")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
