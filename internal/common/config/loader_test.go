package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
aws:
  sqs:
    queue_url: https://sqs.us-east-1.amazonaws.com/000000000000/dining-requests
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "RecommendRestaurant", cfg.Bot.Name)
	assert.Equal(t, "dev", cfg.Bot.Alias)
	assert.Equal(t, "123", cfg.Bot.UserID)
	assert.Equal(t, "America/New_York", cfg.Bot.Timezone)
	assert.Equal(t, QueueBackendSQS, cfg.Queue.Backend)
	assert.Equal(t, 10000, cfg.Queue.VisibilityTimeout)
	assert.Equal(t, 10000, cfg.Queue.WaitTime)
	assert.Equal(t, "restaurants", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, "yelp-restaurants", cfg.AWS.DynamoDB.Table)
	assert.Equal(t, "Your Restaurant Recommendation from Chatbot", cfg.AWS.SES.Subject)
	assert.Equal(t, 3, cfg.Worker.Recommendations)
	assert.Equal(t, 1000, cfg.Worker.SearchSize)
	assert.Equal(t, TriggerPoll, cfg.Worker.Trigger)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_QUEUE_URL", "https://sqs.local/queue")
	path := writeConfig(t, `
aws:
  sqs:
    queue_url: ${TEST_QUEUE_URL}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://sqs.local/queue", cfg.AWS.SQS.QueueURL)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("BOT_ALIAS", "prod")
	path := writeConfig(t, `
bot:
  alias: dev
aws:
  sqs:
    queue_url: https://sqs.local/queue
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Bot.Alias)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidConfiguration(t *testing.T) {
	path := writeConfig(t, `
queue:
  backend: kafka
aws:
  sqs:
    queue_url: https://sqs.local/queue
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigurationInvalid, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "queue.backend")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.AWS.SQS.QueueURL = "https://sqs.local/queue"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "sqs needs a queue url",
			mutate:  func(c *Config) { c.AWS.SQS.QueueURL = "" },
			wantErr: "aws.sqs.queue_url",
		},
		{
			name:    "redis queue needs an address",
			mutate:  func(c *Config) { c.Queue.Backend = QueueBackendRedis },
			wantErr: "database.redis.address",
		},
		{
			name:    "unknown queue backend",
			mutate:  func(c *Config) { c.Queue.Backend = "kafka" },
			wantErr: "queue.backend",
		},
		{
			name:    "postgres store needs connection details",
			mutate:  func(c *Config) { c.Store.Backend = StoreBackendPostgres },
			wantErr: "database.postgres",
		},
		{
			name:    "cache needs redis",
			mutate:  func(c *Config) { c.Store.CacheTTL = 1000 },
			wantErr: "store.cache_ttl",
		},
		{
			name:    "zeebe trigger needs a broker",
			mutate:  func(c *Config) { c.Worker.Trigger = TriggerZeebe },
			wantErr: "camunda.broker_address",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Bot.Timezone = "Mars/Olympus_Mons" },
			wantErr: "bot.timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBotLocation(t *testing.T) {
	loc := BotConfig{Timezone: "America/New_York"}.Location()
	assert.Equal(t, "America/New_York", loc.String())

	assert.Equal(t, time.UTC, BotConfig{Timezone: "nowhere"}.Location())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
