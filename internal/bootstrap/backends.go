// Package bootstrap connects the collaborators selected by configuration
// and hands them to the binaries under cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	httpx "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const collaboratorTimeout = 15 * time.Second

// Queue is the reservation queue as both binaries see it.
type Queue interface {
	Send(ctx context.Context, body string) (int, error)
	Receive(ctx context.Context, max int, visibility, wait time.Duration) ([]models.QueueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

type RestaurantStore interface {
	GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error)
}

// Backends holds lazily opened connections. Close releases whatever was
// opened.
type Backends struct {
	cfg      *config.Config
	aws      awssdk.Config
	redis    *database.RedisClient
	postgres *database.PostgresClient
	search   *database.ElasticsearchClient
	logger   logger.Logger
}

func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backends, error) {
	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	awsCfg.HTTPClient = &http.Client{Transport: httpx.NewTransport(collaboratorTimeout)}

	return &Backends{
		cfg:    cfg,
		aws:    awsCfg,
		logger: logger.ForComponent(log, "bootstrap"),
	}, nil
}

func (b *Backends) Redis(ctx context.Context) (*database.RedisClient, error) {
	if b.redis != nil {
		return b.redis, nil
	}
	rdb := database.NewRedis(b.cfg.Database.Redis)
	if err := RetryWithBackoff(func() error { return rdb.Ping(ctx) }, 10, 2*time.Second, b.logger, "Redis connection"); err != nil {
		rdb.Close()
		return nil, err
	}
	b.redis = rdb
	return rdb, nil
}

// Queue returns the SQS queue or, for the redis backend, the stream queue
// with its consumer group in place.
func (b *Backends) Queue(ctx context.Context) (Queue, error) {
	switch b.cfg.Queue.Backend {
	case config.QueueBackendRedis:
		rdb, err := b.Redis(ctx)
		if err != nil {
			return nil, err
		}
		q := rdb.StreamQueue(b.cfg.Queue)
		if err := q.EnsureGroup(ctx); err != nil {
			return nil, err
		}
		return q, nil
	default:
		return aws.NewSQSQueue(sqs.NewFromConfig(b.aws), b.cfg.AWS.SQS.QueueURL), nil
	}
}

func (b *Backends) DialogEngine() *aws.LexClient {
	return aws.NewLexClient(lexruntimeservice.NewFromConfig(b.aws), b.cfg.Bot.Name, b.cfg.Bot.Alias)
}

func (b *Backends) EmailSender() *aws.SESSender {
	return aws.NewSESSender(ses.NewFromConfig(b.aws), b.cfg.AWS.SES.FromEmail)
}

func (b *Backends) Search(ctx context.Context) (*database.ElasticsearchClient, error) {
	if b.search != nil {
		return b.search, nil
	}
	es, err := database.NewElasticsearch(b.cfg.Database.Elasticsearch, httpx.NewTransport(collaboratorTimeout))
	if err != nil {
		return nil, err
	}
	if err := RetryWithBackoff(func() error { return es.Ping(ctx) }, 15, 2*time.Second, b.logger, "Elasticsearch connection"); err != nil {
		return nil, err
	}
	b.search = es
	return es, nil
}

// RestaurantStore returns the DynamoDB or Postgres store, behind the Redis
// cache when store.cache_ttl is set.
func (b *Backends) RestaurantStore(ctx context.Context) (RestaurantStore, error) {
	var store RestaurantStore
	switch b.cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pg, err := database.NewPostgres(b.cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		if err := RetryWithBackoff(func() error { return pg.Ping(ctx) }, 15, 2*time.Second, b.logger, "PostgreSQL connection"); err != nil {
			pg.Close()
			return nil, err
		}
		b.postgres = pg
		store = pg
	default:
		store = aws.NewDynamoRestaurantStore(dynamodb.NewFromConfig(b.aws), b.cfg.AWS.DynamoDB.Table)
	}

	if b.cfg.Store.CacheTTL <= 0 {
		return store, nil
	}
	rdb, err := b.Redis(ctx)
	if err != nil {
		return nil, err
	}
	return rdb.RestaurantCache(store, config.GetDuration(b.cfg.Store.CacheTTL), b.logger), nil
}

// Ready pings every connection opened so far.
func (b *Backends) Ready(ctx context.Context) error {
	if b.redis != nil {
		if err := b.redis.Ping(ctx); err != nil {
			return err
		}
	}
	if b.postgres != nil {
		if err := b.postgres.Ping(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	if b.search != nil {
		if err := b.search.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backends) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			b.logger.Warn("closing redis", map[string]interface{}{"error": err})
		}
	}
	if b.postgres != nil {
		if err := b.postgres.Close(); err != nil {
			b.logger.Warn("closing postgres", map[string]interface{}{"error": err})
		}
	}
}
