package database

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// StreamQueue is a reservation queue on a Redis stream with one consumer
// group. Entries read but not deleted within the visibility timeout are
// claimed again by the next Receive, which mirrors SQS redelivery.
type StreamQueue struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
}

func NewStreamQueue(client *redis.Client, stream, group, consumer string) *StreamQueue {
	return &StreamQueue{client: client, stream: stream, group: group, consumer: consumer}
}

// EnsureGroup creates the stream and consumer group if missing.
func (q *StreamQueue) EnsureGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, q.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("redis: create stream group: %w", err)
	}
	return nil
}

// Send appends body to the stream. Redis has no status code, so success
// reports 200.
func (q *StreamQueue) Send(ctx context.Context, body string) (int, error) {
	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"id":   uuid.NewString(),
			"body": body,
		},
	}).Err()
	if err != nil {
		return 0, errors.NewQueueSendError(err)
	}
	return http.StatusOK, nil
}

// Receive returns up to max entries, expired in-flight entries first. A zero
// wait polls without blocking.
func (q *StreamQueue) Receive(ctx context.Context, max int, visibility, wait time.Duration) ([]models.QueueMessage, error) {
	claimed, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.stream,
		Group:    q.group,
		Consumer: q.consumer,
		MinIdle:  visibility,
		Start:    "0-0",
		Count:    int64(max),
	}).Result()
	if err != nil && !stderrors.Is(err, redis.Nil) {
		return nil, errors.NewQueueReceiveError(err)
	}
	if len(claimed) > 0 {
		return toQueueMessages(claimed), nil
	}

	block := wait
	if block <= 0 {
		block = -1 // go-redis omits BLOCK for negative values; zero would block forever
	}

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: q.consumer,
		Streams:  []string{q.stream, ">"},
		Count:    int64(max),
		Block:    block,
	}).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueueReceiveError(err)
	}

	var out []models.QueueMessage
	for _, s := range streams {
		out = append(out, toQueueMessages(s.Messages)...)
	}
	return out, nil
}

// Delete acknowledges and removes the entry; the receipt handle is the
// stream entry id.
func (q *StreamQueue) Delete(ctx context.Context, receiptHandle string) error {
	if err := q.client.XAck(ctx, q.stream, q.group, receiptHandle).Err(); err != nil {
		return errors.NewQueueDeleteError(receiptHandle, err)
	}
	if err := q.client.XDel(ctx, q.stream, receiptHandle).Err(); err != nil {
		return errors.NewQueueDeleteError(receiptHandle, err)
	}
	return nil
}

func toQueueMessages(msgs []redis.XMessage) []models.QueueMessage {
	out := make([]models.QueueMessage, 0, len(msgs))
	for _, m := range msgs {
		body, _ := m.Values["body"].(string)
		id, _ := m.Values["id"].(string)
		out = append(out, models.QueueMessage{
			ID:            id,
			Body:          body,
			ReceiptHandle: m.ID,
		})
	}
	return out
}
