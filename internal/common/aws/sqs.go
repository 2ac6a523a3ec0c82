// internal/common/aws/sqs.go
package aws

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// SQSAPI is the slice of *sqs.Client used here.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSQueue is the reservation queue backed by a single SQS queue URL.
type SQSQueue struct {
	api      SQSAPI
	queueURL string
}

func NewSQSQueue(api SQSAPI, queueURL string) *SQSQueue {
	return &SQSQueue{api: api, queueURL: queueURL}
}

// Send returns the HTTP status code reported for the SendMessage call.
func (q *SQSQueue) Send(ctx context.Context, body string) (int, error) {
	out, err := q.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    awssdk.String(q.queueURL),
		MessageBody: awssdk.String(body),
	})
	if err != nil {
		return 0, errors.NewQueueSendError(err)
	}
	return statusCode(out.ResultMetadata), nil
}

// Receive long-polls for up to max messages. Durations are truncated to
// whole seconds as SQS requires.
func (q *SQSQueue) Receive(ctx context.Context, max int, visibility, wait time.Duration) ([]models.QueueMessage, error) {
	out, err := q.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            awssdk.String(q.queueURL),
		MaxNumberOfMessages: int32(max),
		VisibilityTimeout:   int32(visibility / time.Second),
		WaitTimeSeconds:     int32(wait / time.Second),
	})
	if err != nil {
		return nil, errors.NewQueueReceiveError(err)
	}

	msgs := make([]models.QueueMessage, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, models.QueueMessage{
			ID:            awssdk.ToString(m.MessageId),
			Body:          awssdk.ToString(m.Body),
			ReceiptHandle: awssdk.ToString(m.ReceiptHandle),
		})
	}
	return msgs, nil
}

func (q *SQSQueue) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      awssdk.String(q.queueURL),
		ReceiptHandle: awssdk.String(receiptHandle),
	})
	if err != nil {
		return errors.NewQueueDeleteError(receiptHandle, err)
	}
	return nil
}
