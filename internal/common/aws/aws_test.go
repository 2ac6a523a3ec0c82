package aws

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/errors"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSQSService struct {
	SendMessageFunc    func(ctx context.Context, params *sqs.SendMessageInput) (*sqs.SendMessageOutput, error)
	ReceiveMessageFunc func(ctx context.Context, params *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessageFunc  func(ctx context.Context, params *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
}

func (m *MockSQSService) SendMessage(ctx context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	return m.SendMessageFunc(ctx, params)
}

func (m *MockSQSService) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return m.ReceiveMessageFunc(ctx, params)
}

func (m *MockSQSService) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return m.DeleteMessageFunc(ctx, params)
}

type MockDynamoDBService struct {
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
}

func (m *MockDynamoDBService) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFunc(ctx, params)
}

type MockLexService struct {
	PostTextFunc func(ctx context.Context, params *lexruntimeservice.PostTextInput) (*lexruntimeservice.PostTextOutput, error)
}

func (m *MockLexService) PostText(ctx context.Context, params *lexruntimeservice.PostTextInput, _ ...func(*lexruntimeservice.Options)) (*lexruntimeservice.PostTextOutput, error) {
	return m.PostTextFunc(ctx, params)
}

func TestSESSender_SendEmail(t *testing.T) {
	var captured *ses.SendEmailInput
	mock := &MockSESService{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: awssdk.String("msg-123")}, nil
		},
	}

	id, err := NewSESSender(mock, "bot@example.com").SendEmail(context.Background(), "diner@example.com", "Subject", "Body")
	require.NoError(t, err)
	assert.Equal(t, "msg-123", id)

	require.NotNil(t, captured)
	assert.Equal(t, "bot@example.com", awssdk.ToString(captured.Source))
	assert.Equal(t, []string{"diner@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "Subject", awssdk.ToString(captured.Message.Subject.Data))
	assert.Equal(t, "Body", awssdk.ToString(captured.Message.Body.Text.Data))
	assert.Nil(t, captured.Message.Body.Html)
}

func TestSESSender_SendEmailFailure(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("MessageRejected: Email address is not verified")
		},
	}

	_, err := NewSESSender(mock, "bot@example.com").SendEmail(context.Background(), "diner@example.com", "s", "b")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEmailSendFailed, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "not verified")
}

func TestSQSQueue_Send(t *testing.T) {
	mock := &MockSQSService{
		SendMessageFunc: func(_ context.Context, params *sqs.SendMessageInput) (*sqs.SendMessageOutput, error) {
			assert.Equal(t, "https://sqs.local/q", awssdk.ToString(params.QueueUrl))
			assert.Equal(t, `{"cuisine":"thai"}`, awssdk.ToString(params.MessageBody))
			return &sqs.SendMessageOutput{MessageId: awssdk.String("m1")}, nil
		},
	}

	status, err := NewSQSQueue(mock, "https://sqs.local/q").Send(context.Background(), `{"cuisine":"thai"}`)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
}

func TestSQSQueue_SendFailure(t *testing.T) {
	mock := &MockSQSService{
		SendMessageFunc: func(context.Context, *sqs.SendMessageInput) (*sqs.SendMessageOutput, error) {
			return nil, stderrors.New("throttled")
		},
	}

	status, err := NewSQSQueue(mock, "q").Send(context.Background(), "x")
	require.Error(t, err)
	assert.Zero(t, status)
	assert.Equal(t, errors.ErrCodeQueueSendFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
}

func TestSQSQueue_Receive(t *testing.T) {
	mock := &MockSQSService{
		ReceiveMessageFunc: func(_ context.Context, params *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
			assert.Equal(t, int32(1), params.MaxNumberOfMessages)
			assert.Equal(t, int32(10), params.VisibilityTimeout)
			assert.Equal(t, int32(20), params.WaitTimeSeconds)
			return &sqs.ReceiveMessageOutput{Messages: []sqstypes.Message{{
				MessageId:     awssdk.String("m1"),
				Body:          awssdk.String("body"),
				ReceiptHandle: awssdk.String("rh-1"),
			}}}, nil
		},
	}

	msgs, err := NewSQSQueue(mock, "q").Receive(context.Background(), 1, 10*time.Second, 20*time.Second)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "body", msgs[0].Body)
	assert.Equal(t, "rh-1", msgs[0].ReceiptHandle)
}

func TestSQSQueue_ReceiveEmpty(t *testing.T) {
	mock := &MockSQSService{
		ReceiveMessageFunc: func(context.Context, *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
			return &sqs.ReceiveMessageOutput{}, nil
		},
	}

	msgs, err := NewSQSQueue(mock, "q").Receive(context.Background(), 1, time.Second, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSQSQueue_Delete(t *testing.T) {
	var receipt string
	mock := &MockSQSService{
		DeleteMessageFunc: func(_ context.Context, params *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
			receipt = awssdk.ToString(params.ReceiptHandle)
			return &sqs.DeleteMessageOutput{}, nil
		},
	}
	q := NewSQSQueue(mock, "q")

	require.NoError(t, q.Delete(context.Background(), "rh-9"))
	assert.Equal(t, "rh-9", receipt)

	mock.DeleteMessageFunc = func(context.Context, *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
		return nil, stderrors.New("ReceiptHandleIsInvalid")
	}
	err := q.Delete(context.Background(), "rh-9")
	assert.Equal(t, errors.ErrCodeQueueDeleteFailed, errors.CodeOf(err))
}

func TestDynamoRestaurantStore_GetRestaurant(t *testing.T) {
	mock := &MockDynamoDBService{
		GetItemFunc: func(_ context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "yelp-restaurants", awssdk.ToString(params.TableName))
			key := params.Key["businessID"].(*dynamotypes.AttributeValueMemberS)
			assert.Equal(t, "b1", key.Value)
			return &dynamodb.GetItemOutput{Item: map[string]dynamotypes.AttributeValue{
				"businessID": &dynamotypes.AttributeValueMemberS{Value: "b1"},
				"name":       &dynamotypes.AttributeValueMemberS{Value: "Le Petit"},
				"address":    &dynamotypes.AttributeValueMemberS{Value: "1 Main St"},
			}}, nil
		},
	}

	r, err := NewDynamoRestaurantStore(mock, "yelp-restaurants").GetRestaurant(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", r.BusinessID)
	assert.Equal(t, "Le Petit", r.Name)
	assert.Equal(t, "1 Main St", r.Address)
}

func TestDynamoRestaurantStore_Errors(t *testing.T) {
	tests := []struct {
		name     string
		out      *dynamodb.GetItemOutput
		err      error
		wantCode errors.ErrorCode
	}{
		{name: "missing item", out: &dynamodb.GetItemOutput{}, wantCode: errors.ErrCodeRestaurantNotFound},
		{name: "service error", err: stderrors.New("ResourceNotFoundException"), wantCode: errors.ErrCodeStoreLookupFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockDynamoDBService{
				GetItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
					return tt.out, tt.err
				},
			}
			_, err := NewDynamoRestaurantStore(mock, "t").GetRestaurant(context.Background(), "b1")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestLexClient_PostText(t *testing.T) {
	mock := &MockLexService{
		PostTextFunc: func(_ context.Context, params *lexruntimeservice.PostTextInput) (*lexruntimeservice.PostTextOutput, error) {
			assert.Equal(t, "RecommendRestaurant", awssdk.ToString(params.BotName))
			assert.Equal(t, "dev", awssdk.ToString(params.BotAlias))
			assert.Equal(t, "123", awssdk.ToString(params.UserId))
			assert.Equal(t, "hello", awssdk.ToString(params.InputText))
			return &lexruntimeservice.PostTextOutput{Message: awssdk.String("Hi there, how can I help?")}, nil
		},
	}

	status, reply, err := NewLexClient(mock, "RecommendRestaurant", "dev").PostText(context.Background(), "123", "hello")
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Hi there, how can I help?", reply)
}

func TestLexClient_PostTextFailure(t *testing.T) {
	engineErr := stderrors.New("BadGateway")
	mock := &MockLexService{
		PostTextFunc: func(context.Context, *lexruntimeservice.PostTextInput) (*lexruntimeservice.PostTextOutput, error) {
			return nil, engineErr
		},
	}

	_, _, err := NewLexClient(mock, "b", "a").PostText(context.Background(), "123", "hello")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDialogEngineFailed, errors.CodeOf(err))
	assert.ErrorIs(t, err, engineErr)
}
