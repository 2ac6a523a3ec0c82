// internal/common/aws/dynamodb.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// DynamoDBAPI is the slice of *dynamodb.Client used here.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoRestaurantStore reads restaurant details keyed by businessID.
type DynamoRestaurantStore struct {
	api   DynamoDBAPI
	table string
}

func NewDynamoRestaurantStore(api DynamoDBAPI, table string) *DynamoRestaurantStore {
	return &DynamoRestaurantStore{api: api, table: table}
}

func (s *DynamoRestaurantStore) GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: awssdk.String(s.table),
		Key: map[string]types.AttributeValue{
			"businessID": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		return nil, errors.NewStoreLookupError(businessID, err)
	}
	if len(out.Item) == 0 {
		return nil, errors.NewRestaurantNotFoundError(businessID)
	}

	var r models.Restaurant
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, errors.NewStoreLookupError(businessID, err)
	}
	if r.BusinessID == "" {
		r.BusinessID = businessID
	}
	return &r, nil
}
