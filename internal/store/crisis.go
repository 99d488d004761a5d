package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/healpraybackend/internal/models"
)

// CrisisStore appends to the crisis-event audit log. Records are never
// updated or deleted.
type CrisisStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewCrisisStore(ctx context.Context) (*CrisisStore, error) {
	client, err := newDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	return &CrisisStore{
		client:    client,
		tableName: tableName("CRISIS_EVENTS_TABLE_NAME", "healpray-crisis-events"),
	}, nil
}

func (s *CrisisStore) Append(ctx context.Context, event *models.CrisisEvent) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal crisis event: %v", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put crisis event: %v", err)
	}

	return nil
}
