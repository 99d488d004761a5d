package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// AnalyticsStore records product analytics events (one item per event).
type AnalyticsStore struct {
	client    *dynamodb.Client
	tableName string
}

type analyticsEvent struct {
	ID     string            `dynamodbav:"id"`
	UserID string            `dynamodbav:"user_id"`
	Event  string            `dynamodbav:"event"`
	TS     string            `dynamodbav:"ts"`
	Data   map[string]string `dynamodbav:"data,omitempty"`
}

func NewAnalyticsStore(ctx context.Context) (*AnalyticsStore, error) {
	client, err := newDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	return &AnalyticsStore{
		client:    client,
		tableName: tableName("ANALYTICS_TABLE_NAME", "healpray-analytics"),
	}, nil
}

func (s *AnalyticsStore) RecordEvent(ctx context.Context, userID, event string, data map[string]string, now time.Time) error {
	item, err := attributevalue.MarshalMap(analyticsEvent{
		ID:     uuid.NewString(),
		UserID: userID,
		Event:  event,
		TS:     now.Format(time.RFC3339),
		Data:   data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %v", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put analytics event: %v", err)
	}

	return nil
}
