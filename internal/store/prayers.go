package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/healpraybackend/internal/models"
)

type PrayerStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewPrayerStore(ctx context.Context) (*PrayerStore, error) {
	client, err := newDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	return &PrayerStore{
		client:    client,
		tableName: tableName("PRAYERS_TABLE_NAME", "healpray-prayers"),
	}, nil
}

// Put persists a generated prayer. Prayers are immutable once written.
func (s *PrayerStore) Put(ctx context.Context, prayer *models.GeneratedPrayer) error {
	item, err := attributevalue.MarshalMap(prayer)
	if err != nil {
		return fmt.Errorf("failed to marshal prayer: %v", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put prayer: %v", err)
	}

	return nil
}
