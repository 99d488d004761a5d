package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/healpraybackend/internal/models"
)

// MoodStore reads the per-user mood-entry collection. Entries are written
// by the mobile client's logging flow; this backend never writes them.
type MoodStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewMoodStore(ctx context.Context) (*MoodStore, error) {
	client, err := newDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	return &MoodStore{
		client:    client,
		tableName: tableName("MOOD_ENTRIES_TABLE_NAME", "healpray-mood-entries"),
	}, nil
}

// RecentEntries returns up to limit of the user's mood entries timestamped
// at or after since, newest first. The table is keyed on (user_id, ts).
func (s *MoodStore) RecentEntries(ctx context.Context, userID string, since time.Time, limit int) ([]models.MoodEntry, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("user_id = :uid AND ts >= :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":   &types.AttributeValueMemberS{Value: userID},
			":since": &types.AttributeValueMemberS{Value: since.Format(time.RFC3339)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %v", err)
	}

	entries := make([]models.MoodEntry, 0, len(out.Items))
	for _, item := range out.Items {
		var entry models.MoodEntry
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mood entry: %v", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
