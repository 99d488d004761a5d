package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// ErrorLog persists handler failures for monitoring. Client input errors
// never land here; only system-side failures do.
type ErrorLog struct {
	client    *dynamodb.Client
	tableName string
}

type errorRecord struct {
	ID       string `dynamodbav:"id"`
	UserID   string `dynamodbav:"user_id"`
	Function string `dynamodbav:"function"`
	Error    string `dynamodbav:"error"`
	TS       string `dynamodbav:"ts"`
	Context  string `dynamodbav:"context,omitempty"`
	TTL      int64  `dynamodbav:"ttl"`
}

func NewErrorLog(ctx context.Context) (*ErrorLog, error) {
	client, err := newDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	return &ErrorLog{
		client:    client,
		tableName: tableName("ERRORS_TABLE_NAME", "healpray-errors"),
	}, nil
}

// Record writes one error entry. reqContext, if non-nil, is stored as JSON
// alongside the message so the failing request can be reconstructed.
func (l *ErrorLog) Record(ctx context.Context, userID, function string, cause error, reqContext interface{}, now time.Time) error {
	record := errorRecord{
		ID:       uuid.NewString(),
		UserID:   userID,
		Function: function,
		Error:    cause.Error(),
		TS:       now.Format(time.RFC3339),
		TTL:      now.Add(90 * 24 * time.Hour).Unix(),
	}

	if reqContext != nil {
		contextJSON, err := json.Marshal(reqContext)
		if err == nil {
			record.Context = string(contextJSON)
		}
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal error record: %v", err)
	}

	_, err = l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put error record: %v", err)
	}

	return nil
}
