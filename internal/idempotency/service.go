// Package idempotency makes prayer generation safe against client retries:
// when a request carries an Idempotency-Key header, a retry returns the
// cached response instead of billing the providers twice. Requests without
// the header bypass the service entirely.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const recordLifetime = 24 * time.Hour

// dynamoAPI is the slice of the DynamoDB client the service uses; tests
// substitute a fake.
type dynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type Service struct {
	client    dynamoAPI
	tableName string
}

type Record struct {
	Key         string    `dynamodbav:"key"`
	UserID      string    `dynamodbav:"user_id"`
	RequestHash string    `dynamodbav:"request_hash"`
	Response    string    `dynamodbav:"response"`
	Status      string    `dynamodbav:"status"` // "pending", "completed", "failed"
	CreatedAt   time.Time `dynamodbav:"created_at"`
	ExpiresAt   time.Time `dynamodbav:"expires_at"`
	TTL         int64     `dynamodbav:"ttl"`
}

func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	tableName := "healpray-idempotency"
	if envTable := os.Getenv("IDEMPOTENCY_TABLE_NAME"); envTable != "" {
		tableName = envTable
	}

	return &Service{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

func recordKey(userID, endpoint, idempotencyKey string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", userID, endpoint, idempotencyKey)))
	return hex.EncodeToString(hash[:])
}

func requestHash(body string) string {
	hash := sha256.Sum256([]byte(body))
	return hex.EncodeToString(hash[:])
}

// Process runs handler under the client-supplied idempotency key. A repeat
// of a completed request returns the stored response without invoking
// handler; a repeat of an in-flight request is rejected; a repeat of a
// failed request runs again as if the first attempt never happened, so
// "please try again" responses stay retryable.
func (s *Service) Process(ctx context.Context, userID, endpoint, idempotencyKey, body string, handler func() (interface{}, error)) (interface{}, error) {
	key := recordKey(userID, endpoint, idempotencyKey)
	hash := requestHash(body)

	existing, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.RequestHash != hash {
			return nil, fmt.Errorf("idempotency key conflict: same key used for different request")
		}
		switch existing.Status {
		case "completed":
			var response interface{}
			if err := json.Unmarshal([]byte(existing.Response), &response); err != nil {
				return nil, fmt.Errorf("failed to unmarshal cached response: %v", err)
			}
			return response, nil
		case "pending":
			return nil, fmt.Errorf("request is already being processed")
		default:
			// A failed attempt must not block the retry.
			s.delete(ctx, key)
		}
	}

	record := &Record{
		Key:         key,
		UserID:      userID,
		RequestHash: hash,
		Status:      "pending",
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(recordLifetime),
		TTL:         time.Now().Add(recordLifetime).Unix(),
	}
	if err := s.store(ctx, record); err != nil {
		return nil, err
	}

	response, err := handler()
	if err != nil {
		s.update(ctx, key, fmt.Sprintf("error: %v", err), "failed")
		return nil, err
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		s.update(ctx, key, "error: failed to marshal response", "failed")
		return nil, fmt.Errorf("failed to marshal response: %v", err)
	}

	if err := s.update(ctx, key, string(responseJSON), "completed"); err != nil {
		// The handler already succeeded; a stale record only costs one
		// duplicate generation on retry.
		fmt.Printf("Warning: failed to update idempotency record: %v\n", err)
	}

	return response, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*Record, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency: %v", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record Record
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %v", err)
	}

	if time.Now().After(record.ExpiresAt) {
		s.delete(ctx, key)
		return nil, nil
	}

	return &record, nil
}

func (s *Service) store(ctx context.Context, record *Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency record: %v", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{
			"#key": "key",
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("idempotency key already exists")
		}
		return fmt.Errorf("failed to store idempotency record: %v", err)
	}

	return nil
}

func (s *Service) update(ctx context.Context, key, response, status string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression: aws.String("SET #response = :response, #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#response":   "response",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":response":   &types.AttributeValueMemberS{Value: response},
			":status":     &types.AttributeValueMemberS{Value: status},
			":updated_at": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update idempotency record: %v", err)
	}

	return nil
}

func (s *Service) delete(ctx context.Context, key string) {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		fmt.Printf("Warning: failed to delete stale idempotency record: %v\n", err)
	}
}
