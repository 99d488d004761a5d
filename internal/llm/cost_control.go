// Package llm meters per-user spend on the text-generation providers so a
// single user cannot run up the AI bill.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// defaultDailyLimit is the per-user spend ceiling in USD per calendar day.
const defaultDailyLimit = 1.0

type CostControlService struct {
	client    *dynamodb.Client
	tableName string
}

type SpendRecord struct {
	UserID     string  `dynamodbav:"user_id"`
	Date       string  `dynamodbav:"date"`
	Requests   int     `dynamodbav:"requests"`
	Cost       float64 `dynamodbav:"cost"`
	DailyLimit float64 `dynamodbav:"daily_limit"`
	UpdatedAt  string  `dynamodbav:"updated_at"`
	TTL        int64   `dynamodbav:"ttl"`
}

type CostCheck struct {
	Allowed   bool
	Remaining float64
	Reason    string
}

func NewCostControlService(ctx context.Context) (*CostControlService, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	tableName := "healpray-user-spend"
	if envTable := os.Getenv("USER_SPEND_TABLE_NAME"); envTable != "" {
		tableName = envTable
	}

	return &CostControlService{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// CheckSpendLimit reports whether the user may make one more generation
// request today given its estimated cost.
func (s *CostControlService) CheckSpendLimit(ctx context.Context, userID string, estimatedCost float64, now time.Time) (*CostCheck, error) {
	record, err := s.getSpendRecord(ctx, userID, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	limit := defaultDailyLimit
	spent := 0.0
	if record != nil {
		limit = record.DailyLimit
		spent = record.Cost
	}

	check := &CostCheck{Remaining: limit - spent}
	if spent+estimatedCost > limit {
		check.Reason = fmt.Sprintf("daily limit exceeded: spent $%.4f of $%.4f", spent, limit)
		return check, nil
	}

	check.Allowed = true
	return check, nil
}

// RecordRequest adds one generation request and its cost to today's record.
func (s *CostControlService) RecordRequest(ctx context.Context, userID string, cost float64, now time.Time) error {
	date := now.Format("2006-01-02")
	record, err := s.getSpendRecord(ctx, userID, date)
	if err != nil {
		return err
	}

	if record == nil {
		record = &SpendRecord{
			UserID:     userID,
			Date:       date,
			DailyLimit: defaultDailyLimit,
		}
	}

	record.Requests++
	record.Cost += cost
	record.UpdatedAt = now.Format(time.RFC3339)
	record.TTL = now.Add(7 * 24 * time.Hour).Unix()

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal spend record: %v", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put spend record: %v", err)
	}

	return nil
}

func (s *CostControlService) getSpendRecord(ctx context.Context, userID, date string) (*SpendRecord, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
			"date":    &types.AttributeValueMemberS{Value: date},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get spend record: %v", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record SpendRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spend record: %v", err)
	}

	return &record, nil
}

// EstimateCost approximates the cost of one generation from token counts.
// Prompt length gives the input tokens; the 500-token output cap bounds
// the rest.
func EstimateCost(inputTokens, outputTokens int, model string) float64 {
	costs := map[string]struct {
		input  float64
		output float64
	}{
		"gpt-4": {
			input:  0.03,  // $30.00 per 1M input tokens
			output: 0.06,  // $60.00 per 1M output tokens
		},
		"gemini-pro": {
			input:  0.000125, // $0.125 per 1M input tokens
			output: 0.000375, // $0.375 per 1M output tokens
		},
	}

	modelCosts, exists := costs[model]
	if !exists {
		modelCosts = costs["gpt-4"]
	}

	inputCost := (float64(inputTokens) / 1000.0) * modelCosts.input
	outputCost := (float64(outputTokens) / 1000.0) * modelCosts.output

	return inputCost + outputCost
}
