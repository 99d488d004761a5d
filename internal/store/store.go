// Package store holds the DynamoDB-backed document collections: prayers,
// mood entries, crisis events, analytics events, and the error log.
package store

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func newDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func tableName(envVar, fallback string) string {
	if name := os.Getenv(envVar); name != "" {
		return name
	}
	return fallback
}
