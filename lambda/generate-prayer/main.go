package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/healpraybackend/internal/ai"
	"github.com/healpraybackend/internal/auth"
	"github.com/healpraybackend/internal/encryption"
	"github.com/healpraybackend/internal/idempotency"
	"github.com/healpraybackend/internal/llm"
	"github.com/healpraybackend/internal/models"
	"github.com/healpraybackend/internal/prayer"
	"github.com/healpraybackend/internal/store"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var (
	logger             = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service            *prayer.Service
	costControl        *llm.CostControlService
	idempotencyService *idempotency.Service
)

func handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	claims, err := auth.ValidateToken(request.Headers["Authorization"])
	if err != nil {
		return createErrorResponse(401, "UNAUTHENTICATED", "User must be authenticated to generate prayers", ""), nil
	}
	userID := claims.UserID

	var req models.PrayerRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return createErrorResponse(400, "INVALID_ARGUMENT", "Invalid JSON in request body", err.Error()), nil
	}

	// Reject bad payloads before the cost check so an invalid request
	// never touches the spend table or the idempotency store.
	if _, err := prayer.ValidateRequest(req); err != nil {
		return createErrorResponse(400, "INVALID_ARGUMENT", "Invalid prayer request data", err.Error()), nil
	}

	now := time.Now()

	// Prompt length bounds the input tokens; the 500-token cap bounds the
	// output side.
	estimatedCost := llm.EstimateCost(len(request.Body)/4, 500, "gpt-4")
	check, err := costControl.CheckSpendLimit(ctx, userID, estimatedCost, now)
	if err != nil {
		logger.Error("cost check failed", "user_id", userID, "error", err)
		return createErrorResponse(500, "INTERNAL", "Failed to generate prayer. Please try again.", ""), nil
	}
	if !check.Allowed {
		return createErrorResponse(429, "RESOURCE_EXHAUSTED", "Daily generation limit reached", check.Reason), nil
	}

	generate := func() (interface{}, error) {
		resp, err := service.Generate(ctx, userID, req, now)
		if err != nil {
			return nil, err
		}
		if err := costControl.RecordRequest(ctx, userID, estimatedCost, now); err != nil {
			logger.Warn("failed to record generation spend", "user_id", userID, "error", err)
		}
		return resp, nil
	}

	// Idempotency is opt-in: only requests carrying a key get the
	// cached-response treatment.
	var response interface{}
	if key := request.Headers["Idempotency-Key"]; key != "" {
		response, err = idempotencyService.Process(ctx, userID, "POST /prayers", key, request.Body, generate)
	} else {
		response, err = generate()
	}
	if err != nil {
		if errors.Is(err, prayer.ErrInvalidRequest) {
			return createErrorResponse(400, "INVALID_ARGUMENT", "Invalid prayer request data", err.Error()), nil
		}
		return createErrorResponse(500, "INTERNAL", "Failed to generate prayer. Please try again.", ""), nil
	}

	responseBody, err := json.Marshal(response)
	if err != nil {
		return createErrorResponse(500, "INTERNAL", "Error creating response", ""), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(responseBody),
	}, nil
}

func createErrorResponse(statusCode int, code, message, details string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}
}

func init() {
	ctx := context.Background()

	primary := ai.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"), prayer.SystemInstruction)
	fallback, err := ai.NewGeminiGenerator(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"))
	if err != nil {
		fatal("gemini client", err)
	}

	prayers, err := store.NewPrayerStore(ctx)
	if err != nil {
		fatal("prayer store", err)
	}
	analytics, err := store.NewAnalyticsStore(ctx)
	if err != nil {
		fatal("analytics store", err)
	}
	errorLog, err := store.NewErrorLog(ctx)
	if err != nil {
		fatal("error log", err)
	}
	encrypter, err := encryption.NewKMSClient(ctx)
	if err != nil {
		fatal("kms client", err)
	}
	costControl, err = llm.NewCostControlService(ctx)
	if err != nil {
		fatal("cost control", err)
	}
	idempotencyService, err = idempotency.NewService(ctx)
	if err != nil {
		fatal("idempotency service", err)
	}

	service = prayer.NewService(primary, fallback, prayers, analytics, errorLog, encrypter, logger)
}

func fatal(component string, err error) {
	fmt.Printf("Error initializing %s: %v\n", component, err)
	os.Exit(1)
}

func main() {
	lambda.Start(handler)
}
