package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/healpraybackend/internal/db"
	"github.com/healpraybackend/internal/push"
)

var (
	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	sender *push.Service
)

// handler runs once per day on the EventBridge schedule and fans out the
// morning reminder to every opted-in user with a device token. Individual
// send failures are counted, not retried.
func handler(ctx context.Context, event events.CloudWatchEvent) error {
	users, err := db.MorningOptIns()
	if err != nil {
		logger.Error("failed to query morning opt-ins", "error", err)
		return nil
	}

	if len(users) == 0 {
		logger.Info("no users opted into morning notifications")
		return nil
	}

	targets := make([]push.Target, len(users))
	for i, user := range users {
		targets[i] = push.Target{
			Token: user.FCMToken,
			Notification: push.Notification{
				Title: "Good Morning 🌅",
				Body:  "Start your day with a moment of hope and gratitude",
				Data: map[string]string{
					"type":   "morning_prayer",
					"userId": user.ID,
				},
			},
		}
	}

	sent, failed := sender.SendBatch(ctx, targets)
	logger.Info("morning notifications dispatched", "sent", sent, "failed", failed)

	return nil
}

func init() {
	if err := db.InitDB(); err != nil {
		fmt.Printf("Error initializing database: %v\n", err)
		os.Exit(1)
	}

	var err error
	sender, err = push.NewService(context.Background(), logger)
	if err != nil {
		fmt.Printf("Error initializing push service: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	lambda.Start(handler)
}
