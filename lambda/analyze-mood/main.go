package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/healpraybackend/internal/crisis"
	"github.com/healpraybackend/internal/db"
	"github.com/healpraybackend/internal/models"
	"github.com/healpraybackend/internal/mood"
	"github.com/healpraybackend/internal/push"
	"github.com/healpraybackend/internal/store"
)

var (
	logger   = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	analyzer *mood.Analyzer
)

// userDB and analyticsDB adapt the package-level db functions to the
// analyzer's injected interfaces.
type userDB struct{}

func (userDB) GetUser(userID string) (*models.User, error) {
	return db.GetUser(userID)
}

type analyticsDB struct{}

func (analyticsDB) MergeAnalytics(userID string, a models.UserAnalytics) error {
	return db.MergeAnalytics(userID, a)
}

// handler fires once per batch of mood-entry stream records. It never
// returns an error: there is no caller to answer, and failing the batch
// would only replay entries whose failures are already in the error log.
func handler(ctx context.Context, event events.DynamoDBEvent) error {
	now := time.Now()

	for _, record := range event.Records {
		if record.EventName != "INSERT" {
			continue
		}

		image := record.Change.NewImage
		userAttr, ok := image["user_id"]
		if !ok {
			logger.Warn("mood entry record missing user_id", "event_id", record.EventID)
			continue
		}

		analyzer.Analyze(ctx, userAttr.String(), now)
	}

	return nil
}

func init() {
	if err := db.InitDB(); err != nil {
		fatal("database", err)
	}

	ctx := context.Background()

	moods, err := store.NewMoodStore(ctx)
	if err != nil {
		fatal("mood store", err)
	}
	crisisEvents, err := store.NewCrisisStore(ctx)
	if err != nil {
		fatal("crisis store", err)
	}
	errorLog, err := store.NewErrorLog(ctx)
	if err != nil {
		fatal("error log", err)
	}
	sender, err := push.NewService(ctx, logger)
	if err != nil {
		fatal("push service", err)
	}

	notifier := crisis.NewNotifier(userDB{}, sender, crisisEvents, logger)
	analyzer = mood.NewAnalyzer(moods, analyticsDB{}, notifier, errorLog, logger)
}

func fatal(component string, err error) {
	fmt.Printf("Error initializing %s: %v\n", component, err)
	os.Exit(1)
}

func main() {
	lambda.Start(handler)
}
