package mongo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	TasksCollection = "tasks"
	connectTimeout  = 10 * time.Second
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func (db *DB) Tasks() *mongo.Collection {
	return db.Database.Collection(TasksCollection)
}

// NewDB connects, pings the primary and makes sure the task indexes exist.
// Commands are logged at debug level through zerolog.
func NewDB(ctx context.Context, uri, database string, level zerolog.Level) (*DB, error) {
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("component", "mongo").Logger()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMonitor(NewCommandMonitor(logger))

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := &DB{
		Client:   client,
		Database: client.Database(database),
	}

	if err := db.EnsureIndexes(connectCtx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Tasks().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "deletedAt", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "deletedAt", Value: 1}, {Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "deletedAt", Value: 1}, {Key: "status", Value: 1}, {Key: "priority", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create task indexes: %w", err)
	}

	return nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

// NewCommandMonitor logs every command the driver sends.
func NewCommandMonitor(logger zerolog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			logger.Debug().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Int64("request_id", evt.RequestID).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			logger.Debug().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Msg("mongo command succeeded")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Error().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}
