package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "taskapi/internal/adapter/database/mongo"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	"taskapi/internal/core/telemetry"
	. "taskapi/pkg/tracing"
)

type TaskRepository struct {
	collection *mongo.Collection
	metrics    port.Metrics
}

func NewTaskRepository(db *database.DB, metrics port.Metrics) port.TaskRepository {
	if metrics == nil {
		metrics = telemetry.NewNoOpMetrics()
	}

	return &TaskRepository{
		collection: db.Tasks(),
		metrics:    metrics,
	}
}

func (tr *TaskRepository) Find(ctx context.Context, query port.TaskQuery) ([]domain.Task, error) {
	tasks := []domain.Task{}

	err := tr.observe(ctx, "find", func(ctx context.Context) error {
		cursor, err := tr.collection.Find(ctx, FindFilter(query), FindOptions(query))
		if err != nil {
			return err
		}

		return cursor.All(ctx, &tasks)
	})

	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	return tasks, nil
}

func (tr *TaskRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (domain.Task, error) {
	var task domain.Task

	err := tr.observe(ctx, "findOne", func(ctx context.Context) error {
		return tr.collection.FindOne(ctx, domain.ActiveFilter(bson.M{"_id": id})).Decode(&task)
	})

	if domain.IsNotFound(err) {
		return domain.Task{}, err
	}

	if err != nil {
		return domain.Task{}, fmt.Errorf("find task %s: %w", id.Hex(), err)
	}

	return task, nil
}

func (tr *TaskRepository) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	err := tr.observe(ctx, "insert", func(ctx context.Context) error {
		_, err := tr.collection.InsertOne(ctx, task)
		return err
	})

	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

func (tr *TaskRepository) FindActiveAndUpdate(ctx context.Context, id primitive.ObjectID, changes port.TaskChanges) (domain.Task, error) {
	var task domain.Task

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := tr.observe(ctx, "findOneAndUpdate", func(ctx context.Context) error {
		return tr.collection.FindOneAndUpdate(ctx,
			domain.ActiveFilter(bson.M{"_id": id}),
			bson.M{"$set": UpdateDocument(changes)},
			opts,
		).Decode(&task)
	})

	if domain.IsNotFound(err) {
		return domain.Task{}, err
	}

	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %s: %w", id.Hex(), err)
	}

	return task, nil
}

func (tr *TaskRepository) MarkDeleted(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error {
	var result *mongo.UpdateResult

	err := tr.observe(ctx, "updateOne", func(ctx context.Context) error {
		var err error
		result, err = tr.collection.UpdateOne(ctx,
			domain.ActiveFilter(bson.M{"_id": id}),
			bson.M{"$set": bson.M{"deletedAt": deletedAt}},
		)
		if err == nil && result.MatchedCount == 0 {
			return domain.ErrTaskNotFound
		}
		return err
	})

	if domain.IsNotFound(err) {
		return err
	}

	if err != nil {
		return fmt.Errorf("delete task %s: %w", id.Hex(), err)
	}

	return nil
}

// observe runs a store call inside a span and records it. A missing document
// comes back as domain.ErrTaskNotFound.
func (tr *TaskRepository) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()

	err := StoreSpanWrapper(ctx, database.TasksCollection, operation, fn)

	if errors.Is(err, mongo.ErrNoDocuments) {
		err = domain.ErrTaskNotFound
	}

	tr.metrics.RecordStoreOperation(ctx, operation, database.TasksCollection, time.Since(start), err)

	return err
}

// FindFilter translates a list query into an active-only filter document.
func FindFilter(query port.TaskQuery) bson.M {
	filter := bson.M{}

	if query.Status != nil {
		filter["status"] = *query.Status
	}

	if query.Priority != nil {
		filter["priority"] = *query.Priority
	}

	return domain.ActiveFilter(filter)
}

// FindOptions sorts by the requested key and then by _id ascending so that
// equal keys come back in insertion order.
func FindOptions(query port.TaskQuery) *options.FindOptions {
	order := query.Order
	if order == 0 {
		order = port.SortAsc
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	opts := options.Find().SetSort(bson.D{
		{Key: sortBy, Value: int(order)},
		{Key: "_id", Value: 1},
	})

	if query.Skip > 0 {
		opts.SetSkip(query.Skip)
	}

	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	return opts
}

// UpdateDocument builds the $set document. Cleared fields are written as null.
func UpdateDocument(changes port.TaskChanges) bson.M {
	set := bson.M{"updatedAt": changes.UpdatedAt}

	if changes.SetTitle && changes.Title != nil {
		set["title"] = *changes.Title
	}

	if changes.SetDescription {
		set["description"] = changes.Description
	}

	if changes.SetStatus && changes.Status != nil {
		set["status"] = *changes.Status
	}

	if changes.SetPriority {
		set["priority"] = changes.Priority
	}

	if changes.SetDueDate {
		set["dueDate"] = changes.DueDate
	}

	return set
}
