package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	"taskapi/internal/core/telemetry"
	. "taskapi/pkg/tracing"
)

type UpdateMode string

const (
	// UpdateModeReplace writes every updatable field on PUT. Omitted optional
	// fields are cleared, an omitted status falls back to TODO and the title
	// is kept because it can never be empty.
	UpdateModeReplace UpdateMode = "replace"
	// UpdateModeMerge writes only the fields present in the request body.
	UpdateModeMerge UpdateMode = "merge"
)

type TaskService struct {
	repo       port.TaskRepository
	metrics    port.Metrics
	updateMode UpdateMode
	now        func() time.Time
}

type Option func(*TaskService)

func WithUpdateMode(mode UpdateMode) Option {
	return func(ts *TaskService) {
		if mode != "" {
			ts.updateMode = mode
		}
	}
}

func WithMetrics(metrics port.Metrics) Option {
	return func(ts *TaskService) {
		if metrics != nil {
			ts.metrics = metrics
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(ts *TaskService) {
		ts.now = now
	}
}

func NewTaskService(repo port.TaskRepository, opts ...Option) *TaskService {
	ts := &TaskService{
		repo:       repo,
		metrics:    telemetry.NewNoOpMetrics(),
		updateMode: UpdateModeReplace,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(ts)
	}

	return ts
}

func (ts *TaskService) Create(ctx context.Context, input port.CreateTaskInput) (domain.Task, error) {
	ctx, span := CreateChildSpan(ctx, "service.task.Create", []attribute.KeyValue{
		attribute.String("task.title", input.Title),
	})
	defer span.End()

	task := domain.NewTask(input.Title, input.Description, input.Status, input.Priority, input.DueDate, ts.timestamp())

	if err := task.Validate(); err != nil {
		return domain.Task{}, domain.NewAppError(http.StatusBadRequest, "Validation failed: "+err.Error(), err)
	}

	created, err := ts.repo.Insert(ctx, task)
	ts.metrics.RecordTaskOperation(ctx, "create", err)

	if err != nil {
		AddSpanError(span, err)
		slog.Error("Repository insert failed", "error", err, "title", task.Title)
		return domain.Task{}, err
	}

	return created, nil
}

func (ts *TaskService) List(ctx context.Context, query port.TaskQuery) ([]domain.Task, error) {
	ctx, span := CreateChildSpan(ctx, "service.task.List", []attribute.KeyValue{
		attribute.String("task.sort", query.SortBy),
		attribute.Int64("task.limit", query.Limit),
		attribute.Int64("task.skip", query.Skip),
	})
	defer span.End()

	tasks, err := ts.repo.Find(ctx, query)
	ts.metrics.RecordTaskOperation(ctx, "list", err)

	if err != nil {
		AddSpanError(span, err)
		return nil, err
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}

func (ts *TaskService) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Task, error) {
	ctx, span := CreateChildSpan(ctx, "service.task.GetByID", []attribute.KeyValue{
		attribute.String("task.id", id.Hex()),
	})
	defer span.End()

	task, err := ts.repo.FindActiveByID(ctx, id)
	ts.metrics.RecordTaskOperation(ctx, "get", err)

	if err != nil {
		AddSpanError(span, err)
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) Update(ctx context.Context, id primitive.ObjectID, input port.UpdateTaskInput) (domain.Task, error) {
	ctx, span := CreateChildSpan(ctx, "service.task.Update", []attribute.KeyValue{
		attribute.String("task.id", id.Hex()),
		attribute.String("task.update_mode", string(ts.updateMode)),
	})
	defer span.End()

	changes, err := ts.changesFor(input)

	if err != nil {
		return domain.Task{}, err
	}

	task, err := ts.repo.FindActiveAndUpdate(ctx, id, changes)
	ts.metrics.RecordTaskOperation(ctx, "update", err)

	if err != nil {
		AddSpanError(span, err)
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := CreateChildSpan(ctx, "service.task.SoftDelete", []attribute.KeyValue{
		attribute.String("task.id", id.Hex()),
	})
	defer span.End()

	task, err := ts.repo.FindActiveByID(ctx, id)

	if err != nil {
		ts.metrics.RecordTaskOperation(ctx, "delete", err)
		AddSpanError(span, err)
		return err
	}

	task.SoftDelete(ts.timestamp())

	err = ts.repo.MarkDeleted(ctx, task.ID, *task.DeletedAt)
	ts.metrics.RecordTaskOperation(ctx, "delete", err)

	if err != nil {
		AddSpanError(span, err)
		return err
	}

	return nil
}

func (ts *TaskService) changesFor(input port.UpdateTaskInput) (port.TaskChanges, error) {
	changes := port.TaskChanges{UpdatedAt: ts.timestamp()}

	switch ts.updateMode {
	case UpdateModeMerge:
		changes.Title, changes.SetTitle = input.TitleIfProvided()
		changes.Description, changes.SetDescription = input.Description, input.Has("description")
		changes.Priority, changes.SetPriority = input.Priority, input.Has("priority")
		changes.DueDate, changes.SetDueDate = input.DueDate, input.Has("dueDate")

		if input.Has("status") {
			changes.Status, changes.SetStatus = statusOrDefault(input.Status), true
		}
	case UpdateModeReplace:
		changes.Title, changes.SetTitle = input.TitleIfProvided()
		changes.Description, changes.SetDescription = input.Description, true
		changes.Priority, changes.SetPriority = input.Priority, true
		changes.DueDate, changes.SetDueDate = input.DueDate, true
		changes.Status, changes.SetStatus = statusOrDefault(input.Status), true
	default:
		return port.TaskChanges{}, fmt.Errorf("unknown update mode %q", ts.updateMode)
	}

	if changes.SetTitle && *changes.Title == "" {
		return port.TaskChanges{}, domain.NewAppError(http.StatusBadRequest, "Validation failed: title is required", nil)
	}

	return changes, nil
}

// timestamp is truncated to what BSON dates can hold so stored and returned
// values compare equal.
func (ts *TaskService) timestamp() time.Time {
	return ts.now().UTC().Truncate(time.Millisecond)
}

func statusOrDefault(status *domain.TaskStatus) *domain.TaskStatus {
	if status != nil {
		return status
	}

	fallback := domain.TaskStatusTodo
	return &fallback
}
