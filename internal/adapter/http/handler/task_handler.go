package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	. "taskapi/internal/adapter/http/helper"
	. "taskapi/internal/adapter/http/validation"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
	"taskapi/internal/core/port"
	"taskapi/pkg/config"
	. "taskapi/pkg/tracing"
)

type TaskHandler struct {
	svc    port.TaskService
	Logger *config.Logger
}

func NewTaskHandler(svc port.TaskService, logger *config.Logger) *TaskHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &TaskHandler{
		svc:    svc,
		Logger: logger,
	}
}

func handlerAttributes(c *gin.Context, operation string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	}
}

func (t *TaskHandler) Create(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.Create", handlerAttributes(c, "Create"))
	defer span.End()

	var params request.CreateTaskRequest

	_, violations, err := BindBody(c, &params)

	if err != nil {
		c.Error(err)
		return
	}

	if len(violations) > 0 {
		reject(c, span, violations)
		return
	}

	task, err := t.svc.Create(ctx, params.ToInput())

	if err != nil {
		AddSpanError(span, err)
		c.Error(err)
		return
	}

	t.Logger.Info(ctx, "Task created", zap.String("task_id", task.ID.Hex()))

	SendSuccess(c, http.StatusCreated, response.NewTaskResponse(task))
}

func (t *TaskHandler) List(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.List", handlerAttributes(c, "List"))
	defer span.End()

	var params request.ListTasksQuery

	if violations := BindQuery(c, &params); len(violations) > 0 {
		reject(c, span, violations)
		return
	}

	query := params.ToQuery()

	span.SetAttributes(
		attribute.String("task.sort", query.SortBy),
		attribute.Int64("task.limit", query.Limit),
		attribute.Int64("task.skip", query.Skip),
	)

	tasks, err := t.svc.List(ctx, query)

	if err != nil {
		AddSpanError(span, err)
		c.Error(err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTaskListResponse(tasks))
}

func (t *TaskHandler) GetByID(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.GetByID", handlerAttributes(c, "GetByID"))
	defer span.End()

	var params request.TaskIDParams

	if violations := BindParams(c, &params); len(violations) > 0 {
		reject(c, span, violations)
		return
	}

	task, err := t.svc.GetByID(ctx, params.ObjectID())

	if err != nil {
		t.fail(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Update(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.Update", handlerAttributes(c, "Update"))
	defer span.End()

	var params request.TaskIDParams
	var body request.UpdateTaskRequest

	violations := BindParams(c, &params)

	provided, bodyViolations, err := BindBody(c, &body)

	if err != nil {
		c.Error(err)
		return
	}

	violations = append(violations, bodyViolations...)

	if len(violations) > 0 {
		reject(c, span, violations)
		return
	}

	task, err := t.svc.Update(ctx, params.ObjectID(), body.ToInput(provided))

	if err != nil {
		t.fail(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Delete(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.Delete", handlerAttributes(c, "Delete"))
	defer span.End()

	var params request.TaskIDParams

	if violations := BindParams(c, &params); len(violations) > 0 {
		reject(c, span, violations)
		return
	}

	if err := t.svc.SoftDelete(ctx, params.ObjectID()); err != nil {
		t.fail(c, span, err)
		return
	}

	t.Logger.Info(ctx, "Task deleted", zap.String("task_id", params.ID))

	SendNoContent(c)
}

// reject answers 400 with every violation and notes the failure on the span.
func reject(c *gin.Context, span trace.Span, violations []response.ValidationError) {
	fields := make([]string, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, violation.Field)
	}

	AddSpanEvent(span, "validation.failed", []attribute.KeyValue{
		attribute.Int("validation.violations", len(violations)),
		attribute.StringSlice("validation.fields", fields),
	})

	SendValidationErrors(c, violations)
}

// fail answers not-found directly and leaves every other error to the error
// boundary.
func (t *TaskHandler) fail(c *gin.Context, span trace.Span, err error) {
	if domain.IsNotFound(err) {
		SendNotFoundError(c, domain.ErrTaskNotFound.Message)
		return
	}

	AddSpanError(span, err)
	c.Error(err)
}
