package request

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	"taskapi/internal/core/util"
)

const (
	DefaultSort  = "createdAt"
	DefaultOrder = "asc"
	DefaultLimit = 10
	DefaultSkip  = 0
)

type TaskIDParams struct {
	ID string `uri:"id" validate:"objectid"`
}

func (p TaskIDParams) ObjectID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(p.ID)
	return id
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"dueDate" validate:"omitempty,iso8601"`
}

func (r CreateTaskRequest) ToInput() port.CreateTaskInput {
	return port.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      toStatus(r.Status),
		Priority:    toPriority(r.Priority),
		DueDate:     toTime(r.DueDate),
	}
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"dueDate" validate:"omitempty,iso8601"`
}

func (r UpdateTaskRequest) ToInput(provided map[string]bool) port.UpdateTaskInput {
	input := port.UpdateTaskInput{
		CreateTaskInput: port.CreateTaskInput{
			Description: r.Description,
			Status:      toStatus(r.Status),
			Priority:    toPriority(r.Priority),
			DueDate:     toTime(r.DueDate),
		},
		Provided: provided,
	}

	if r.Title != nil {
		input.Title = *r.Title
	}

	return input
}

type ListTasksQuery struct {
	Status   *string `form:"status" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority *string `form:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Sort     *string `form:"sort" validate:"omitempty,oneof=createdAt dueDate"`
	Order    *string `form:"order" validate:"omitempty,oneof=asc desc"`
	Limit    *string `form:"limit" validate:"omitempty,intmin=1"`
	Skip     *string `form:"skip" validate:"omitempty,intmin=0"`
}

// ToQuery applies the list defaults. It expects a query that already passed
// validation.
func (q ListTasksQuery) ToQuery() port.TaskQuery {
	query := port.TaskQuery{
		Status:   toStatus(q.Status),
		Priority: toPriority(q.Priority),
		SortBy:   DefaultSort,
		Order:    port.SortAsc,
		Limit:    DefaultLimit,
		Skip:     DefaultSkip,
	}

	if q.Sort != nil {
		query.SortBy = *q.Sort
	}

	if q.Order != nil && *q.Order == "desc" {
		query.Order = port.SortDesc
	}

	if limit, ok := util.ParseInt(q.Limit); ok {
		query.Limit = limit
	}

	if skip, ok := util.ParseInt(q.Skip); ok {
		query.Skip = skip
	}

	return query
}

func toStatus(value *string) *domain.TaskStatus {
	if value == nil {
		return nil
	}

	status := domain.TaskStatus(*value)
	return &status
}

func toPriority(value *string) *domain.TaskPriority {
	if value == nil {
		return nil
	}

	priority := domain.TaskPriority(*value)
	return &priority
}

func toTime(value *string) *time.Time {
	if value == nil {
		return nil
	}

	parsed, ok := util.ParseISO8601(*value)
	if !ok {
		return nil
	}

	return &parsed
}
