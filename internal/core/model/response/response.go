package response

import (
	"time"

	"taskapi/internal/core/domain"
)

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

func NewTaskResponse(task domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		DeletedAt:   task.DeletedAt,
	}

	if task.Priority != nil {
		priority := string(*task.Priority)
		resp.Priority = &priority
	}

	return resp
}

func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	data := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		data = append(data, NewTaskResponse(task))
	}

	return data
}

type ValidationError struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

type ValidationErrorResponse struct {
	Errors []ValidationError `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
