package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const TitleMaxLength = 100

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

var (
	TaskStatuses   = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}
	TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
)

// Task is stored as-is in the tasks collection. DeletedAt is written as an
// explicit null while the task is active.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description"`
	Status      TaskStatus         `bson:"status"`
	Priority    *TaskPriority      `bson:"priority"`
	DueDate     *time.Time         `bson:"dueDate"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
	DeletedAt   *time.Time         `bson:"deletedAt"`
}

// NewTask applies the entity defaults: status TODO, both timestamps set to now
// and an active deletion state.
func NewTask(title string, description *string, status *TaskStatus, priority *TaskPriority, dueDate *time.Time, now time.Time) Task {
	task := Task{
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if status != nil {
		task.Status = *status
	}

	return task
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Task) SoftDelete(now time.Time) {
	t.DeletedAt = &now
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}

	if len([]rune(t.Title)) > TitleMaxLength {
		return fmt.Errorf("title must not exceed %d characters", TitleMaxLength)
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}

	if t.Priority != nil && !t.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *t.Priority)
	}

	return nil
}

func (s TaskStatus) IsValid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}

	return false
}

func (p TaskPriority) IsValid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}

	return false
}

// ActiveFilter restricts a query to tasks that were not soft-deleted. A null
// match also covers documents where the field is missing.
func ActiveFilter(filter bson.M) bson.M {
	active := bson.M{"deletedAt": nil}

	for key, value := range filter {
		active[key] = value
	}

	return active
}
