package port

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskapi/internal/core/domain"
)

type SortOrder int

const (
	SortAsc  SortOrder = 1
	SortDesc SortOrder = -1
)

// TaskQuery describes a list request. Soft-deleted tasks are always excluded.
type TaskQuery struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	SortBy   string
	Order    SortOrder
	Limit    int64
	Skip     int64
}

// TaskChanges is the field set an update writes. A nil field with its Set
// flag on writes null; a field with Set off is left untouched.
type TaskChanges struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	DueDate        *time.Time
	SetTitle       bool
	SetDescription bool
	SetStatus      bool
	SetPriority    bool
	SetDueDate     bool
	UpdatedAt      time.Time
}

type TaskRepository interface {
	Find(ctx context.Context, query TaskQuery) ([]domain.Task, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (domain.Task, error)
	Insert(ctx context.Context, task domain.Task) (domain.Task, error)
	FindActiveAndUpdate(ctx context.Context, id primitive.ObjectID, changes TaskChanges) (domain.Task, error)
	MarkDeleted(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (domain.Task, error)
	List(ctx context.Context, query TaskQuery) ([]domain.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateTaskInput) (domain.Task, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput keeps track of which fields the client sent so the service
// can tell an omitted field from an explicit null.
type UpdateTaskInput struct {
	CreateTaskInput
	Provided map[string]bool
}

func (u UpdateTaskInput) Has(field string) bool {
	return u.Provided[field]
}

func (u UpdateTaskInput) TitleIfProvided() (*string, bool) {
	if !u.Has("title") {
		return nil, false
	}

	title := u.Title
	return &title, true
}
