package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
)

// TaskRepository keeps tasks in process memory and mirrors the query
// semantics of the MongoDB adapter: soft-deleted tasks are invisible, missing
// sort keys order first, equal keys fall back to _id ascending.
type TaskRepository struct {
	mutex sync.RWMutex
	tasks map[primitive.ObjectID]domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[primitive.ObjectID]domain.Task),
	}
}

func (tr *TaskRepository) Find(ctx context.Context, query port.TaskQuery) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tr.mutex.RLock()
	matches := make([]domain.Task, 0, len(tr.tasks))

	for _, task := range tr.tasks {
		if matchesQuery(task, query) {
			matches = append(matches, clone(task))
		}
	}
	tr.mutex.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return less(matches[i], matches[j], query)
	})

	if query.Skip > 0 {
		if query.Skip >= int64(len(matches)) {
			return []domain.Task{}, nil
		}
		matches = matches[query.Skip:]
	}

	if query.Limit > 0 && query.Limit < int64(len(matches)) {
		matches = matches[:query.Limit]
	}

	return matches, nil
}

func (tr *TaskRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	task, ok := tr.tasks[id]
	if !ok || task.IsDeleted() {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return clone(task), nil
}

func (tr *TaskRepository) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.tasks[task.ID] = clone(task)

	return clone(task), nil
}

func (tr *TaskRepository) FindActiveAndUpdate(ctx context.Context, id primitive.ObjectID, changes port.TaskChanges) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	task, ok := tr.tasks[id]
	if !ok || task.IsDeleted() {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if changes.SetTitle && changes.Title != nil {
		task.Title = *changes.Title
	}

	if changes.SetDescription {
		task.Description = copyPtr(changes.Description)
	}

	if changes.SetStatus && changes.Status != nil {
		task.Status = *changes.Status
	}

	if changes.SetPriority {
		task.Priority = copyPtr(changes.Priority)
	}

	if changes.SetDueDate {
		task.DueDate = copyPtr(changes.DueDate)
	}

	task.UpdatedAt = changes.UpdatedAt
	tr.tasks[id] = task

	return clone(task), nil
}

func (tr *TaskRepository) MarkDeleted(ctx context.Context, id primitive.ObjectID, deletedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	task, ok := tr.tasks[id]
	if !ok || task.IsDeleted() {
		return domain.ErrTaskNotFound
	}

	task.SoftDelete(deletedAt)
	tr.tasks[id] = task

	return nil
}

// All returns every stored task, soft-deleted ones included, in _id order.
func (tr *TaskRepository) All() []domain.Task {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	all := make([]domain.Task, 0, len(tr.tasks))
	for _, task := range tr.tasks {
		all = append(all, clone(task))
	}

	sort.Slice(all, func(i, j int) bool {
		return compareIDs(all[i].ID, all[j].ID) < 0
	})

	return all
}

func matchesQuery(task domain.Task, query port.TaskQuery) bool {
	if task.IsDeleted() {
		return false
	}

	if query.Status != nil && task.Status != *query.Status {
		return false
	}

	if query.Priority != nil && (task.Priority == nil || *task.Priority != *query.Priority) {
		return false
	}

	return true
}

func less(a, b domain.Task, query port.TaskQuery) bool {
	var cmp int

	switch query.SortBy {
	case "dueDate":
		cmp = compareOptionalTimes(a.DueDate, b.DueDate)
	default:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}

	if query.Order == port.SortDesc {
		cmp = -cmp
	}

	if cmp != 0 {
		return cmp < 0
	}

	return compareIDs(a.ID, b.ID) < 0
}

func compareOptionalTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func compareIDs(a, b primitive.ObjectID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}

	return 0
}

func clone(task domain.Task) domain.Task {
	task.Description = copyPtr(task.Description)
	task.Priority = copyPtr(task.Priority)
	task.DueDate = copyPtr(task.DueDate)
	task.DeletedAt = copyPtr(task.DeletedAt)

	return task
}

func copyPtr[T any](value *T) *T {
	if value == nil {
		return nil
	}

	copied := *value
	return &copied
}
