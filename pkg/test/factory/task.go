package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/util"
)

// TaskSeed is the flat shape the fabricator fills in. Empty optional fields
// stay unset on the built task.
type TaskSeed struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

var taskDefaults = map[string]any{
	"Status":   string(domain.TaskStatusTodo),
	"Priority": "",
	"DueDate":  "",
}

func NewTaskSeed(customData ...map[string]any) TaskSeed {
	data := map[string]any{}

	for key, value := range taskDefaults {
		data[key] = value
	}

	for _, custom := range customData {
		for key, value := range custom {
			data[key] = value
		}
	}

	return fab.New(TaskSeed{}).Build(data)
}

// NewTask builds a task ready to be inserted, stamped with now.
func NewTask(now time.Time, customData ...map[string]any) domain.Task {
	seed := NewTaskSeed(customData...)

	var description *string
	if seed.Description != "" {
		description = &seed.Description
	}

	status := domain.TaskStatus(seed.Status)

	var priority *domain.TaskPriority
	if seed.Priority != "" {
		p := domain.TaskPriority(seed.Priority)
		priority = &p
	}

	var dueDate *time.Time
	if parsed, ok := util.ParseISO8601(seed.DueDate); ok {
		dueDate = &parsed
	}

	return domain.NewTask(seed.Title, description, &status, priority, dueDate, now.UTC().Truncate(time.Millisecond))
}
