package http

import (
	"fmt"

	"taskapi/internal/adapter/database/memory"
	database "taskapi/internal/adapter/database/mongo"
	repository "taskapi/internal/adapter/database/mongo/repository"
	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/core/port"
	"taskapi/internal/core/service"
	"taskapi/pkg/config"
)

type Container struct {
	TaskRepo    port.TaskRepository
	TaskService port.TaskService
	TaskHandler *handler.TaskHandler
}

// NewContainer wires the task stack. db is only used by the mongo driver and
// may be nil for the memory driver.
func NewContainer(cfg *config.AppConfig, db *database.DB, metrics port.Metrics, logger *config.Logger) (*Container, error) {
	var taskRepo port.TaskRepository

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		if db == nil {
			return nil, fmt.Errorf("store driver %q needs a database connection", cfg.StoreDriver)
		}
		taskRepo = repository.NewTaskRepository(db, metrics)
	case config.StoreDriverMemory:
		taskRepo = memory.NewTaskRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	taskSvc := service.NewTaskService(taskRepo,
		service.WithUpdateMode(service.UpdateMode(cfg.UpdateMode)),
		service.WithMetrics(metrics),
	)

	return &Container{
		TaskRepo:    taskRepo,
		TaskService: taskSvc,
		TaskHandler: handler.NewTaskHandler(taskSvc, logger),
	}, nil
}
