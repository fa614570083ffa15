package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"taskapi/internal/adapter/database/memory"
	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/adapter/http/routes"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/service"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
	"taskapi/pkg/test/factory"
)

const AuthToken = "test-secret"

// TestServer is the whole API over the memory store.
type TestServer struct {
	Repo    *memory.TaskRepository
	Service *service.TaskService
	Router  *gin.Engine
	Config  *config.AppConfig
}

func TestConfig() *config.AppConfig {
	cfg := config.GetDefaultConfig()
	cfg.AuthToken = AuthToken
	cfg.StoreDriver = config.StoreDriverMemory

	return cfg
}

func NewTestServer(opts ...service.Option) *TestServer {
	return NewTestServerWithConfig(TestConfig(), opts...)
}

func NewTestServerWithConfig(cfg *config.AppConfig, opts ...service.Option) *TestServer {
	repo := memory.NewTaskRepository()

	opts = append([]service.Option{service.WithUpdateMode(service.UpdateMode(cfg.UpdateMode))}, opts...)
	svc := service.NewTaskService(repo, opts...)

	router := NewRouter(handler.NewTaskHandler(svc, config.NewNopLogger()), cfg)

	return &TestServer{
		Repo:    repo,
		Service: svc,
		Router:  router,
		Config:  cfg,
	}
}

// NewRouter builds the production router with a silent logger and metrics
// kept on a private registry.
func NewRouter(taskHandler *handler.TaskHandler, cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())

	return routes.SetupRouter(routes.HandlersConfig{TaskHandler: taskHandler}, metrics, config.NewNopLogger(), cfg)
}

// Request sends an authenticated request. An empty body sends none.
func (ts *TestServer) Request(method, path, body string) *httptest.ResponseRecorder {
	return ts.RequestWithAuth(method, path, body, "Bearer "+ts.Config.AuthToken)
}

// RequestWithAuth sends the request with the given Authorization header, or
// without one when authorization is empty.
func (ts *TestServer) RequestWithAuth(method, path, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request

	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rr := httptest.NewRecorder()
	ts.Router.ServeHTTP(rr, req)

	return rr
}

// SeedTask inserts a fabricated task straight into the store.
func (ts *TestServer) SeedTask(t *testing.T, customData ...map[string]any) domain.Task {
	return ts.SeedTaskAt(t, time.Now(), customData...)
}

func (ts *TestServer) SeedTaskAt(t *testing.T, createdAt time.Time, customData ...map[string]any) domain.Task {
	t.Helper()

	task, err := ts.Repo.Insert(context.Background(), factory.NewTask(createdAt, customData...))
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	return task
}
