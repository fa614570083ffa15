package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	UpdateModeReplace = "replace"
	UpdateModeMerge   = "merge"
)

type AppConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	Port      string
	AuthToken string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	UpdateMode string

	RateLimitEnabled bool
	RateLimit        RateLimitConfig

	MetricsPort  string
	OTLPEndpoint string
	LokiURL      string
	LogLevel     string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName:    "taskapi",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Port:           "3000",
		StoreDriver:    StoreDriverMongo,
		MongoDatabase:  "taskapi",
		UpdateMode:     UpdateModeReplace,
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		MetricsPort: "9091",
		LogLevel:    "info",
	}
}

// Load reads the process environment once. It fails when a required value is
// missing or a value cannot be parsed, so the service never starts half
// configured.
func Load() (*AppConfig, error) {
	return LoadFrom(os.LookupEnv)
}

func LoadFrom(lookup func(string) (string, bool)) (*AppConfig, error) {
	config := GetDefaultConfig()

	var errs []error

	get := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	get("PORT", &config.Port)
	get("AUTH_TOKEN", &config.AuthToken)
	get("STORE_DRIVER", &config.StoreDriver)
	get("MONGO_URI", &config.MongoURI)
	get("MONGO_DATABASE", &config.MongoDatabase)
	get("UPDATE_MODE", &config.UpdateMode)
	get("METRICS_PORT", &config.MetricsPort)
	get("OTLP_ENDPOINT", &config.OTLPEndpoint)
	get("LOKI_URL", &config.LokiURL)
	get("LOG_LEVEL", &config.LogLevel)

	if mode, _ := lookup("GIN_MODE"); mode == "release" {
		config.Environment = "production"
	}

	if value, ok := lookup("RATE_LIMIT_ENABLED"); ok && value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_ENABLED: %w", err))
		}
		config.RateLimitEnabled = enabled
	}

	if value, ok := lookup("RATE_LIMIT_REQUESTS"); ok && value != "" {
		requests, err := strconv.Atoi(value)
		if err != nil || requests < 1 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be a positive integer, got %q", value))
		}
		config.RateLimit.Requests = requests
	}

	if value, ok := lookup("RATE_LIMIT_WINDOW"); ok && value != "" {
		window, err := time.ParseDuration(value)
		if err != nil || window <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration, got %q", value))
		}
		config.RateLimit.Window = window
	}

	if err := config.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return config, nil
}

func (c *AppConfig) Validate() error {
	var errs []error

	if c.AuthToken == "" {
		errs = append(errs, errors.New("AUTH_TOKEN is required"))
	}

	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverMongo, StoreDriverMemory, c.StoreDriver))
	}

	if c.UpdateMode != UpdateModeReplace && c.UpdateMode != UpdateModeMerge {
		errs = append(errs, fmt.Errorf("UPDATE_MODE must be %q or %q, got %q", UpdateModeReplace, UpdateModeMerge, c.UpdateMode))
	}

	return errors.Join(errs...)
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
