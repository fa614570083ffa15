package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide log sink. Lines go to stdout through zap and,
// when a Loki URL is configured, are pushed to Loki as well.
type Logger struct {
	Logger      *otelzap.Logger
	serviceName string
	lokiURL     string
	httpClient  *http.Client
}

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

func NewLogger(serviceName, lokiURL string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	logger := &Logger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}

	if lokiURL != "" {
		logger.lokiURL = lokiURL + "/loki/api/v1/push"
	}

	return logger, nil
}

// NewNopLogger discards everything. Tests use it.
func NewNopLogger() *Logger {
	return NewLoggerFromZap(zap.NewNop(), "taskapi")
}

// NewLoggerFromZap wraps an existing zap logger without a Loki sink.
func NewLoggerFromZap(zapLogger *zap.Logger, serviceName string) *Logger {
	return &Logger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

func (l *Logger) ServiceName() string {
	return l.serviceName
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("service", l.serviceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, fields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, fields...)
	}

	if l.lokiURL != "" {
		go l.pushToLoki(ctx, level, msg, fields)
	}
}

func (l *Logger) pushToLoki(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	line := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339Nano),
		"level":     level.String(),
		"message":   msg,
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		line["trace_id"] = span.SpanContext().TraceID().String()
		line["span_id"] = span.SpanContext().SpanID().String()
	}

	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(encoder)
	}
	for key, value := range encoder.Fields {
		line[key] = value
	}

	encoded, err := json.Marshal(line)
	if err != nil {
		return
	}

	body, err := json.Marshal(lokiPush{
		Streams: []lokiStream{
			{
				Stream: map[string]string{
					"service": l.serviceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", time.Now().UnixNano()), string(encoded)},
				},
			},
		},
	})
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, l.lokiURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
