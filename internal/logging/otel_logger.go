package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OTLPConfig holds configuration for the OpenTelemetry log bridge.
type OTLPConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       string
}

// OTLPLogger routes slog records into an OpenTelemetry log pipeline. When
// disabled it degrades to a plain JSON stdout logger.
type OTLPLogger struct {
	logger   *slog.Logger
	provider *sdklog.LoggerProvider
}

// NewOTLPLogger creates the log bridge. The returned logger is safe to use
// even when the OTLP export is disabled or unreachable.
func NewOTLPLogger(cfg OTLPConfig) (*OTLPLogger, error) {
	if !cfg.Enabled {
		return &OTLPLogger{
			logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slogLevel(cfg.LogLevel),
			})),
		}, nil
	}

	ctx := context.Background()

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpoint(endpoint),
		otlploghttp.WithURLPath("/v1/logs"),
		otlploghttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	handler := &otlpHandler{logger: provider.Logger(cfg.ServiceName)}
	return &OTLPLogger{
		logger:   slog.New(handler),
		provider: provider,
	}, nil
}

// Logger returns the bridged slog.Logger.
func (l *OTLPLogger) Logger() *slog.Logger {
	return l.logger
}

// Shutdown flushes and stops the log pipeline.
func (l *OTLPLogger) Shutdown(ctx context.Context) error {
	if l.provider == nil {
		return nil
	}
	return l.provider.Shutdown(ctx)
}

// otlpHandler implements slog.Handler on top of an OpenTelemetry logger.
type otlpHandler struct {
	logger otellog.Logger
	attrs  []otellog.KeyValue
}

func (h *otlpHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *otlpHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := make([]otellog.KeyValue, 0, record.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, otellog.String(a.Key, a.Value.String()))
		return true
	})

	var logRecord otellog.Record
	logRecord.SetTimestamp(record.Time)
	logRecord.SetObservedTimestamp(time.Now())
	logRecord.SetSeverity(severityOf(record.Level))
	logRecord.SetBody(otellog.StringValue(record.Message))
	logRecord.AddAttributes(attrs...)

	h.logger.Emit(ctx, logRecord)
	return nil
}

func (h *otlpHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]otellog.KeyValue, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	for _, a := range attrs {
		combined = append(combined, otellog.String(a.Key, a.Value.String()))
	}
	return &otlpHandler{logger: h.logger, attrs: combined}
}

func (h *otlpHandler) WithGroup(name string) slog.Handler {
	return h
}

func severityOf(level slog.Level) otellog.Severity {
	switch {
	case level >= slog.LevelError:
		return otellog.SeverityError
	case level >= slog.LevelWarn:
		return otellog.SeverityWarn
	case level >= slog.LevelInfo:
		return otellog.SeverityInfo
	default:
		return otellog.SeverityDebug
	}
}
