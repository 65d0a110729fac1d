package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with otelzap so request logs carry the active trace
// and span ids.
type Logger struct {
	Logger      *otelzap.Logger
	serviceName string
}

func NewLogger(serviceName string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &Logger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}, nil
}

func (l *Logger) ServiceName() string {
	return l.serviceName
}

func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}
