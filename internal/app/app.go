package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khrees2412/cvgen/internal/config"
	"github.com/khrees2412/cvgen/internal/database"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App is the dependency container for the CLI application
type App struct {
	DB     *sql.DB
	Config *config.Config
	Logger *zap.Logger
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger, err := NewLogger(config.AppConfig.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Initialize(config.AppConfig.HistoryDB); err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &App{
		DB:     database.DB,
		Config: config.AppConfig,
		Logger: logger,
	}, nil
}

// NewLogger builds a development logger for debug and a production logger otherwise.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidArgument, level)
	}

	var cfg zap.Config
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB == nil {
		return nil
	}
	if database.DB == a.DB {
		return database.Close()
	}
	return a.DB.Close()
}
