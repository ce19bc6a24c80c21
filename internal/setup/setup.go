package setup

import (
	"log"

	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/robalyx/stemdata/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles the dependencies shared by every command.
type App struct {
	Config     *config.Config     // Application configuration
	ConfigPath string             // Config file in use, empty when running on defaults
	Logger     *zap.Logger        // Main application logger
	LogManager *telemetry.Manager // Log management system
}

// InitializeApp loads the configuration and sets up logging for a command run.
// The override hook lets commands apply flag values before the logger is created.
func InitializeApp(command, configPath string, override func(*config.Config) error) (*App, error) {
	// Load app configuration
	cfg, usedPath, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(command, &cfg.Debug)

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	if usedPath == "" {
		logger.Info("No config file found, using defaults")
	} else {
		logger.Info("Loaded config", zap.String("path", usedPath))
	}

	return &App{
		Config:     cfg,
		ConfigPath: usedPath,
		Logger:     logger,
		LogManager: logManager,
	}, nil
}

// Cleanup flushes the logs and closes the log files.
// Logs but does not fail on cleanup errors.
func (s *App) Cleanup() {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.LogManager.Close(); err != nil {
		log.Printf("Failed to close log files: %v", err)
	}
}
