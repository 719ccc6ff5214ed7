package cmd

import (
	"net/http"
	"os"
	"path/filepath"

	"tarion/internal/api"
	"tarion/internal/auth"
	"tarion/internal/config"
	"tarion/internal/events"

	"go.uber.org/zap"
)

// app bundles the wiring every subcommand needs: config, credential
// store, event bus, and the REST client.
type app struct {
	cfg    *config.Config
	store  *auth.FileStore
	bus    *events.Bus
	client *api.Client
	logger *zap.Logger
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	store, err := auth.NewFileStore(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	bus := events.NewBus()
	client := api.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.BaseURL, store, bus, logger)
	return &app{cfg: cfg, store: store, bus: bus, client: client, logger: logger}, nil
}

// cliLogger logs to stderr for one-shot commands.
func cliLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// fileLogger logs to a file next to the credentials; the terminal UI
// owns stderr.
func fileLogger(cfg *config.Config) (*zap.Logger, error) {
	path := filepath.Join(filepath.Dir(cfg.CredentialsPath), "tarion.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}
