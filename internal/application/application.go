package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-provider/internal/api"
	"github.com/eugenenazirov/settings-provider/internal/config"
	"github.com/eugenenazirov/settings-provider/internal/database"
	"github.com/eugenenazirov/settings-provider/internal/provider"
	"github.com/eugenenazirov/settings-provider/internal/settings"
)

const pingTimeout = 5 * time.Second

// App encapsulates the application dependencies and HTTP server.
type App struct {
	cfg      config.Config
	source   settings.Source
	provider *provider.Provider
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	source, err := OpenSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings source: %w", err)
	}

	return NewWithSource(cfg, source, logger)
}

// NewWithSource wires the application around an already opened settings source.
func NewWithSource(cfg config.Config, source settings.Source, logger *zap.Logger) (*App, error) {
	prov := provider.New(source)
	handler := api.NewHandler(prov)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		cfg:      cfg,
		source:   source,
		provider: prov,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// OpenSource opens the settings source selected by cfg. Relative settings
// file paths are searched for from the working directory upwards.
func OpenSource(cfg config.Config, logger *zap.Logger) (settings.Source, error) {
	path := cfg.SettingsFile
	if path != "" {
		resolved, err := resolveProjectPath(path)
		switch {
		case err == nil:
			path = resolved
		case cfg.SettingsSource == settings.KindViper:
			logger.Warn("settings file not found, reading settings from the environment only",
				zap.String("file", cfg.SettingsFile),
				zap.String("env_prefix", cfg.SettingsEnvPrefix),
			)
			path = ""
		default:
			return nil, err
		}
	}

	source, err := settings.Open(cfg.SettingsSource, path, cfg.SettingsEnvPrefix)
	if err != nil {
		return nil, err
	}

	logger.Info("settings source opened",
		zap.String("source", cfg.SettingsSource),
		zap.String("file", path),
	)
	return source, nil
}

// BuildRootHandler constructs the root HTTP handler that routes API requests
// and redirects the bare root to the settings overview.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/settings", http.StatusTemporaryRedirect)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Provider returns the validating settings provider.
func (a *App) Provider() *provider.Provider {
	return a.provider
}

// ConnectionNames returns the connections to validate: the configured names,
// or every connection the source can enumerate when none are configured.
func (a *App) ConnectionNames() []string {
	if len(a.cfg.Connections) > 0 {
		return a.cfg.Connections
	}
	if lister, ok := a.source.(settings.Lister); ok {
		return lister.ConnectionNames()
	}
	return nil
}

// Check validates every known setting and the given connections, logging
// each outcome. With ping set, valid connections are also opened and pinged.
func (a *App) Check(ctx context.Context, names []string, ping bool) error {
	report := a.provider.Check(names...)

	for _, res := range report.Results {
		fields := []zap.Field{zap.String("key", res.Key), zap.Bool("connection", res.Connection)}
		if res.Err != nil {
			fields = append(fields, zap.Stringer("kind", provider.KindOf(res.Err)), zap.Error(res.Err))
			a.logger.Error("setting invalid", fields...)
			continue
		}
		if res.Connection {
			fields = append(fields, zap.String("provider_name", res.Value))
		} else {
			fields = append(fields, zap.String("value", res.Value))
		}
		a.logger.Info("setting valid", fields...)
	}

	err := report.Err()
	if !ping {
		return err
	}

	for _, res := range report.Results {
		if !res.Connection || res.Err != nil {
			continue
		}
		if pingErr := a.pingConnection(ctx, res.Key); pingErr != nil {
			a.logger.Error("connection unreachable", zap.String("key", res.Key), zap.Error(pingErr))
			err = multierr.Append(err, pingErr)
			continue
		}
		a.logger.Info("connection reachable", zap.String("key", res.Key))
	}
	return err
}

func (a *App) pingConnection(ctx context.Context, name string) error {
	info, err := a.provider.DBConnectionInformation(name)
	if err != nil {
		return err
	}

	db, err := database.Open(info)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			a.logger.Warn("failed to close database connection", zap.String("key", name), zap.Error(closeErr))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return database.Ping(ctx, db)
}

// resolveProjectPath locates a file or directory relative to the project root by walking up the directory tree.
func resolveProjectPath(relative string) (string, error) {
	if filepath.IsAbs(relative) {
		if _, err := os.Stat(relative); err != nil {
			return "", fmt.Errorf("unable to locate %s: %w", relative, err)
		}
		return relative, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
