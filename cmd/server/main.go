package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-provider/internal/application"
	"github.com/eugenenazirov/settings-provider/internal/config"
	"github.com/eugenenazirov/settings-provider/internal/logging"
)

var signalNotify = signal.Notify

// flags holds the raw command-line values shared by all commands.
type flags struct {
	configFile     *string
	port           *string
	settingsFile   *string
	settingsSource *string
	logLevel       *string
	connections    *[]string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func registerFlags(app *kingpin.Application) *flags {
	return &flags{
		configFile:     app.Flag("config", "Path to YAML configuration file").String(),
		port:           app.Flag("port", "HTTP port exposed by the service").String(),
		settingsFile:   app.Flag("settings-file", "Path to the settings document").String(),
		settingsSource: app.Flag("settings-source", "Settings source kind (file or viper)").String(),
		logLevel:       app.Flag("log-level", "Log level (debug, info, warn, error)").String(),
		connections:    app.Flag("connection", "Connection name to validate (repeatable)").Strings(),
		rateLimitRPS:   app.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64(),
		rateLimitBurst: app.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int(),
	}
}

// overrides converts parsed flags into config overrides, leaving unset flags nil.
func (f *flags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile:  *f.configFile,
		Connections: *f.connections,
	}

	if *f.port != "" {
		overrides.Port = f.port
	}
	if *f.settingsFile != "" {
		overrides.SettingsFile = f.settingsFile
	}
	if *f.settingsSource != "" {
		overrides.SettingsSource = f.settingsSource
	}
	if *f.logLevel != "" {
		overrides.LogLevel = f.logLevel
	}
	if *f.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = f.rateLimitRPS
	}
	if *f.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = f.rateLimitBurst
	}

	return overrides
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the selected command and returns the process exit code. It
// returns instead of exiting so the deferred logger sync always runs.
func run(args []string) int {
	kingpinApp := kingpin.New("settings-provider", "Settings Provider - serves validated application settings and connection descriptors")
	f := registerFlags(kingpinApp)

	serveCmd := kingpinApp.Command("serve", "Serve validated settings over HTTP").Default()
	checkCmd := kingpinApp.Command("check", "Validate every setting and connection, then exit")
	ping := checkCmd.Flag("ping", "Open and ping every valid connection").Bool()

	command := kingpin.MustParse(kingpinApp.Parse(args))

	cfg, err := config.Load(f.overrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	switch command {
	case checkCmd.FullCommand():
		return runCheck(app, *ping, logger)
	case serveCmd.FullCommand():
		if err := app.Start(); err != nil {
			logger.Error("failed to start server", zap.Error(err))
			return 1
		}
		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	}
	return 0
}

func runCheck(app *application.App, ping bool, logger *zap.Logger) int {
	names := app.ConnectionNames()
	if err := app.Check(context.Background(), names, ping); err != nil {
		logger.Error("settings check failed", zap.Error(err))
		return 1
	}
	logger.Info("settings check passed", zap.Strings("connections", names))
	return 0
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
