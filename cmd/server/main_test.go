package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/settings-provider/internal/application"
	"github.com/eugenenazirov/settings-provider/internal/config"
	"github.com/eugenenazirov/settings-provider/internal/settings"
)

func parseFlags(t *testing.T, args ...string) *flags {
	t.Helper()

	app := kingpin.New("test", "")
	f := registerFlags(app)
	if _, err := app.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return f
}

func TestOverridesLeaveUnsetFlagsNil(t *testing.T) {
	overrides := parseFlags(t).overrides()

	if overrides.Port != nil || overrides.SettingsFile != nil || overrides.SettingsSource != nil || overrides.LogLevel != nil {
		t.Fatalf("expected string overrides to be nil, got %+v", overrides)
	}
	if overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
		t.Fatalf("expected rate limit overrides to be nil")
	}
	if len(overrides.Connections) != 0 {
		t.Fatalf("expected no connections, got %v", overrides.Connections)
	}
}

func TestOverridesApplyFlags(t *testing.T) {
	overrides := parseFlags(t,
		"--port", "9100",
		"--settings-file", "app.yaml",
		"--settings-source", "viper",
		"--log-level", "debug",
		"--connection", "db1",
		"--connection", "db2",
		"--rate-limit-rps", "0",
	).overrides()

	if overrides.Port == nil || *overrides.Port != "9100" {
		t.Fatalf("expected port override")
	}
	if overrides.SettingsFile == nil || *overrides.SettingsFile != "app.yaml" {
		t.Fatalf("expected settings file override")
	}
	if overrides.SettingsSource == nil || *overrides.SettingsSource != "viper" {
		t.Fatalf("expected settings source override")
	}
	if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
		t.Fatalf("expected log level override")
	}
	if len(overrides.Connections) != 2 || overrides.Connections[1] != "db2" {
		t.Fatalf("unexpected connections %v", overrides.Connections)
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
		t.Fatalf("expected explicit zero rate limit")
	}
}

func TestRunCheck(t *testing.T) {
	source := settings.NewMemorySource()
	source.SetValue("EmailTemplatesPath", "Templates")
	logger := zaptest.NewLogger(t)
	cfg := config.Config{Port: ":0", SettingsSource: settings.KindFile}

	app, err := application.NewWithSource(cfg, source, logger)
	if err != nil {
		t.Fatalf("NewWithSource returned error: %v", err)
	}
	if code := runCheck(app, false, logger); code != 1 {
		t.Fatalf("expected failure exit code for missing setting, got %d", code)
	}

	source.SetValue("PaymentGatewayServiceUrl", "http://pay.example.com")
	if code := runCheck(app, false, logger); code != 0 {
		t.Fatalf("expected success exit code, got %d", code)
	}
}

func TestRunCheckCommand(t *testing.T) {
	for _, key := range []string{"PORT", "SETTINGS_FILE", "SETTINGS_SOURCE", "SETTINGS_ENV_PREFIX", "SETTINGS_CONNECTIONS", "LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	valid := filepath.Join(t.TempDir(), "valid.yaml")
	writeFile(t, valid, "appSettings:\n  EmailTemplatesPath: Templates\n  PaymentGatewayServiceUrl: http://pay.example.com\n")
	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "appSettings:\n  EmailTemplatesPath: \"   \"\n")

	if code := run([]string{"check", "--settings-file", valid, "--log-level", "error"}); code != 0 {
		t.Fatalf("expected exit code 0 for valid settings, got %d", code)
	}
	if code := run([]string{"check", "--settings-file", invalid, "--log-level", "error"}); code != 1 {
		t.Fatalf("expected exit code 1 for invalid settings, got %d", code)
	}
	if code := run([]string{"check", "--settings-file", valid, "--log-level", "verbose"}); code != 1 {
		t.Fatalf("expected exit code 1 for invalid configuration, got %d", code)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
