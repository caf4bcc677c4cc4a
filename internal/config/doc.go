// Package config loads the service's own runtime configuration from multiple
// sources (YAML files, environment variables, CLI flags) with precedence:
// CLI flags > Environment variables > YAML config > Defaults. The validated
// application settings themselves are served by package provider.
package config
