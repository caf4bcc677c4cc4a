// Package application provides application initialization and dependency wiring.
// It opens the configured settings source, builds the validating provider,
// HTTP handlers and server, and runs the settings check used by the CLI.
package application
