// Package settings holds the raw key-value sources behind the validating
// provider. Sources only look values up; they never validate or normalise
// them. Three implementations are available: an in-memory source, a YAML file
// loader and a viper-backed source that layers environment variables over a
// settings file.
package settings
