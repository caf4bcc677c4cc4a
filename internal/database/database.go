// Package database opens gorm connections described by validated connection
// descriptors.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eugenenazirov/settings-provider/internal/provider"
)

// Supported database types.
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// ErrUnsupportedProvider is returned for provider names without a driver.
var ErrUnsupportedProvider = errors.New("unsupported database provider")

var providerAliases = map[string]string{
	"postgres":              PostgresDbType,
	"postgresql":            PostgresDbType,
	"pgx":                   PostgresDbType,
	"npgsql":                PostgresDbType,
	"sqlite":                SqliteDbType,
	"sqlite3":               SqliteDbType,
	"system.data.sqlite":    SqliteDbType,
	"microsoft.data.sqlite": SqliteDbType,
}

// DbType maps a provider name to the database type it selects. Matching is
// case-insensitive.
func DbType(providerName string) (string, error) {
	dbType, ok := providerAliases[strings.ToLower(strings.TrimSpace(providerName))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerName)
	}
	return dbType, nil
}

// Open creates a database connection for info.
func Open(info provider.DBConnectionInformation) (*gorm.DB, error) {
	dialector, err := dialectorFor(info)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", info.Name, err)
	}
	return db, nil
}

func dialectorFor(info provider.DBConnectionInformation) (gorm.Dialector, error) {
	dbType, err := DbType(info.ProviderName)
	if err != nil {
		return nil, fmt.Errorf("connection %s: %w", info.Name, err)
	}

	switch dbType {
	case PostgresDbType:
		return postgres.Open(info.ConnectionString), nil
	default:
		return sqlite.Open(info.ConnectionString), nil
	}
}

// Ping verifies the connection is alive.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
