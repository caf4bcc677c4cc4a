package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/settings-provider/internal/provider"
)

func TestDbType(t *testing.T) {
	tests := []struct {
		providerName string
		want         string
	}{
		{providerName: "postgres", want: PostgresDbType},
		{providerName: "PostgreSQL", want: PostgresDbType},
		{providerName: "Npgsql", want: PostgresDbType},
		{providerName: "pgx", want: PostgresDbType},
		{providerName: "sqlite3", want: SqliteDbType},
		{providerName: "System.Data.SQLite", want: SqliteDbType},
		{providerName: " sqlite ", want: SqliteDbType},
	}

	for _, tt := range tests {
		t.Run(tt.providerName, func(t *testing.T) {
			got, err := DbType(tt.providerName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDbTypeUnsupported(t *testing.T) {
	_, err := DbType("System.Data.SqlClient")
	require.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestDialectorFor(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		d, err := dialectorFor(provider.DBConnectionInformation{Name: "db1", ConnectionString: "host=localhost", ProviderName: "postgres"})
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})

	t.Run("sqlite", func(t *testing.T) {
		d, err := dialectorFor(provider.DBConnectionInformation{Name: "db2", ConnectionString: ":memory:", ProviderName: "sqlite"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", d.Name())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := dialectorFor(provider.DBConnectionInformation{Name: "db3", ConnectionString: "x", ProviderName: "oracle"})
		require.ErrorIs(t, err, ErrUnsupportedProvider)
		assert.Contains(t, err.Error(), "db3")
	})
}

func TestOpenUnsupportedProvider(t *testing.T) {
	db, err := Open(provider.DBConnectionInformation{Name: "db", ConnectionString: "x", ProviderName: "mssql"})
	require.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Nil(t, db)
}

func TestOpenPingCloseSQLite(t *testing.T) {
	db, err := Open(provider.DBConnectionInformation{
		Name:             "mem",
		ConnectionString: ":memory:",
		ProviderName:     "System.Data.SQLite",
	})
	require.NoError(t, err)

	require.NoError(t, Ping(context.Background(), db))
	require.NoError(t, Close(db))
}
