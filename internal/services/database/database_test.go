package database

import (
	"testing"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteOpenAndMigrate(t *testing.T) {
	db, err := New(models.DatabaseConfig{
		Type:     models.SQLite,
		FilePath: ":memory:",
	})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Ping())
	assert.Equal(t, "sqlite3", db.DriverName())

	require.NoError(t, db.Migrate())
	for _, table := range []string{"customer_llm_preferences", "llm_usage", "llm_daily_spend"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSQLiteRequiresFilePath(t *testing.T) {
	_, err := New(models.DatabaseConfig{Type: models.SQLite})
	require.Error(t, err)
}

func TestUnsupportedType(t *testing.T) {
	_, err := New(models.DatabaseConfig{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
