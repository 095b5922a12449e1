package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlink/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "t.db")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"profiles", "farmer_profiles", "lands"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.AppConfig{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported")
}

func TestOpenPostgresNeedsURL(t *testing.T) {
	_, err := Open(config.AppConfig{DBDriver: "postgres"})
	assert.ErrorContains(t, err, "DATABASE_URL")
}
