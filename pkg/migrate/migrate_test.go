package migrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/lovenest/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate(FS(), Dir))
}

func TestCartSnapshotMigrationShape(t *testing.T) {
	data, err := FS().ReadFile(Dir + "/20260210120000_create_cart_snapshots.sql")
	require.NoError(t, err)
	content := string(data)
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS cart_snapshots",
		"session_id VARCHAR(64) PRIMARY KEY",
		"DROP TABLE IF EXISTS cart_snapshots",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db, config.DBDriverSQLite, "up"))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='cart_snapshots'`).Scan(&name))
	assert.Equal(t, "cart_snapshots", name)

	require.NoError(t, Run(ctx, db, config.DBDriverSQLite, "down"))
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='cart_snapshots'`).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMigrateToVersionRejectsGarbage(t *testing.T) {
	db := openSQLite(t)
	assert.Error(t, MigrateToVersion(context.Background(), db, config.DBDriverSQLite, "latest"))
	assert.Error(t, MigrateToVersion(context.Background(), db, config.DBDriverSQLite, ""))
}

func TestValidateRejectsBadFiles(t *testing.T) {
	badName := fstest.MapFS{
		"m/001_init.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, Validate(badName, "m"))

	missingDown := fstest.MapFS{
		"m/20260101000000_init.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	assert.Error(t, Validate(missingDown, "m"))

	duplicate := fstest.MapFS{
		"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, Validate(duplicate, "m"))
}
