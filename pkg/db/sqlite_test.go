package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometrics/configs"
	"github.com/ecometrics/internal/models"
)

func TestInitDBCreatesDirectoryAndTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "eco.db")
	gormDB, err := InitDB(&configs.Configuration{DBPath: dbPath})
	require.NoError(t, err)
	defer CloseDB(gormDB)

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
	for _, table := range []interface{}{&models.User{}, &models.EcoRecord{}, &models.OperationLog{}} {
		assert.True(t, gormDB.Migrator().HasTable(table))
	}
}

func TestPing(t *testing.T) {
	gormDB, err := Open("file:pingtest?mode=memory&cache=shared", false)
	require.NoError(t, err)
	defer CloseDB(gormDB)

	stats, err := Ping(context.Background(), gormDB)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpen)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	_, err = Ping(context.Background(), gormDB)
	assert.Error(t, err)
}

func TestUniqueDateIsEnforced(t *testing.T) {
	gormDB, err := Open("file:uniquetest?mode=memory&cache=shared", false)
	require.NoError(t, err)
	defer CloseDB(gormDB)
	require.NoError(t, Migrate(gormDB))

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, gormDB.Create(&models.EcoRecord{Date: date, CreatedBy: 1}).Error)
	assert.Error(t, gormDB.Create(&models.EcoRecord{Date: date, CreatedBy: 1}).Error)
}

func TestIsMemoryDSN(t *testing.T) {
	assert.True(t, isMemoryDSN(":memory:"))
	assert.True(t, isMemoryDSN("file:x?mode=memory&cache=shared"))
	assert.False(t, isMemoryDSN("data/ecometrics.db"))
}
