package demo

import (
	"testing"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema
// and the region/agency master data. A single connection keeps the
// in-memory database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	require.NoError(t, config.SeedMasterData(db))
	return db
}

// testDemoConfig returns a small, fixed-seed pipeline configuration
func testDemoConfig() config.DemoConfig {
	return config.DemoConfig{
		Enabled:       true,
		CustomerCount: 8,
		UpgradeChance: 0.3,
		PaidChance:    0.7,
		BatchSize:     50,
		Seed:          42,
	}
}
