package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var weekEnding = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Setup{},
		&models.JournalEntry{},
		&models.SetupReview{},
		&models.TradingPlan{},
	))
	return db
}

func newTestConfig() *config.Config {
	conf := &config.Config{}
	conf.Normalize()
	return conf
}

type testEnv struct {
	db      *gorm.DB
	conf    *config.Config
	setups  *SetupService
	journal *JournalService
	plans   *PlanService
	metrics *MetricsService
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)
	conf := newTestConfig()
	log := zap.NewNop()

	setups := NewSetupService(log, db)
	return &testEnv{
		db:      db,
		conf:    conf,
		setups:  setups,
		journal: NewJournalService(log, db, setups),
		plans:   NewPlanService(log, db, setups),
		metrics: NewMetricsService(log, NewGormTradeStore(db, time.UTC), time.UTC, conf),
	}
}

func (e *testEnv) createSetup(t *testing.T, userID, name string) *models.Setup {
	t.Helper()
	setup, err := e.setups.Create(context.Background(), userID, SetupForm{Name: name})
	require.NoError(t, err)
	return setup
}

// createEntry EURUSD 一手多单，入场 1.1000，pnl = pips*10
func (e *testEnv) createEntry(t *testing.T, userID, setupID string, pips float64, exitAt time.Time) *models.JournalEntry {
	t.Helper()
	entry, err := e.journal.Create(context.Background(), userID, CreateJournalRequest{
		SetupID:    setupID,
		Symbol:     "EURUSD",
		Direction:  "long",
		Volume:     1,
		EntryPrice: 1.1,
		ExitPrice:  decimal.NewFromFloat(1.1).Add(decimal.NewFromFloat(pips).Shift(-4)).InexactFloat64(),
		EntryAt:    exitAt.Add(-time.Hour),
		ExitAt:     exitAt,
		StopLoss:   1.095,
		TakeProfit: 1.11,
	})
	require.NoError(t, err)
	return entry
}
