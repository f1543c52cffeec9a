package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/mocks"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// sampleTrades EURUSD 一手多单，盈亏分别为 200、-100、100
func sampleTrades() []metrics.Trade {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	mk := func(exitPrice float64, day int) metrics.Trade {
		entry := base.AddDate(0, 0, day)
		return metrics.Trade{
			Symbol:      "EURUSD",
			Direction:   metrics.DirectionLong,
			Volume:      1,
			EntryPrice:  1.1,
			ExitPrice:   exitPrice,
			EntryTime:   entry,
			ExitTime:    entry.Add(30 * time.Minute),
			StopLoss:    1.099,
			TakeProfit:  1.102,
			Annotations: metrics.Annotations{EntryQuality: 4, ExitQuality: 2},
		}
	}
	return []metrics.Trade{mk(1.102, 0), mk(1.099, 1), mk(1.101, 2)}
}

func newMockedMetricsService(t *testing.T) (*MetricsService, *mocks.MockTradeStore) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockTradeStore(ctrl)
	conf := newTestConfig()
	conf.Journal.MinTradesPerHour = 1
	return NewMetricsService(zap.NewNop(), store, time.UTC, conf), store
}

func TestMetricsService_GetCoreMetrics(t *testing.T) {
	s, store := newMockedMetricsService(t)
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(sampleTrades(), nil)

	core, err := s.GetCoreMetrics(context.Background(), "u1", "s1")
	require.NoError(t, err)

	assert.Equal(t, 3, core.TotalTrades)
	assert.InDelta(t, 2.0/3, core.WinRate, 1e-9)
	assert.InDelta(t, 150, core.AvgWin, 1e-6)
	assert.InDelta(t, -100, core.AvgLoss, 1e-6)
	assert.InDelta(t, 3, float64(core.ProfitFactor), 1e-9)
	assert.InDelta(t, 200, core.TotalPnL, 1e-6)
}

func TestMetricsService_GetConsistencyMetrics(t *testing.T) {
	s, store := newMockedMetricsService(t)
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(sampleTrades(), nil)

	consistency, err := s.GetConsistencyMetrics(context.Background(), "u1", "s1")
	require.NoError(t, err)

	assert.Equal(t, 1, consistency.BestStreak)
	assert.Equal(t, 1, consistency.WorstStreak)
	require.NotNil(t, consistency.StdDeviation)
	require.NotNil(t, consistency.HitRate)
}

func TestMetricsService_GetExecutionQualityMetrics(t *testing.T) {
	s, store := newMockedMetricsService(t)
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(sampleTrades(), nil)

	execution, err := s.GetExecutionQualityMetrics(context.Background(), "u1", "s1")
	require.NoError(t, err)

	require.NotNil(t, execution.AvgHoldTime)
	assert.InDelta(t, 30, *execution.AvgHoldTime, 1e-9)
	require.NotNil(t, execution.AvgEntryEfficiency)
	assert.InDelta(t, 0.8, *execution.AvgEntryEfficiency, 1e-9)
	require.NotNil(t, execution.BestTimeOfDay)
	assert.Equal(t, "09:00", execution.BestTimeOfDay.Hour)
}

func TestMetricsService_EmptySetup(t *testing.T) {
	s, store := newMockedMetricsService(t)
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(nil, nil).Times(2)

	core, err := s.GetCoreMetrics(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, core.TotalTrades)
	assert.Equal(t, 0.0, core.WinRate)

	report, err := s.GetSetupReport(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Nil(t, report.Consistency.StdDeviation)
	assert.Nil(t, report.Execution.AvgHoldTime)
}

func TestMetricsService_GetSetupReportFetchesOnce(t *testing.T) {
	s, store := newMockedMetricsService(t)
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(sampleTrades(), nil).Times(1)

	report, err := s.GetSetupReport(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", report.SetupID)
	assert.Equal(t, 3, report.Performance.TotalTrades)
}

func TestMetricsService_StoreUnavailable(t *testing.T) {
	s, store := newMockedMetricsService(t)
	storeErr := errors.Join(xe.ErrStoreUnavailable, errors.New("connection refused"))
	store.EXPECT().FetchTrades(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr).AnyTimes()

	ctx := context.Background()
	_, err := s.GetCoreMetrics(ctx, "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
	_, err = s.GetConsistencyMetrics(ctx, "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
	_, err = s.GetExecutionQualityMetrics(ctx, "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
	_, err = s.GetSetupReport(ctx, "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
}

func TestMetricsService_InvalidTrade(t *testing.T) {
	s, store := newMockedMetricsService(t)
	trades := sampleTrades()
	trades[1].Volume = 0
	store.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(trades, nil).Times(2)

	_, err := s.GetCoreMetrics(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrInvalidInput)
	assert.ErrorIs(t, err, metrics.ErrInvalidInput)

	_, err = s.GetSetupReport(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrInvalidInput)
}

func TestGormTradeStore_FetchTrades(t *testing.T) {
	env := newTestEnv(t)
	setup := env.createSetup(t, "u1", "Breakout")
	other := env.createSetup(t, "u2", "Breakout")

	exitAt := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	env.createEntry(t, "u1", setup.ID, 10, exitAt.Add(time.Hour))
	env.createEntry(t, "u1", setup.ID, -5, exitAt)
	env.createEntry(t, "u1", "", 20, exitAt)
	env.createEntry(t, "u2", other.ID, 20, exitAt)

	tokyo := time.FixedZone("JST", 9*3600)
	store := NewGormTradeStore(env.db, tokyo)

	trades, err := store.FetchTrades(context.Background(), "u1", setup.ID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.True(t, trades[0].ExitTime.Before(trades[1].ExitTime))
	assert.Equal(t, tokyo, trades[0].EntryTime.Location())
	assert.Equal(t, 18, trades[0].EntryTime.Hour())

	trades, err = store.FetchTrades(context.Background(), "u1", other.ID)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestGormTradeStore_Unavailable(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = NewGormTradeStore(env.db, time.UTC).FetchTrades(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
}

func TestWrapTradeStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockTradeStore(ctrl)
	inner.EXPECT().FetchTrades(gomock.Any(), "u1", "s1").Return(sampleTrades(), nil)
	inner.EXPECT().FetchTrades(gomock.Any(), "u1", "s2").Return(nil, xe.ErrStoreUnavailable)

	store := WrapTradeStore(inner, zap.NewNop())

	trades, err := store.FetchTrades(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Len(t, trades, 3)

	_, err = store.FetchTrades(context.Background(), "u1", "s2")
	assert.ErrorIs(t, err, xe.ErrStoreUnavailable)
}
