package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
)

func TestJournalService_CreateDerivesResults(t *testing.T) {
	env := newTestEnv(t)
	setup := env.createSetup(t, "u1", "Breakout")
	entryAt := time.Date(2024, 3, 4, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	entry, err := env.journal.Create(context.Background(), "u1", CreateJournalRequest{
		SetupID:    setup.ID,
		Symbol:     "USDJPY",
		Direction:  metrics.DirectionShort,
		Volume:     2,
		EntryPrice: 150.5,
		ExitPrice:  150.25,
		EntryAt:    entryAt,
		ExitAt:     entryAt.Add(95 * time.Minute),
		StopLoss:   150.75,
		TakeProfit: 150,
		JournalReview: JournalReview{
			Grade:        metrics.GradeA,
			EntryQuality: 4,
			Session:      metrics.SessionLondon,
			Tags:         []string{"news"},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 500, entry.Pnl, 1e-9)
	assert.InDelta(t, 25, entry.Pips, 1e-9)
	assert.Equal(t, 95, entry.HoldMinutes)
	require.NotNil(t, entry.RMultiple)
	assert.InDelta(t, 1, *entry.RMultiple, 1e-9)
	assert.Equal(t, time.UTC, entry.EntryAt.Location())
	assert.Equal(t, 8, entry.EntryAt.Hour())

	stored, err := env.journal.Get(context.Background(), "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, metrics.GradeA, stored.Grade)
	assert.Equal(t, metrics.SessionLondon, stored.Session)
	assert.Equal(t, []string{"news"}, []string(stored.Tags))
}

func TestJournalService_CreateRejectsInvalidTrades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	valid := CreateJournalRequest{
		Symbol:     "EURUSD",
		Direction:  metrics.DirectionLong,
		Volume:     1,
		EntryPrice: 1.1,
		ExitPrice:  1.101,
		EntryAt:    now,
		ExitAt:     now.Add(time.Hour),
	}

	inverted := valid
	inverted.ExitAt = now.Add(-time.Minute)
	_, err := env.journal.Create(ctx, "u1", inverted)
	assert.ErrorIs(t, err, xe.ErrInvalidInput)

	zeroVolume := valid
	zeroVolume.Volume = 0
	_, err = env.journal.Create(ctx, "u1", zeroVolume)
	assert.ErrorIs(t, err, xe.ErrInvalidInput)

	foreignSetup := valid
	foreignSetup.SetupID = env.createSetup(t, "u2", "Other").ID
	_, err = env.journal.Create(ctx, "u1", foreignSetup)
	assert.ErrorIs(t, err, xe.ErrSetupNotFound)

	page, err := env.journal.List(ctx, repo.JournalQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestJournalService_ListPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setup := env.createSetup(t, "u1", "Breakout")

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		env.createEntry(t, "u1", setup.ID, float64(i+1), base.Add(time.Duration(i)*time.Hour))
	}
	env.createEntry(t, "u1", "", 1, base)
	env.createEntry(t, "u2", "", 1, base)

	page, err := env.journal.List(ctx, repo.JournalQuery{UserID: "u1", SetupID: setup.ID, Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, base.Add(3*time.Hour).Equal(page.Items[0].ExitAt))
	assert.True(t, base.Add(2*time.Hour).Equal(page.Items[1].ExitAt))

	page, err = env.journal.List(ctx, repo.JournalQuery{UserID: "u1", Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	assert.Len(t, page.Items, 6)
}

func TestJournalService_UpdateReviewFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setup := env.createSetup(t, "u1", "Breakout")
	entry := env.createEntry(t, "u1", "", 10, weekEnding)

	grade := metrics.GradeB
	notes := "moved stop too early"
	followed := false
	updated, err := env.journal.Update(ctx, "u1", entry.ID, UpdateJournalRequest{
		SetupID:      &setup.ID,
		Grade:        &grade,
		Notes:        &notes,
		FollowedPlan: &followed,
		Mistakes:     []string{"early exit"},
	})
	require.NoError(t, err)

	assert.Equal(t, setup.ID, updated.SetupID)
	assert.Equal(t, metrics.GradeB, updated.Grade)
	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.FollowedPlan)
	assert.False(t, *updated.FollowedPlan)
	assert.InDelta(t, entry.Pnl, updated.Pnl, 1e-9)

	quality := 3
	updated, err = env.journal.Update(ctx, "u1", entry.ID, UpdateJournalRequest{ExitQuality: &quality})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ExitQuality)
	assert.Equal(t, metrics.GradeB, updated.Grade)
	assert.Equal(t, []string{"early exit"}, []string(updated.Mistakes))

	trades, err := NewGormTradeStore(env.db, time.UTC).FetchTrades(ctx, "u1", setup.ID)
	require.NoError(t, err)
	assert.Len(t, trades, 1)
}

func TestJournalService_OwnershipAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	entry := env.createEntry(t, "u1", "", 10, weekEnding)

	_, err := env.journal.Get(ctx, "u2", entry.ID)
	assert.ErrorIs(t, err, xe.ErrJournalEntryNotFound)

	notes := "not mine"
	_, err = env.journal.Update(ctx, "u2", entry.ID, UpdateJournalRequest{Notes: &notes})
	assert.ErrorIs(t, err, xe.ErrJournalEntryNotFound)

	foreign := env.createSetup(t, "u2", "Other").ID
	_, err = env.journal.Update(ctx, "u1", entry.ID, UpdateJournalRequest{SetupID: &foreign})
	assert.ErrorIs(t, err, xe.ErrSetupNotFound)

	assert.ErrorIs(t, env.journal.Delete(ctx, "u2", entry.ID), xe.ErrJournalEntryNotFound)
	require.NoError(t, env.journal.Delete(ctx, "u1", entry.ID))

	_, err = env.journal.Get(ctx, "u1", entry.ID)
	assert.ErrorIs(t, err, xe.ErrJournalEntryNotFound)
}

func TestJournalService_UpdateRollsBackOnForeignSetup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	entry := env.createEntry(t, "u1", "", 10, weekEnding)
	foreign := env.createSetup(t, "u2", "Other").ID

	notes := "should not be stored"
	_, err := env.journal.Update(ctx, "u1", entry.ID, UpdateJournalRequest{Notes: &notes, SetupID: &foreign})
	assert.ErrorIs(t, err, xe.ErrSetupNotFound)

	stored, err := env.journal.Get(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes)
	assert.Empty(t, stored.SetupID)

	require.NoError(t, env.journal.Delete(ctx, "u1", entry.ID))
	assert.ErrorIs(t, env.journal.Delete(ctx, "u1", entry.ID), xe.ErrJournalEntryNotFound)
}
