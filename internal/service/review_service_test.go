package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/mocks"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	chatIDs  []string
	messages []string
}

func (n *recordingNotifier) Notify(chatID, msg string) error {
	n.chatIDs = append(n.chatIDs, chatID)
	n.messages = append(n.messages, msg)
	return nil
}

func newTestReviewService(env *testEnv, notifier Notifier) *ReviewService {
	s := NewReviewService(zap.NewNop(), env.db, env.conf, time.UTC, env.metrics, nil)
	s.notifier = notifier
	return s
}

func TestGradeSetup(t *testing.T) {
	testCases := []struct {
		name         string
		profitFactor float64
		winRate      float64
		expected     metrics.Grade
	}{
		{"strong", 2, 0.6, metrics.GradeAPlus},
		{"strong but low win rate", 2.5, 0.55, metrics.GradeA},
		{"good", 1.5, 0.5, metrics.GradeA},
		{"good but low win rate", 1.6, 0.3, metrics.GradeB},
		{"fair", 1.2, 0.2, metrics.GradeB},
		{"break even", 1, 0.5, metrics.GradeC},
		{"losing", 0.99, 0.9, metrics.GradeF},
		{"all wins", metrics.Infinite, 1, metrics.GradeAPlus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, gradeSetup(tc.profitFactor, tc.winRate))
		})
	}
}

func TestDecisionFor(t *testing.T) {
	assert.Equal(t, models.DecisionIncreaseSize, decisionFor(metrics.GradeAPlus))
	assert.Equal(t, models.DecisionMaintain, decisionFor(metrics.GradeA))
	assert.Equal(t, models.DecisionMaintain, decisionFor(metrics.GradeB))
	assert.Equal(t, models.DecisionReduceSize, decisionFor(metrics.GradeC))
	assert.Equal(t, models.DecisionEliminate, decisionFor(metrics.GradeF))
}

func TestReviewInsights(t *testing.T) {
	sigma := func(v float64) *float64 { return &v }

	rankings := []models.SetupRanking{
		{SetupID: "a", SetupName: "Breakout", NumOfTrades: 5, TotalPnl: 300, StdDeviation: sigma(80)},
		{SetupID: "b", SetupName: "Pullback", NumOfTrades: 4, TotalPnl: 120, StdDeviation: sigma(20)},
		{SetupID: "c", SetupName: "Fade", NumOfTrades: 1, TotalPnl: 10, StdDeviation: sigma(0)},
		{SetupID: "d", SetupName: "Reversal", NumOfTrades: 3, TotalPnl: -90, StdDeviation: sigma(40)},
	}
	previous := []models.SetupRanking{
		{SetupID: "a", TotalPnl: 250},
		{SetupID: "b", TotalPnl: -100},
		{SetupID: "d", TotalPnl: 0},
	}

	insights := reviewInsights(rankings, previous)
	assert.Equal(t, models.ReviewInsights{
		BestPerformingSetup:  "Breakout",
		WorstPerformingSetup: "Reversal",
		MostConsistentSetup:  "Pullback",
		MostImprovedSetup:    "Pullback",
	}, insights)
}

func TestReviewInsights_NoImprovement(t *testing.T) {
	rankings := []models.SetupRanking{
		{SetupID: "a", SetupName: "Breakout", NumOfTrades: 1, TotalPnl: 50},
	}
	previous := []models.SetupRanking{{SetupID: "a", TotalPnl: 80}}

	insights := reviewInsights(rankings, previous)
	assert.Equal(t, "Breakout", insights.BestPerformingSetup)
	assert.Equal(t, "Breakout", insights.WorstPerformingSetup)
	assert.Empty(t, insights.MostConsistentSetup)
	assert.Empty(t, insights.MostImprovedSetup)

	assert.Equal(t, models.ReviewInsights{}, reviewInsights(nil, previous))
}

func TestReviewAdjustments(t *testing.T) {
	rankings := []models.SetupRanking{
		{SetupName: "Breakout", Decision: models.DecisionIncreaseSize},
		{SetupName: "Pullback", Decision: models.DecisionMaintain},
		{SetupName: "Fade", Decision: models.DecisionReduceSize},
		{SetupName: "Reversal", Decision: models.DecisionEliminate},
	}

	assert.Equal(t, []string{
		"Sizing up on Breakout",
		"Reducing size on Fade",
		"Removing Reversal",
	}, reviewAdjustments(rankings))
	assert.Empty(t, reviewAdjustments(nil))
}

func TestReviewService_Generate(t *testing.T) {
	env := newTestEnv(t)
	env.conf.Telegram.ChatID = "42"
	notifier := &recordingNotifier{}
	s := newTestReviewService(env, notifier)
	ctx := context.Background()

	breakout := env.createSetup(t, "u1", "London Breakout")
	asian := env.createSetup(t, "u1", "Asian Range")
	other := env.createSetup(t, "u2", "Other user")

	day := weekEnding.Add(-48 * time.Hour)
	env.createEntry(t, "u1", breakout.ID, 20, day)
	env.createEntry(t, "u1", breakout.ID, 10, day.Add(time.Hour))
	env.createEntry(t, "u1", breakout.ID, -5, day.Add(2*time.Hour))
	env.createEntry(t, "u1", asian.ID, -10, day)
	env.createEntry(t, "u1", asian.ID, -10, day.Add(time.Hour))
	env.createEntry(t, "u1", asian.ID, 5, day.Add(2*time.Hour))
	// 不计入：未归类、窗口之外、其他用户
	env.createEntry(t, "u1", "", 50, day)
	env.createEntry(t, "u1", breakout.ID, 100, weekEnding.Add(-8*24*time.Hour))
	env.createEntry(t, "u1", breakout.ID, 100, weekEnding)
	env.createEntry(t, "u2", other.ID, 100, day)

	review, err := s.Generate(ctx, "u1", weekEnding)
	require.NoError(t, err)

	require.Len(t, review.Rankings, 2)
	first, second := review.Rankings[0], review.Rankings[1]

	assert.Equal(t, breakout.ID, first.SetupID)
	assert.Equal(t, "London Breakout", first.SetupName)
	assert.Equal(t, 3, first.NumOfTrades)
	assert.InDelta(t, 250, first.TotalPnl, 1e-6)
	assert.InDelta(t, 6, float64(first.ProfitFactor), 1e-6)
	assert.Equal(t, metrics.GradeAPlus, first.Grade)
	assert.Equal(t, models.DecisionIncreaseSize, first.Decision)

	assert.Equal(t, asian.ID, second.SetupID)
	assert.InDelta(t, -150, second.TotalPnl, 1e-6)
	assert.Equal(t, metrics.GradeF, second.Grade)
	assert.Equal(t, models.DecisionEliminate, second.Decision)

	insights := review.Insights.Data()
	assert.Equal(t, "London Breakout", insights.BestPerformingSetup)
	assert.Equal(t, "Asian Range", insights.WorstPerformingSetup)
	assert.Equal(t, "Asian Range", insights.MostConsistentSetup)
	assert.Empty(t, insights.MostImprovedSetup)

	assert.Equal(t, []string{"Sizing up on London Breakout", "Removing Asian Range"}, []string(review.Adjustments))

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "42", notifier.chatIDs[0])
	assert.Contains(t, notifier.messages[0], `A\+ *London Breakout* 3 trades`)
	assert.Contains(t, notifier.messages[0], `pnl \-150\.00`)

	latest, err := s.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, review.ID, latest.ID)
	assert.Len(t, latest.Rankings, 2)
}

func TestReviewService_GenerateMostImproved(t *testing.T) {
	env := newTestEnv(t)
	s := newTestReviewService(env, nil)
	ctx := context.Background()

	breakout := env.createSetup(t, "u1", "London Breakout")
	lastWeek := weekEnding.Add(-reviewWindow)

	env.createEntry(t, "u1", breakout.ID, -5, lastWeek.Add(-24*time.Hour))
	_, err := s.Generate(ctx, "u1", lastWeek)
	require.NoError(t, err)

	env.createEntry(t, "u1", breakout.ID, 20, weekEnding.Add(-24*time.Hour))
	review, err := s.Generate(ctx, "u1", weekEnding)
	require.NoError(t, err)

	assert.Equal(t, "London Breakout", review.Insights.Data().MostImprovedSetup)
}

func TestReviewService_EmptyWeek(t *testing.T) {
	env := newTestEnv(t)
	env.conf.Telegram.ChatID = "42"
	notifier := &recordingNotifier{}
	s := newTestReviewService(env, notifier)

	review, err := s.Generate(context.Background(), "u1", weekEnding)
	require.NoError(t, err)
	assert.Empty(t, review.Rankings)
	assert.Empty(t, review.Adjustments)
	assert.Empty(t, notifier.messages)
}

func TestReviewService_NotifyFailureKeepsReview(t *testing.T) {
	env := newTestEnv(t)
	env.conf.Telegram.ChatID = "42"
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify("42", gomock.Any()).Return(errors.New("telegram down"))
	s := newTestReviewService(env, notifier)

	setup := env.createSetup(t, "u1", "Breakout")
	env.createEntry(t, "u1", setup.ID, 10, weekEnding.Add(-time.Hour))

	_, err := s.Generate(context.Background(), "u1", weekEnding)
	require.NoError(t, err)

	_, err = s.Latest(context.Background(), "u1")
	assert.NoError(t, err)
}

func TestReviewService_LatestNotFound(t *testing.T) {
	env := newTestEnv(t)
	s := newTestReviewService(env, nil)

	_, err := s.Latest(context.Background(), "u1")
	assert.ErrorIs(t, err, xe.ErrReviewNotFound)
}

func TestReviewService_RunWeekly(t *testing.T) {
	env := newTestEnv(t)
	s := newTestReviewService(env, nil)
	ctx := context.Background()

	require.NoError(t, env.db.Create(&models.User{ID: "u1", Email: "a@example.com", PasswordHash: "x", IsActive: true}).Error)
	require.NoError(t, env.db.Create(&models.User{ID: "u2", Email: "b@example.com", PasswordHash: "x", IsActive: true}).Error)

	setup := env.createSetup(t, "u1", "Breakout")
	env.createEntry(t, "u1", setup.ID, 10, weekEnding.Add(-time.Hour))

	s.RunWeekly(ctx, weekEnding)

	latest, err := s.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, latest.Rankings, 1)

	latest, err = s.Latest(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, latest.Rankings)
}

func TestReviewService_StartDisabled(t *testing.T) {
	env := newTestEnv(t)
	s := newTestReviewService(env, nil)

	require.NoError(t, s.Start())
	assert.Nil(t, s.cron)
	s.Stop()
}

func TestReviewService_StartInvalidCron(t *testing.T) {
	env := newTestEnv(t)
	env.conf.Review.Enabled = true
	env.conf.Review.Cron = "not a cron"
	s := newTestReviewService(env, nil)

	assert.Error(t, s.Start())
}
