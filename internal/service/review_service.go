package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"
	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/telegram"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier 周报推送
type Notifier interface {
	Notify(chatID, msg string) error
}

// ReviewService 周复盘：定时为每个用户按 setup 评级并给出仓位建议
type ReviewService struct {
	logger *zap.Logger

	reviewRepo       *repo.SetupReviewRepo
	journalEntryRepo *repo.JournalEntryRepo
	setupRepo        *repo.SetupRepo
	userRepo         *repo.UserRepo

	conf     *config.Config
	loc      *time.Location
	opts     []metrics.Option
	notifier Notifier
	cron     *cron.Cron
}

func NewReviewService(
	logger *zap.Logger,
	db *gorm.DB,
	conf *config.Config,
	loc *time.Location,
	metricsService *MetricsService,
	tg *telegram.Telegram,
) *ReviewService {
	s := &ReviewService{
		logger:           logger,
		reviewRepo:       repo.NewSetupReviewRepo(db),
		journalEntryRepo: repo.NewJournalEntryRepo(db),
		setupRepo:        repo.NewSetupRepo(db),
		userRepo:         repo.NewUserRepo(db),
		conf:             conf,
		loc:              loc,
		opts:             metricsService.Options(),
	}
	if tg != nil {
		s.notifier = tg
	}
	return s
}

// Start 按配置启动定时任务
func (s *ReviewService) Start() error {
	if !s.conf.Review.Enabled {
		s.logger.Info("weekly review disabled")
		return nil
	}

	s.cron = cron.New(cron.WithLocation(s.loc))
	_, err := s.cron.AddFunc(s.conf.Review.Cron, func() {
		s.RunWeekly(context.Background(), time.Now())
	})
	if err != nil {
		return fmt.Errorf("failed to add review cron job: %w", err)
	}
	s.cron.Start()

	s.logger.Info("weekly review scheduled", zap.String("cron_expression", s.conf.Review.Cron))
	return nil
}

func (s *ReviewService) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("weekly review stopped")
}

// RunWeekly 依次为每个用户生成周复盘，单个用户失败不影响其他用户
func (s *ReviewService) RunWeekly(ctx context.Context, now time.Time) {
	userIDs, err := s.userRepo.FindActiveIDs(ctx)
	if err != nil {
		s.logger.Error("weekly review: failed to load users", zap.Error(err))
		return
	}

	var generated int
	for _, userID := range userIDs {
		review, err := s.Generate(ctx, userID, now)
		if err != nil {
			s.logger.Error("weekly review failed", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		if len(review.Rankings) > 0 {
			generated++
		}
	}
	s.logger.Info("weekly review finished",
		zap.Int("users", len(userIDs)),
		zap.Int("with_trades", generated))
}

// Generate 统计出场时间在 weekEnding 之前 7 天内的交易并保存复盘
//
// 时间统一按 UTC 存储和比较，时区只影响按小时分组。
func (s *ReviewService) Generate(ctx context.Context, userID string, weekEnding time.Time) (*models.SetupReview, error) {
	weekEnding = weekEnding.UTC()
	entries, err := s.journalEntryRepo.FindExitedBetween(ctx, userID, weekEnding.Add(-reviewWindow), weekEnding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xe.ErrStoreUnavailable, err)
	}

	groups := make(map[string][]metrics.Trade)
	for _, entry := range entries {
		if entry.SetupID == "" {
			continue
		}
		groups[entry.SetupID] = append(groups[entry.SetupID], entry.ToTrade(s.loc))
	}

	setups, err := s.setupRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xe.ErrStoreUnavailable, err)
	}
	names := make(map[string]string, len(setups))
	for _, setup := range setups {
		names[setup.ID] = setup.Name
	}

	rankings, err := rankSetups(groups, names, s.opts)
	if err != nil {
		return nil, engineError(err)
	}

	var previous []models.SetupRanking
	last, err := s.reviewRepo.FindLatestBefore(ctx, userID, weekEnding)
	switch {
	case err == nil:
		previous = last.Rankings
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %w", xe.ErrStoreUnavailable, err)
	}

	review := models.SetupReview{
		ID:          ulid.Make().String(),
		UserID:      userID,
		WeekEnding:  weekEnding,
		Rankings:    rankings,
		Insights:    datatypes.NewJSONType(reviewInsights(rankings, previous)),
		Adjustments: reviewAdjustments(rankings),
	}
	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		return nil, err
	}

	s.logger.Info("weekly review generated",
		zap.String("user_id", userID),
		zap.Int("setups", len(rankings)),
		zap.Int("trades", len(entries)))

	s.notify(review)
	return &review, nil
}

func (s *ReviewService) notify(review models.SetupReview) {
	if s.notifier == nil || s.conf.TelegramChatID() == 0 || len(review.Rankings) == 0 {
		return
	}
	if err := s.notifier.Notify(s.conf.Telegram.ChatID, renderDigest(review, s.loc)); err != nil {
		s.logger.Error("failed to send weekly review", zap.String("user_id", review.UserID), zap.Error(err))
	}
}

// Latest 最近一次周复盘
func (s *ReviewService) Latest(ctx context.Context, userID string) (*models.SetupReview, error) {
	review, err := s.reviewRepo.FindLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}
