package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/zap"
)

// MetricsService setup 统计，每次请求独立拉取并计算，无共享状态
type MetricsService struct {
	logger *zap.Logger
	store  TradeStore
	opts   []metrics.Option
}

func NewMetricsService(logger *zap.Logger, store TradeStore, loc *time.Location, conf *config.Config) *MetricsService {
	return &MetricsService{
		logger: logger,
		store:  store,
		opts: []metrics.Option{
			metrics.WithLocation(loc),
			metrics.WithMinTradesPerHour(conf.Journal.MinTradesPerHour),
		},
	}
}

// Options 计算选项，离线报告和周复盘复用
func (s *MetricsService) Options() []metrics.Option {
	return s.opts
}

// engineError 把引擎的数值域错误转为业务错误
func engineError(err error) error {
	switch {
	case errors.Is(err, metrics.ErrInvalidInput):
		return fmt.Errorf("%w: %w", xe.ErrInvalidInput, err)
	case errors.Is(err, metrics.ErrInsufficientData):
		return fmt.Errorf("%w: %w", xe.ErrInsufficientData, err)
	default:
		return err
	}
}

func (s *MetricsService) GetCoreMetrics(ctx context.Context, userID, setupID string) (*metrics.CoreMetrics, error) {
	trades, err := s.store.FetchTrades(ctx, userID, setupID)
	if err != nil {
		return nil, err
	}

	core, err := metrics.NewCorePerformance(trades, s.opts...)
	if err != nil {
		return nil, engineError(err)
	}
	summary := core.Summary()
	return &summary, nil
}

func (s *MetricsService) GetConsistencyMetrics(ctx context.Context, userID, setupID string) (*metrics.ConsistencyMetrics, error) {
	trades, err := s.store.FetchTrades(ctx, userID, setupID)
	if err != nil {
		return nil, err
	}

	consistency, err := metrics.NewConsistency(trades, s.opts...)
	if err != nil {
		return nil, engineError(err)
	}
	summary, err := consistency.Summary()
	if err != nil {
		return nil, engineError(err)
	}
	return &summary, nil
}

func (s *MetricsService) GetExecutionQualityMetrics(ctx context.Context, userID, setupID string) (*metrics.ExecutionMetrics, error) {
	trades, err := s.store.FetchTrades(ctx, userID, setupID)
	if err != nil {
		return nil, err
	}

	execution, err := metrics.NewExecution(trades, s.opts...)
	if err != nil {
		return nil, engineError(err)
	}
	summary, err := execution.Summary()
	if err != nil {
		return nil, engineError(err)
	}
	return &summary, nil
}

// GetSetupReport 只拉取一次交易，所有模块共用
func (s *MetricsService) GetSetupReport(ctx context.Context, userID, setupID string) (*metrics.Report, error) {
	trades, err := s.store.FetchTrades(ctx, userID, setupID)
	if err != nil {
		return nil, err
	}

	report, err := metrics.BuildReport(setupID, trades, s.opts...)
	if err != nil {
		s.logger.Warn("setup report rejected",
			zap.String("user_id", userID),
			zap.String("setup_id", setupID),
			zap.Error(err))
		return nil, engineError(err)
	}
	return report, nil
}
