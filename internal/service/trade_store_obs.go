package service

import (
	"context"

	"github.com/trackedge/trackedge/internal/trace"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/zap"
)

// observableTradeStore 为 TradeStore 加上 span 和日志
type observableTradeStore struct {
	store  TradeStore
	logger *zap.Logger
}

var _ TradeStore = (*observableTradeStore)(nil)

// WrapTradeStore 包装 TradeStore
func WrapTradeStore(store TradeStore, logger *zap.Logger) TradeStore {
	return &observableTradeStore{
		store:  store,
		logger: logger,
	}
}

func (o *observableTradeStore) FetchTrades(ctx context.Context, userID, setupID string) ([]metrics.Trade, error) {
	ctx, span := trace.StartSpan(ctx, "store.FetchTrades")
	defer span.End()
	span.SetAttributes(trace.String("user_id", userID), trace.String("setup_id", setupID))

	trades, err := o.store.FetchTrades(ctx, userID, setupID)
	if err != nil {
		trace.RecordError(span, err)
		o.logger.Error("failed to fetch trades",
			zap.String("user_id", userID),
			zap.String("setup_id", setupID),
			zap.Error(err))
		return nil, err
	}

	span.SetAttributes(trace.Int("trades", len(trades)))
	o.logger.Debug("trades fetched",
		zap.String("setup_id", setupID),
		zap.Int("count", len(trades)))
	return trades, nil
}
