package service

import (
	"context"
	"fmt"
	"time"

	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
	"gorm.io/gorm"
)

// TradeStore 统计引擎的数据来源，可能返回空列表；后端故障统一包装为 xe.ErrStoreUnavailable
type TradeStore interface {
	FetchTrades(ctx context.Context, userID, setupID string) ([]metrics.Trade, error)
}

// GormTradeStore 从 journal_entries 读取交易
type GormTradeStore struct {
	*repo.JournalEntryRepo
	loc *time.Location
}

var _ TradeStore = (*GormTradeStore)(nil)

func NewGormTradeStore(db *gorm.DB, loc *time.Location) *GormTradeStore {
	return &GormTradeStore{
		JournalEntryRepo: repo.NewJournalEntryRepo(db),
		loc:              loc,
	}
}

func (s *GormTradeStore) FetchTrades(ctx context.Context, userID, setupID string) ([]metrics.Trade, error) {
	entries, err := s.JournalEntryRepo.FindBySetup(ctx, userID, setupID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xe.ErrStoreUnavailable, err)
	}

	trades := make([]metrics.Trade, len(entries))
	for i, entry := range entries {
		trades[i] = entry.ToTrade(s.loc)
	}
	return trades, nil
}
