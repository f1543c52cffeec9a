package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// JournalService 交易日志
type JournalService struct {
	logger *zap.Logger

	*orz.Service
	*repo.JournalEntryRepo

	setupService *SetupService
	pricer       metrics.Pricer
}

func NewJournalService(logger *zap.Logger, db *gorm.DB, setupService *SetupService) *JournalService {
	return &JournalService{
		logger:           logger,
		Service:          orz.NewService(db),
		JournalEntryRepo: repo.NewJournalEntryRepo(db),
		setupService:     setupService,
		pricer:           metrics.StandardLotPricer{},
	}
}

// JournalReview 可编辑的复盘字段
type JournalReview struct {
	Grade        metrics.Grade      `json:"grade" validate:"omitempty,oneof=A+ A B C D F"`
	EntryQuality int                `json:"entry_quality" validate:"omitempty,min=1,max=5"`
	ExitQuality  int                `json:"exit_quality" validate:"omitempty,min=1,max=5"`
	MarketType   metrics.MarketType `json:"market_type" validate:"omitempty,oneof=trending range volatile"`
	Session      metrics.Session    `json:"session" validate:"omitempty,oneof=asian london 'new york'"`
	FollowedPlan *bool              `json:"followed_plan"`
	Notes        string             `json:"notes" validate:"max=5000"`
	Mistakes     []string           `json:"mistakes" validate:"max=20,dive,max=200"`
	Lessons      []string           `json:"lessons" validate:"max=20,dive,max=200"`
	ImageURLs    []string           `json:"image_urls" validate:"max=10,dive,url"`
	Tags         []string           `json:"tags" validate:"max=20,dive,max=50"`
}

// CreateJournalRequest 新建日志
type CreateJournalRequest struct {
	SetupID    string            `json:"setup_id"`
	Symbol     string            `json:"symbol" validate:"required,max=20"`
	Direction  metrics.Direction `json:"direction" validate:"required,oneof=long short"`
	Volume     float64           `json:"volume" validate:"gt=0"`
	EntryPrice float64           `json:"entry_price" validate:"gt=0"`
	ExitPrice  float64           `json:"exit_price" validate:"gt=0"`
	EntryAt    time.Time         `json:"entry_at" validate:"required"`
	ExitAt     time.Time         `json:"exit_at" validate:"required"`
	StopLoss   float64           `json:"stop_loss" validate:"gte=0"`
	TakeProfit float64           `json:"take_profit" validate:"gte=0"`
	JournalReview
}

func (r CreateJournalRequest) trade() metrics.Trade {
	return metrics.Trade{
		Symbol:     r.Symbol,
		Direction:  r.Direction,
		Volume:     r.Volume,
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		EntryTime:  r.EntryAt,
		ExitTime:   r.ExitAt,
		StopLoss:   r.StopLoss,
		TakeProfit: r.TakeProfit,
	}
}

// UpdateJournalRequest 只允许修改复盘字段和所属 setup，nil 表示不修改
type UpdateJournalRequest struct {
	SetupID      *string             `json:"setup_id"`
	Grade        *metrics.Grade      `json:"grade" validate:"omitempty,oneof=A+ A B C D F"`
	EntryQuality *int                `json:"entry_quality" validate:"omitempty,min=1,max=5"`
	ExitQuality  *int                `json:"exit_quality" validate:"omitempty,min=1,max=5"`
	MarketType   *metrics.MarketType `json:"market_type" validate:"omitempty,oneof=trending range volatile"`
	Session      *metrics.Session    `json:"session" validate:"omitempty,oneof=asian london 'new york'"`
	FollowedPlan *bool               `json:"followed_plan"`
	Notes        *string             `json:"notes" validate:"omitempty,max=5000"`
	Mistakes     []string            `json:"mistakes" validate:"omitempty,max=20,dive,max=200"`
	Lessons      []string            `json:"lessons" validate:"omitempty,max=20,dive,max=200"`
	ImageURLs    []string            `json:"image_urls" validate:"omitempty,max=10,dive,url"`
	Tags         []string            `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// JournalPage 分页结果
type JournalPage struct {
	Items []models.JournalEntry `json:"items"`
	Total int64                 `json:"total"`
}

func (s *JournalService) checkSetup(ctx context.Context, userID, setupID string) error {
	if setupID == "" {
		return nil
	}
	_, err := s.setupService.Get(ctx, userID, setupID)
	return err
}

// Create 校验交易并在入库前计算盈亏、持仓时长、pip 和 R 倍数
func (s *JournalService) Create(ctx context.Context, userID string, req CreateJournalRequest) (*models.JournalEntry, error) {
	trade := req.trade()
	if err := trade.Validate(); err != nil {
		return nil, engineError(err)
	}
	if err := s.checkSetup(ctx, userID, req.SetupID); err != nil {
		return nil, err
	}

	pnl, err := s.pricer.PnL(trade.Symbol, trade.EntryPrice, trade.ExitPrice, trade.Volume, trade.Direction)
	if err != nil {
		return nil, engineError(err)
	}
	holdMinutes, err := metrics.HoldingMinutes(trade.EntryTime, trade.ExitTime)
	if err != nil {
		return nil, engineError(err)
	}

	entry := models.JournalEntry{
		ID:          ulid.Make().String(),
		UserID:      userID,
		SetupID:     req.SetupID,
		Symbol:      trade.Symbol,
		Direction:   trade.Direction,
		Volume:      trade.Volume,
		EntryPrice:  trade.EntryPrice,
		ExitPrice:   trade.ExitPrice,
		EntryAt:     trade.EntryTime.UTC(),
		ExitAt:      trade.ExitTime.UTC(),
		StopLoss:    trade.StopLoss,
		TakeProfit:  trade.TakeProfit,
		Pnl:         pnl,
		HoldMinutes: holdMinutes,
		Pips:        metrics.CalculatePips(trade.Symbol, trade.EntryPrice, trade.ExitPrice, trade.Direction),
	}
	if r, ok := trade.RMultiple(); ok {
		entry.RMultiple = &r
	}
	applyReview(&entry, req.JournalReview)

	if err := s.JournalEntryRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}

	s.logger.Info("journal entry created",
		zap.String("user_id", userID),
		zap.String("journal_entry_id", entry.ID),
		zap.String("symbol", entry.Symbol),
		zap.Float64("pnl", entry.Pnl))
	return &entry, nil
}

func applyReview(m *models.JournalEntry, r JournalReview) {
	m.Grade = r.Grade
	m.EntryQuality = r.EntryQuality
	m.ExitQuality = r.ExitQuality
	m.MarketType = r.MarketType
	m.Session = r.Session
	m.FollowedPlan = r.FollowedPlan
	m.Notes = r.Notes
	m.Mistakes = r.Mistakes
	m.Lessons = r.Lessons
	m.ImageURLs = r.ImageURLs
	m.Tags = r.Tags
}

func (s *JournalService) List(ctx context.Context, q repo.JournalQuery) (*JournalPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	q.Limit = min(q.Limit, maxPageSize)
	q.Offset = max(q.Offset, 0)

	items, total, err := s.JournalEntryRepo.FindPage(ctx, q)
	if err != nil {
		return nil, err
	}
	return &JournalPage{Items: items, Total: total}, nil
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	entry, err := s.JournalEntryRepo.FindByUserAndId(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrJournalEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Update 读取、校验 setup 归属和保存在同一个事务里完成
func (s *JournalService) Update(ctx context.Context, userID, id string, req UpdateJournalRequest) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.SetupID != nil {
			if err := s.checkSetup(ctx, userID, *req.SetupID); err != nil {
				return err
			}
		}

		req.apply(entry)
		if err := s.JournalEntryRepo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to update journal entry %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r UpdateJournalRequest) apply(entry *models.JournalEntry) {
	if r.SetupID != nil {
		entry.SetupID = *r.SetupID
	}
	if r.Grade != nil {
		entry.Grade = *r.Grade
	}
	if r.EntryQuality != nil {
		entry.EntryQuality = *r.EntryQuality
	}
	if r.ExitQuality != nil {
		entry.ExitQuality = *r.ExitQuality
	}
	if r.MarketType != nil {
		entry.MarketType = *r.MarketType
	}
	if r.Session != nil {
		entry.Session = *r.Session
	}
	if r.FollowedPlan != nil {
		entry.FollowedPlan = r.FollowedPlan
	}
	if r.Notes != nil {
		entry.Notes = *r.Notes
	}
	if r.Mistakes != nil {
		entry.Mistakes = r.Mistakes
	}
	if r.Lessons != nil {
		entry.Lessons = r.Lessons
	}
	if r.ImageURLs != nil {
		entry.ImageURLs = r.ImageURLs
	}
	if r.Tags != nil {
		entry.Tags = r.Tags
	}
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, userID, id); err != nil {
			return err
		}
		return s.JournalEntryRepo.DeleteById(ctx, id)
	})
}
