package service

import (
	"context"
	"errors"

	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupService setup 管理，所有操作都限定在当前用户范围内
type SetupService struct {
	logger *zap.Logger

	*orz.Service
	*repo.SetupRepo

	journalEntryRepo *repo.JournalEntryRepo
	tradingPlanRepo  *repo.TradingPlanRepo
}

func NewSetupService(logger *zap.Logger, db *gorm.DB) *SetupService {
	return &SetupService{
		logger:           logger,
		Service:          orz.NewService(db),
		SetupRepo:        repo.NewSetupRepo(db),
		journalEntryRepo: repo.NewJournalEntryRepo(db),
		tradingPlanRepo:  repo.NewTradingPlanRepo(db),
	}
}

// SetupForm 创建/更新 setup
type SetupForm struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Description     string   `json:"description" validate:"max=2000"`
	EntryStrategy   string   `json:"entry_strategy" validate:"max=2000"`
	HoldingStrategy string   `json:"holding_strategy" validate:"max=2000"`
	ExitStrategy    string   `json:"exit_strategy" validate:"max=2000"`
	ImageURLs       []string `json:"image_urls" validate:"max=10,dive,url"`
	Tags            []string `json:"tags" validate:"max=20,dive,max=50"`
}

func (f SetupForm) apply(m *models.Setup) {
	m.Name = f.Name
	m.Description = f.Description
	m.EntryStrategy = f.EntryStrategy
	m.HoldingStrategy = f.HoldingStrategy
	m.ExitStrategy = f.ExitStrategy
	m.ImageURLs = f.ImageURLs
	m.Tags = f.Tags
}

func (s *SetupService) Create(ctx context.Context, userID string, form SetupForm) (*models.Setup, error) {
	setup := models.Setup{
		ID:     ulid.Make().String(),
		UserID: userID,
	}
	form.apply(&setup)

	if err := s.SetupRepo.Create(ctx, &setup); err != nil {
		return nil, err
	}
	s.logger.Info("setup created", zap.String("user_id", userID), zap.String("setup_id", setup.ID))
	return &setup, nil
}

func (s *SetupService) List(ctx context.Context, userID string) ([]models.Setup, error) {
	return s.SetupRepo.FindByUser(ctx, userID)
}

// Get 不存在或不属于该用户时都返回 xe.ErrSetupNotFound
func (s *SetupService) Get(ctx context.Context, userID, id string) (*models.Setup, error) {
	setup, err := s.SetupRepo.FindByUserAndId(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrSetupNotFound
		}
		return nil, err
	}
	return &setup, nil
}

func (s *SetupService) Update(ctx context.Context, userID, id string, form SetupForm) (*models.Setup, error) {
	setup, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	form.apply(setup)

	if err := s.SetupRepo.Save(ctx, setup); err != nil {
		return nil, err
	}
	return setup, nil
}

// Delete 删除 setup，其下的日志保留但改为未归类，交易计划里的引用一并去掉
func (s *SetupService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	err := s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.journalEntryRepo.DetachSetup(ctx, userID, id); err != nil {
			return err
		}
		if err := s.tradingPlanRepo.RemoveStrategy(ctx, userID, id); err != nil {
			return err
		}
		return s.SetupRepo.DeleteById(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("setup deleted", zap.String("user_id", userID), zap.String("setup_id", id))
	return nil
}
