package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanService 交易计划
type PlanService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradingPlanRepo

	setupService *SetupService
}

func NewPlanService(logger *zap.Logger, db *gorm.DB, setupService *SetupService) *PlanService {
	return &PlanService{
		logger:          logger,
		Service:         orz.NewService(db),
		TradingPlanRepo: repo.NewTradingPlanRepo(db),
		setupService:    setupService,
	}
}

// PlanForm 创建/更新交易计划，strategies 为当前用户的 setup ID
type PlanForm struct {
	Session       metrics.Session `json:"session" validate:"required,oneof=asian london 'new york'"`
	CurrencyPairs []string        `json:"currency_pairs" validate:"required,min=1,max=20,dive,required,max=20"`
	Strategies    []string        `json:"strategies" validate:"max=20,dive,required"`
}

// normalize 品种统一大写，去掉重复项
func (f PlanForm) normalize() PlanForm {
	f.CurrencyPairs = dedupe(f.CurrencyPairs, strings.ToUpper)
	f.Strategies = dedupe(f.Strategies, strings.TrimSpace)
	return f
}

func dedupe(values []string, fn func(string) string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = fn(strings.TrimSpace(v))
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *PlanService) checkStrategies(ctx context.Context, userID string, strategies []string) error {
	for _, setupID := range strategies {
		if _, err := s.setupService.Get(ctx, userID, setupID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlanService) Create(ctx context.Context, userID string, form PlanForm) (*models.TradingPlan, error) {
	form = form.normalize()
	if err := s.checkStrategies(ctx, userID, form.Strategies); err != nil {
		return nil, err
	}

	plan := models.TradingPlan{
		ID:            ulid.Make().String(),
		UserID:        userID,
		Session:       form.Session,
		CurrencyPairs: form.CurrencyPairs,
		Strategies:    form.Strategies,
	}
	if err := s.TradingPlanRepo.Create(ctx, &plan); err != nil {
		return nil, err
	}

	s.logger.Info("trading plan created",
		zap.String("user_id", userID),
		zap.String("trading_plan_id", plan.ID),
		zap.String("session", string(plan.Session)))
	return &plan, nil
}

func (s *PlanService) List(ctx context.Context, userID string) ([]models.TradingPlan, error) {
	return s.TradingPlanRepo.FindByUser(ctx, userID)
}

// Get 不存在或不属于该用户时都返回 xe.ErrTradingPlanNotFound
func (s *PlanService) Get(ctx context.Context, userID, id string) (*models.TradingPlan, error) {
	plan, err := s.TradingPlanRepo.FindByUserAndId(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrTradingPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) Update(ctx context.Context, userID, id string, form PlanForm) (*models.TradingPlan, error) {
	form = form.normalize()

	var plan *models.TradingPlan
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		plan, err = s.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := s.checkStrategies(ctx, userID, form.Strategies); err != nil {
			return err
		}

		plan.Session = form.Session
		plan.CurrencyPairs = form.CurrencyPairs
		plan.Strategies = form.Strategies
		return s.TradingPlanRepo.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.TradingPlanRepo.DeleteById(ctx, id); err != nil {
		return err
	}

	s.logger.Info("trading plan deleted", zap.String("user_id", userID), zap.String("trading_plan_id", id))
	return nil
}
