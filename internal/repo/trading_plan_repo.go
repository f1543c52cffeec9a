package repo

import (
	"context"

	"github.com/go-orz/orz"
	"github.com/trackedge/trackedge/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func NewTradingPlanRepo(db *gorm.DB) *TradingPlanRepo {
	return &TradingPlanRepo{
		Repository: orz.NewRepository[models.TradingPlan, string](db),
	}
}

type TradingPlanRepo struct {
	orz.Repository[models.TradingPlan, string]
}

// FindByUser 用户的全部交易计划，最新的在前
func (r TradingPlanRepo) FindByUser(ctx context.Context, userID string) ([]models.TradingPlan, error) {
	var plans []models.TradingPlan
	db := r.GetDB(ctx)
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// FindByUserAndId 按ID查找并校验归属，不属于该用户时返回 gorm.ErrRecordNotFound
func (r TradingPlanRepo) FindByUserAndId(ctx context.Context, userID, id string) (m models.TradingPlan, err error) {
	db := r.GetDB(ctx)
	err = db.Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	return m, err
}

// RemoveStrategy 从用户的所有计划里去掉某个 setup
func (r TradingPlanRepo) RemoveStrategy(ctx context.Context, userID, setupID string) error {
	plans, err := r.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	db := r.GetDB(ctx)
	for _, plan := range plans {
		if !plan.HasStrategy(setupID) {
			continue
		}
		strategies := make([]string, 0, len(plan.Strategies)-1)
		for _, id := range plan.Strategies {
			if id != setupID {
				strategies = append(strategies, id)
			}
		}
		err := db.Model(&models.TradingPlan{}).
			Where("id = ?", plan.ID).
			Update("strategies", datatypes.NewJSONSlice(strategies)).Error
		if err != nil {
			return err
		}
	}
	return nil
}
