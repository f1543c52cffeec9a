package repo

import (
	"context"
	"time"

	"github.com/go-orz/orz"
	"github.com/trackedge/trackedge/internal/models"
	"gorm.io/gorm"
)

func NewSetupReviewRepo(db *gorm.DB) *SetupReviewRepo {
	return &SetupReviewRepo{
		Repository: orz.NewRepository[models.SetupReview, string](db),
	}
}

type SetupReviewRepo struct {
	orz.Repository[models.SetupReview, string]
}

// FindLatest 用户最近一次周复盘
func (r SetupReviewRepo) FindLatest(ctx context.Context, userID string) (m models.SetupReview, err error) {
	db := r.GetDB(ctx)
	err = db.Where("user_id = ?", userID).
		Order("week_ending DESC").
		First(&m).Error
	return m, err
}

// FindLatestBefore 早于 weekEnding 的最近一次周复盘，用于计算进步幅度
func (r SetupReviewRepo) FindLatestBefore(ctx context.Context, userID string, weekEnding time.Time) (m models.SetupReview, err error) {
	db := r.GetDB(ctx)
	err = db.Where("user_id = ? AND week_ending < ?", userID, weekEnding).
		Order("week_ending DESC").
		First(&m).Error
	return m, err
}
