package repo

import (
	"context"

	"github.com/go-orz/orz"
	"github.com/trackedge/trackedge/internal/models"
	"gorm.io/gorm"
)

func NewSetupRepo(db *gorm.DB) *SetupRepo {
	return &SetupRepo{
		Repository: orz.NewRepository[models.Setup, string](db),
	}
}

type SetupRepo struct {
	orz.Repository[models.Setup, string]
}

// FindByUser 用户的全部 setup，最新的在前
func (r SetupRepo) FindByUser(ctx context.Context, userID string) ([]models.Setup, error) {
	var setups []models.Setup
	db := r.GetDB(ctx)
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&setups).Error
	return setups, err
}

// FindByUserAndId 按ID查找并校验归属，不属于该用户时返回 gorm.ErrRecordNotFound
func (r SetupRepo) FindByUserAndId(ctx context.Context, userID, id string) (m models.Setup, err error) {
	db := r.GetDB(ctx)
	err = db.Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	return m, err
}
