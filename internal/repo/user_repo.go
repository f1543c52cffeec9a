package repo

import (
	"context"
	"time"

	"github.com/go-orz/orz"
	"github.com/trackedge/trackedge/internal/models"
	"gorm.io/gorm"
)

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{
		Repository: orz.NewRepository[models.User, string](db),
	}
}

// UserRepo 用户仓储
type UserRepo struct {
	orz.Repository[models.User, string]
}

// FindByEmail 根据邮箱查找用户
func (r UserRepo) FindByEmail(ctx context.Context, email string) (m models.User, err error) {
	db := r.GetDB(ctx)
	err = db.Table(r.GetTableName()).
		Where("email = ?", email).
		First(&m).Error
	return m, err
}

// ExistsByEmail 邮箱是否已注册
func (r UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// UpdateLastLogin 更新最后登录信息
func (r UserRepo) UpdateLastLogin(ctx context.Context, id string, ip string) error {
	db := r.GetDB(ctx)
	return db.Table(r.GetTableName()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": time.Now(),
			"last_login_ip": ip,
		}).Error
}

// FindActiveIDs 所有已激活用户的ID
func (r UserRepo) FindActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
