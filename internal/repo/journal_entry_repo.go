package repo

import (
	"context"
	"time"

	"github.com/go-orz/orz"
	"github.com/trackedge/trackedge/internal/models"
	"gorm.io/gorm"
)

func NewJournalEntryRepo(db *gorm.DB) *JournalEntryRepo {
	return &JournalEntryRepo{
		Repository: orz.NewRepository[models.JournalEntry, string](db),
	}
}

type JournalEntryRepo struct {
	orz.Repository[models.JournalEntry, string]
}

// JournalQuery 日志列表查询条件
type JournalQuery struct {
	UserID  string
	SetupID string // 为空时不过滤
	Limit   int
	Offset  int
}

// FindBySetup 某个 setup 下的全部交易，按出场时间升序
func (r JournalEntryRepo) FindBySetup(ctx context.Context, userID, setupID string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	db := r.GetDB(ctx)
	err := db.Where("user_id = ? AND setup_id = ?", userID, setupID).
		Order("exit_at ASC").
		Find(&entries).Error
	return entries, err
}

// FindPage 分页查询，最近出场的在前
func (r JournalEntryRepo) FindPage(ctx context.Context, q JournalQuery) (items []models.JournalEntry, total int64, err error) {
	db := r.GetDB(ctx).Model(&models.JournalEntry{}).Where("user_id = ?", q.UserID)
	if q.SetupID != "" {
		db = db.Where("setup_id = ?", q.SetupID)
	}
	db = db.Session(&gorm.Session{})

	if err = db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err = db.Order("exit_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&items).Error
	return items, total, err
}

// FindByUserAndId 按ID查找并校验归属
func (r JournalEntryRepo) FindByUserAndId(ctx context.Context, userID, id string) (m models.JournalEntry, err error) {
	db := r.GetDB(ctx)
	err = db.Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	return m, err
}

// FindExitedBetween 出场时间在 [from, to) 内的交易
func (r JournalEntryRepo) FindExitedBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	db := r.GetDB(ctx)
	err := db.Where("user_id = ? AND exit_at >= ? AND exit_at < ?", userID, from, to).
		Order("exit_at ASC").
		Find(&entries).Error
	return entries, err
}

// DetachSetup 把 setup 下的日志改为未归类
func (r JournalEntryRepo) DetachSetup(ctx context.Context, userID, setupID string) error {
	db := r.GetDB(ctx)
	return db.Model(&models.JournalEntry{}).
		Where("user_id = ? AND setup_id = ?", userID, setupID).
		Update("setup_id", "").Error
}
