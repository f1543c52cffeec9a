//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/handler"
	"github.com/trackedge/trackedge/internal/service"
)

var (
	handlerSet = wire.NewSet(
		handler.NewAuthHandler,
		handler.NewSetupHandler,
		handler.NewJournalHandler,
		handler.NewReviewHandler,
		handler.NewPlanHandler,
	)

	journalSet = wire.NewSet(
		provideLocation,
		provideTradeStore,
		service.NewAuthService,
		service.NewSetupService,
		service.NewJournalService,
		service.NewMetricsService,
		service.NewReviewService,
		service.NewPlanService,
	)
)

// InitializeApp 初始化应用
func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		journalSet,
		provideTelegram,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}
