package internal

import (
	"net/http"
	"time"

	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/telegram"
	"github.com/trackedge/trackedge/internal/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const telegramHTTPTimeout = 10 * time.Second

// provideLocation 统计使用的时区
func provideLocation(conf *config.Config) (*time.Location, error) {
	return conf.Location()
}

// provideTradeStore 开启 tracing 时为交易读取加上 span
func provideTradeStore(logger *zap.Logger, db *gorm.DB, loc *time.Location) service.TradeStore {
	var store service.TradeStore = service.NewGormTradeStore(db, loc)
	if trace.Enabled() {
		store = service.WrapTradeStore(store, logger)
	}
	return store
}

// provideTelegram provides telegram instance
func provideTelegram(logger *zap.Logger, conf *config.Config) *telegram.Telegram {
	if !conf.Telegram.Enabled {
		return nil
	}

	httpClient := &http.Client{Timeout: telegramHTTPTimeout}

	tg, err := telegram.NewTelegram(logger, telegram.Settings{
		Token:  conf.Telegram.Token,
		Client: httpClient,
	})
	if err != nil {
		logger.Error("failed to init telegram", zap.Error(err))
		return nil
	}

	return tg
}
