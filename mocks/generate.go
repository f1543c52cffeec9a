package mocks

//go:generate mockgen -destination=./mock_trade_store.go -package=mocks github.com/trackedge/trackedge/internal/service TradeStore
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/trackedge/trackedge/internal/service Notifier
