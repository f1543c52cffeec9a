package telegram

import (
	"net/http"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Settings struct {
	Token  string
	Client *http.Client
}

type Telegram struct {
	logger   *zap.Logger
	settings Settings
	client   *tele.Bot
}

type Option func(telegram *Telegram)

// WithHandler 注册命令处理函数
func WithHandler(command string, handler tele.HandlerFunc) Option {
	return func(t *Telegram) {
		t.client.Handle(command, handler)
	}
}

func NewTelegram(logger *zap.Logger, settings Settings, options ...Option) (*Telegram, error) {
	poller := &tele.LongPoller{Timeout: 10 * time.Second}

	client, err := tele.NewBot(tele.Settings{
		ParseMode: tele.ModeMarkdownV2,
		Token:     settings.Token,
		Poller:    poller,
		Client:    settings.Client,
	})
	if err != nil {
		return nil, err
	}

	client.Use(middleware.AutoRespond())

	err = client.SetCommands([]tele.Command{
		{Text: "/start", Description: "显示聊天ID，用于配置周复盘推送"},
	})
	if err != nil {
		return nil, err
	}

	bot := &Telegram{
		logger:   logger,
		settings: settings,
		client:   client,
	}

	client.Handle("/start", func(c tele.Context) error {
		return c.Send(Escape("chat id: " + cast.ToString(c.Chat().ID)))
	})

	for _, option := range options {
		option(bot)
	}

	return bot, nil
}

func (r *Telegram) Start() {
	r.logger.Info("telegram bot started")
	go r.client.Start()
}

func (r *Telegram) Stop() {
	r.client.Stop()
}

// Notify 发送 MarkdownV2 消息，调用方负责转义动态内容
func (r *Telegram) Notify(chatId, msg string) error {
	_chatId := cast.ToInt64(chatId)
	_, err := r.client.Send(tele.ChatID(_chatId), msg, &tele.SendOptions{ParseMode: tele.ModeMarkdownV2})
	return err
}
