package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
)

// 环境变量覆盖配置文件中的敏感项
const (
	EnvJWTSecret     = "TRACKEDGE_JWT_SECRET"
	EnvTelegramToken = "TRACKEDGE_TELEGRAM_TOKEN"
	EnvTimezone      = "TRACKEDGE_TIMEZONE"
)

type Config struct {
	Auth      AuthConf      `json:"auth"`
	Journal   JournalConf   `json:"journal"`
	RateLimit RateLimitConf `json:"rate_limit"`
	Review    ReviewConf    `json:"review"`
	Telegram  TelegramConf  `json:"telegram"`
	Tracing   TracingConf   `json:"tracing"`
}

type AuthConf struct {
	JWTSecret       string `json:"jwt_secret"`       // 为空时每次启动随机生成
	ExpirationHours int    `json:"expiration_hours"` // 默认24
}

type JournalConf struct {
	Timezone         string `json:"timezone"`            // 统计入场小时使用的时区，默认UTC
	MinTradesPerHour int    `json:"min_trades_per_hour"` // 时段排名的最少交易笔数，默认5
}

type RateLimitConf struct {
	Enabled       bool `json:"enabled"`
	Requests      int  `json:"requests"`       // 窗口内允许的请求数，默认100
	WindowMinutes int  `json:"window_minutes"` // 窗口长度（分钟），默认15
}

type ReviewConf struct {
	Enabled bool   `json:"enabled"`
	Cron    string `json:"cron"` // 默认每周五18点
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
}

type TracingConf struct {
	Enabled bool `json:"enabled"`
}

// Normalize 填充默认值
func (c *Config) Normalize() {
	if c.Auth.ExpirationHours <= 0 {
		c.Auth.ExpirationHours = 24
	}
	if c.Journal.Timezone == "" {
		c.Journal.Timezone = "UTC"
	}
	if c.Journal.MinTradesPerHour <= 0 {
		c.Journal.MinTradesPerHour = 5
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 100
	}
	if c.RateLimit.WindowMinutes <= 0 {
		c.RateLimit.WindowMinutes = 15
	}
	if c.Review.Cron == "" {
		c.Review.Cron = "0 18 * * 5"
	}
}

// ApplyEnv 使用环境变量覆盖配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Journal.Timezone = v
	}
}

// Location 解析统计时区
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Journal.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid journal timezone %q: %w", c.Journal.Timezone, err)
	}
	return loc, nil
}

func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.Auth.ExpirationHours) * time.Hour
}

// RateLimitWindow 限流窗口
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMinutes) * time.Minute
}

// TelegramChatID 通知目标；配置为空时返回 0
func (c *Config) TelegramChatID() int64 {
	return cast.ToInt64(c.Telegram.ChatID)
}
