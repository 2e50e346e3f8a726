package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage. Empty DATABASE_URL runs the in-memory store.
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"2"`
	RedisURL    string `env:"REDIS_URL"`

	// Ledger
	Currency       string        `env:"CURRENCY" envDefault:"INR"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Operator console. Empty BOT_TOKEN disables the bot.
	BotToken           string  `env:"BOT_TOKEN"`
	AdminIDs           []int64 `env:"ADMIN_IDS" envSeparator:","`
	DropPendingUpdates bool    `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Telegram ops log
	LogTelegramChatID  int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError      int   `env:"LOG_TOPIC_ERROR"`
	LogTopicWithdrawal int   `env:"LOG_TOPIC_WITHDRAWAL"`
	LogTopicCommission int   `env:"LOG_TOPIC_COMMISSION"`
	LogTopicKYC        int   `env:"LOG_TOPIC_KYC"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) AdminIDsString() string {
	parts := make([]string, len(c.AdminIDs))
	for i, id := range c.AdminIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
