package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	TelegramPolling  bool
	DatabaseURL      string
	RedisURL         string

	ChartServiceURL    string
	NewsServiceURL     string
	CalendarServiceURL string

	ProviderTimeoutSecs int
	SessionTTLHours     int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, message delivery disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, broadcast subscriptions disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, sessions held in memory only")
	}

	cfg.TelegramPolling = true
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_POLLING")); v != "" {
		cfg.TelegramPolling = strings.EqualFold(v, "true")
	}

	cfg.ChartServiceURL = serviceURL("CHART_SERVICE",
		"https://tradingview-chart-service-production.up.railway.app")
	cfg.NewsServiceURL = serviceURL("NEWS_AI_SERVICE",
		"https://tradingview-news-ai-service-production.up.railway.app")
	cfg.CalendarServiceURL = serviceURL("CALENDAR_SERVICE",
		"https://tradingview-calendar-service-production.up.railway.app")

	cfg.ProviderTimeoutSecs = 15
	if v := os.Getenv("PROVIDER_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProviderTimeoutSecs = n
		}
	}

	cfg.SessionTTLHours = 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLHours = n
		}
	}

	return cfg
}

func serviceURL(envKey, fallback string) string {
	v := strings.TrimRight(strings.TrimSpace(os.Getenv(envKey)), "/")
	if v == "" {
		return fallback
	}
	return v
}
