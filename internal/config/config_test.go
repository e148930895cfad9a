package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("TELEGRAM_POLLING", "")
	t.Setenv("CHART_SERVICE", "")
	t.Setenv("NEWS_AI_SERVICE", "")
	t.Setenv("CALENDAR_SERVICE", "")
	t.Setenv("PROVIDER_TIMEOUT_SECS", "")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg := Load()

	if !cfg.TelegramPolling {
		t.Fatal("expected polling enabled by default")
	}
	if cfg.ProviderTimeoutSecs != 15 {
		t.Fatalf("expected 15s provider timeout, got %d", cfg.ProviderTimeoutSecs)
	}
	if cfg.SessionTTLHours != 24 {
		t.Fatalf("expected 24h session TTL, got %d", cfg.SessionTTLHours)
	}
	if cfg.NewsServiceURL == "" || cfg.ChartServiceURL == "" || cfg.CalendarServiceURL == "" {
		t.Fatalf("expected default provider URLs, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_POLLING", "false")
	t.Setenv("NEWS_AI_SERVICE", "http://localhost:9001/")
	t.Setenv("PROVIDER_TIMEOUT_SECS", "30")
	t.Setenv("SESSION_TTL_HOURS", "6")

	cfg := Load()

	if cfg.TelegramPolling {
		t.Fatal("expected polling disabled")
	}
	if cfg.NewsServiceURL != "http://localhost:9001" {
		t.Fatalf("expected trailing slash stripped, got %q", cfg.NewsServiceURL)
	}
	if cfg.ProviderTimeoutSecs != 30 || cfg.SessionTTLHours != 6 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT_SECS", "not-a-number")
	t.Setenv("SESSION_TTL_HOURS", "-3")

	cfg := Load()

	if cfg.ProviderTimeoutSecs != 15 || cfg.SessionTTLHours != 24 {
		t.Fatalf("expected defaults for invalid values, got %+v", cfg)
	}
}
