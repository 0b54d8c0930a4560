package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

const validConfig = `
telegram:
  token: "123:abc"
  channel_username: announcements
  quest_chat_id: -1002064706879
discord:
  webhook_url: https://discord.com/api/webhooks/1/x
zealy:
  subdomain: swapxfi
  api_key: zealy-key
  endpoint_secret: topsecret
`

func TestLoadFromFile(t *testing.T) {
	t.Setenv("RELAY_CONFIG", writeConfigFile(t, validConfig))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Telegram.ChannelUsername != "announcements" {
		t.Fatalf("channel_username = %q", cfg.Telegram.ChannelUsername)
	}
	if cfg.Telegram.QuestChatID != -1002064706879 {
		t.Fatalf("quest_chat_id = %d", cfg.Telegram.QuestChatID)
	}

	// Defaults survive file layering.
	if cfg.Discord.Title != "New Announcement!" {
		t.Fatalf("title = %q", cfg.Discord.Title)
	}
	if cfg.Discord.AccentColor != 0x01FE89 {
		t.Fatalf("accent_color = %#x", cfg.Discord.AccentColor)
	}
	if cfg.Zealy.Limit != 20 || cfg.Zealy.Page != 0 {
		t.Fatalf("page/limit = %d/%d", cfg.Zealy.Page, cfg.Zealy.Limit)
	}
	if cfg.Server.Port != 4242 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("RELAY_CONFIG", writeConfigFile(t, validConfig))
	t.Setenv("RELAY_TELEGRAM__CHANNEL_USERNAME", "other_channel")
	t.Setenv("RELAY_SERVER__PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Telegram.ChannelUsername != "other_channel" {
		t.Fatalf("channel_username = %q, want env override", cfg.Telegram.ChannelUsername)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("port = %d, want env override", cfg.Server.Port)
	}
}

func TestLoadMissingRequiredValue(t *testing.T) {
	t.Setenv("RELAY_CONFIG", writeConfigFile(t, `
telegram:
  channel_username: announcements
  quest_chat_id: 1
discord:
  webhook_url: https://discord.com/api/webhooks/1/x
zealy:
  subdomain: swapxfi
  api_key: k
  endpoint_secret: s
`))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing telegram token")
	}
}

func TestLoadBadConfigPath(t *testing.T) {
	t.Setenv("RELAY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := Defaults()
	cfg.Telegram = TelegramConfig{Token: "t", ChannelUsername: "c", QuestChatID: 1}
	cfg.Discord.WebhookURL = "https://discord.com/api/webhooks/1/x"
	cfg.Zealy.Subdomain = "s"
	cfg.Zealy.APIKey = "k"
	cfg.Zealy.EndpointSecret = "sec"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLeaderboardURL(t *testing.T) {
	cfg := Defaults()
	cfg.Zealy.Subdomain = "swapxfi"

	if got := cfg.LeaderboardURL(); got != "https://zealy.io/cw/swapxfi/leaderboard" {
		t.Fatalf("LeaderboardURL = %q", got)
	}
}
