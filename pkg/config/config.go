// Package config loads runtime configuration from an optional YAML file with
// RELAY_-prefixed environment overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RELAY_"

// Config is the root runtime configuration, read once at startup and immutable
// afterwards.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Telegram TelegramConfig `koanf:"telegram"`
	Discord  DiscordConfig  `koanf:"discord"`
	Zealy    ZealyConfig    `koanf:"zealy"`
	Server   ServerConfig   `koanf:"server"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `koanf:"format"`
	Level     string `koanf:"level"`
	AddSource bool   `koanf:"add_source"`
}

// TelegramConfig configures the inbound Telegram channel and the chat that
// receives quest notifications.
type TelegramConfig struct {
	Token           string `koanf:"token"`
	ChannelUsername string `koanf:"channel_username"`
	QuestChatID     int64  `koanf:"quest_chat_id"`
}

// DiscordConfig configures the outbound Discord webhook and announcement
// presentation. MentionEveryone prepends an @everyone ping before each
// relayed announcement.
type DiscordConfig struct {
	WebhookURL      string `koanf:"webhook_url"`
	MentionEveryone bool   `koanf:"mention_everyone"`
	Title           string `koanf:"title"`
	AccentColor     int    `koanf:"accent_color"`
	PollImageURL    string `koanf:"poll_image_url"`
}

// ZealyConfig configures the Zealy API client and the inbound webhook secrets.
type ZealyConfig struct {
	BaseURL        string `koanf:"base_url"`
	Subdomain      string `koanf:"subdomain"`
	APIKey         string `koanf:"api_key"`
	EndpointSecret string `koanf:"endpoint_secret"`
	ClaimAPIKey    string `koanf:"claim_api_key"`
	Page           int    `koanf:"page"`
	Limit          int    `koanf:"limit"`
}

// ServerConfig configures the webhook HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Defaults returns the baseline configuration before file and env layers.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Discord: DiscordConfig{
			Title:        "New Announcement!",
			AccentColor:  0x01FE89,
			PollImageURL: "https://cdn.discordapp.com/attachments/1001892605551988886/1222966940277145863/image.png",
		},
		Zealy: ZealyConfig{
			BaseURL: "https://api-v1.zealy.io",
			Page:    0,
			Limit:   20,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4242,
		},
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables.
//
// Precedence (low to high):
//  1. Defaults()
//  2. YAML file from RELAY_CONFIG, or ./config.yaml when present
//  3. env vars: RELAY_TELEGRAM__TOKEN -> telegram.token ("__" separates levels)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path, err := findConfigPath(); err != nil {
		return nil, err
	} else if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values required to run the relay. A missing required
// value is fatal at startup by design.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return errors.New("telegram.token is required")
	}
	if strings.TrimSpace(c.Telegram.ChannelUsername) == "" {
		return errors.New("telegram.channel_username is required")
	}
	if c.Telegram.QuestChatID == 0 {
		return errors.New("telegram.quest_chat_id is required")
	}
	if strings.TrimSpace(c.Discord.WebhookURL) == "" {
		return errors.New("discord.webhook_url is required")
	}
	if strings.TrimSpace(c.Zealy.Subdomain) == "" {
		return errors.New("zealy.subdomain is required")
	}
	if strings.TrimSpace(c.Zealy.APIKey) == "" {
		return errors.New("zealy.api_key is required")
	}
	if strings.TrimSpace(c.Zealy.EndpointSecret) == "" {
		return errors.New("zealy.endpoint_secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	return nil
}

// LeaderboardURL returns the public leaderboard page linked in the formatted
// leaderboard footer.
func (c *Config) LeaderboardURL() string {
	return "https://zealy.io/cw/" + strings.TrimSpace(c.Zealy.Subdomain) + "/leaderboard"
}

// findConfigPath resolves the active config file location.
//
// RELAY_CONFIG wins when set; otherwise a cwd-local config.yaml is used when
// present. No file at all is valid since env vars can carry everything.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv("RELAY_CONFIG")); value != "" {
		info, err := os.Stat(value)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("RELAY_CONFIG does not point to a file: %s", value)
		}
		return value, nil
	}

	if info, err := os.Stat("config.yaml"); err == nil && !info.IsDir() {
		return "config.yaml", nil
	}

	return "", nil
}
