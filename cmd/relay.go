package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"questrelay/pkg/channel/telegram"
	"questrelay/pkg/config"
	"questrelay/pkg/discord"
	"questrelay/pkg/logger"
	"questrelay/pkg/relay"
	"questrelay/pkg/webhook"
	"questrelay/pkg/zealy"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the relay bot",
	Long:  "Runs the Telegram channel relay and the Zealy webhook server until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := slog.Default().With("component", "cmd.relay")

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runRelay(runCtx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Relay runtime failed", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

// runRelay wires the adapter, clients, and services, then runs the channel
// loop and the webhook server until either fails or ctx is canceled.
func runRelay(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	adapter, err := telegram.NewAdapter(cfg.Telegram, log)
	if err != nil {
		return fmt.Errorf("configure telegram channel: %w", err)
	}

	webhookClient, err := discord.NewWebhookClient(cfg.Discord.WebhookURL)
	if err != nil {
		return fmt.Errorf("configure discord webhook: %w", err)
	}

	zealyClient, err := zealy.NewClient(cfg.Zealy.BaseURL, cfg.Zealy.Subdomain, cfg.Zealy.APIKey)
	if err != nil {
		return fmt.Errorf("configure zealy client: %w", err)
	}

	transformer := relay.NewTransformer(adapter, relay.TransformOptions{
		Title:        cfg.Discord.Title,
		AccentColor:  cfg.Discord.AccentColor,
		PollImageURL: cfg.Discord.PollImageURL,
	})
	dispatcher := relay.NewDispatcher(webhookClient, log)

	service, err := relay.NewService(relay.Options{
		ChannelUsername: cfg.Telegram.ChannelUsername,
		MentionEveryone: cfg.Discord.MentionEveryone,
		LeaderboardPage: cfg.Zealy.Page,
		LeaderboardSize: cfg.Zealy.Limit,
		LeaderboardURL:  cfg.LeaderboardURL(),
	}, transformer, dispatcher, zealyClient, log)
	if err != nil {
		return fmt.Errorf("configure relay service: %w", err)
	}

	receiver, err := webhook.NewService(webhook.Options{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		EndpointSecret: cfg.Zealy.EndpointSecret,
		ClaimAPIKey:    cfg.Zealy.ClaimAPIKey,
		QuestChatID:    cfg.Telegram.QuestChatID,
	}, adapter, log)
	if err != nil {
		return fmt.Errorf("configure webhook server: %w", err)
	}

	log.Info("Relay started", "channel", cfg.Telegram.ChannelUsername)

	errCh := make(chan error, 2)
	go func() {
		if err := adapter.Run(ctx, service); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("run %s channel: %w", adapter.Name(), err)
		}
	}()
	go func() {
		if err := receiver.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
