// Package telegram bridges Telegram updates into relay channel posts and
// command triggers, and provides the Telegram-side send and media-resolution
// collaborators.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"questrelay/pkg/bus"
	"questrelay/pkg/channel"
	"questrelay/pkg/config"
)

const channelName = "telegram"

var leaderboardPattern = regexp.MustCompile(`^/leaderboard\b`)

// Adapter long-polls Telegram updates and forwards them to the relay handler.
// It also implements the media-resolution and text-send collaborators used by
// the transformer and the webhook receiver.
type Adapter struct {
	cfg config.TelegramConfig
	bot *telego.Bot
	log *slog.Logger
}

// NewAdapter validates Telegram configuration and constructs the bot client.
func NewAdapter(cfg config.TelegramConfig, log *slog.Logger) (*Adapter, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("telegram.token is required")
	}

	if log == nil {
		log = slog.Default()
	}

	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	return &Adapter{
		cfg: cfg,
		bot: bot,
		log: log.With("component", "channel.telegram"),
	}, nil
}

// Name returns the channel identifier used in logs.
func (a *Adapter) Name() string {
	return channelName
}

// Run starts long polling and dispatches updates until ctx is canceled.
//
// Each inbound event is handled in its own goroutine; two channel posts may
// therefore reach the outbound side out of arrival order.
func (a *Adapter) Run(ctx context.Context, handler channel.Handler) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	updates, err := a.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	a.log.Info("Telegram channel started", "source_channel", a.cfg.ChannelUsername)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("telegram updates channel closed")
			}

			switch {
			case update.ChannelPost != nil:
				post := postFromMessage(update.ChannelPost)
				go a.relayPost(ctx, handler, post)
			case update.Message != nil && isLeaderboardCommand(update.Message.Text):
				chatID := update.Message.Chat.ID
				go a.answerLeaderboard(ctx, handler, chatID)
			}
		}
	}
}

func (a *Adapter) relayPost(ctx context.Context, handler channel.Handler, post bus.ChannelPost) {
	a.log.Info("Received channel post", "channel", post.ChannelUsername, "message_id", post.MessageID, "kind", post.Kind)

	if err := handler.HandleChannelPost(ctx, post); err != nil {
		a.log.Error("Failed to relay channel post", "message_id", post.MessageID, "error", err)
	}
}

func (a *Adapter) answerLeaderboard(ctx context.Context, handler channel.Handler, chatID int64) {
	reply, err := handler.HandleLeaderboardCommand(ctx, chatID)
	if err != nil {
		// The requesting user gets no reply on failure; see the open question
		// recorded in DESIGN.md.
		a.log.Error("Leaderboard command failed", "chat_id", chatID, "error", err)
		return
	}

	if err := a.SendText(ctx, chatID, reply); err != nil {
		a.log.Error("Failed to send leaderboard reply", "chat_id", chatID, "error", err)
	}
}

// SendText delivers an HTML-formatted message to a chat with link previews
// suppressed.
func (a *Adapter) SendText(ctx context.Context, chatID int64, html string) error {
	params := tu.Message(tu.ID(chatID), html).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	if _, err := a.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// ResolveFileURL turns a Telegram file identifier into a fetchable download
// URL via the file-info lookup.
func (a *Adapter) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	info, err := a.bot.GetFile(ctx, &telego.GetFileParams{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file info: %w", err)
	}

	return a.bot.FileDownloadURL(info.FilePath), nil
}

// isLeaderboardCommand reports whether message text triggers the leaderboard
// command, with or without a @botname suffix.
func isLeaderboardCommand(text string) bool {
	return leaderboardPattern.MatchString(strings.TrimSpace(text))
}

// postFromMessage maps a Telegram channel post onto the relay post union.
func postFromMessage(msg *telego.Message) bus.ChannelPost {
	post := bus.ChannelPost{
		ChannelUsername: msg.Chat.Username,
		ChatID:          msg.Chat.ID,
		MessageID:       msg.MessageID,
		Kind:            bus.PostText,
		Text:            msg.Text,
	}

	switch {
	case len(msg.Photo) > 0:
		post.Kind = bus.PostPhoto
		post.Text = msg.Caption
		post.PhotoFileIDs = make([]string, 0, len(msg.Photo))
		for _, size := range msg.Photo {
			post.PhotoFileIDs = append(post.PhotoFileIDs, size.FileID)
		}
	case msg.Video != nil:
		post.Kind = bus.PostVideo
		post.Text = msg.Caption
		post.VideoFileID = msg.Video.FileID
	case msg.Poll != nil:
		post.Kind = bus.PostPoll
		post.Text = ""
	}

	return post
}
