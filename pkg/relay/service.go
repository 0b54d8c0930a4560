// Package relay contains the announcement transformer, the best-effort
// dispatcher, and the service tying inbound events to outbound deliveries.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"questrelay/pkg/bus"
	"questrelay/pkg/metrics"
	"questrelay/pkg/zealy"
)

const mentionEveryone = "@everyone"

// LeaderboardSource fetches ranked leaderboard entries from the upstream API.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, page, limit int) ([]zealy.Entry, error)
}

// Options parameterizes the relay service. The near-duplicate bot variants
// collapse here: source channel, mention ping, and presentation are all
// configuration.
type Options struct {
	ChannelUsername string
	MentionEveryone bool
	LeaderboardPage int
	LeaderboardSize int
	LeaderboardURL  string
}

// Service handles inbound channel events: it relays channel posts to the
// outbound webhook and answers the leaderboard command.
type Service struct {
	opts        Options
	transformer *Transformer
	dispatcher  *Dispatcher
	leaderboard LeaderboardSource
	log         *slog.Logger
}

// NewService wires the relay service from its collaborators.
func NewService(opts Options, transformer *Transformer, dispatcher *Dispatcher, leaderboard LeaderboardSource, log *slog.Logger) (*Service, error) {
	if transformer == nil {
		return nil, fmt.Errorf("transformer is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if strings.TrimSpace(opts.ChannelUsername) == "" {
		return nil, fmt.Errorf("source channel username is required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		opts:        opts,
		transformer: transformer,
		dispatcher:  dispatcher,
		leaderboard: leaderboard,
		log:         log.With("component", "relay.service"),
	}, nil
}

// HandleChannelPost relays one channel post. Posts from any channel other
// than the configured source are ignored without any outbound call.
func (s *Service) HandleChannelPost(ctx context.Context, post bus.ChannelPost) error {
	metrics.PostsReceived.WithLabelValues(string(post.Kind)).Inc()

	if post.ChannelUsername != s.opts.ChannelUsername {
		metrics.PostsSkipped.Inc()
		s.log.Debug("Ignoring post from unconfigured channel", "channel", post.ChannelUsername)
		return nil
	}

	payloads, err := s.transformer.Transform(ctx, post)
	if err != nil {
		return fmt.Errorf("transform post %d: %w", post.MessageID, err)
	}

	if s.opts.MentionEveryone {
		payloads = append([]bus.Payload{bus.ContentPayload(mentionEveryone)}, payloads...)
	}

	result := s.dispatcher.Dispatch(ctx, payloads)
	switch {
	case result.OK():
		s.log.Info("Relayed channel post", "message_id", post.MessageID, "kind", post.Kind, "payloads", result.Attempted)
	case result.Partial():
		s.log.Warn("Partially relayed channel post", "message_id", post.MessageID, "failed_indices", result.Failed)
	default:
		s.log.Error("Failed to relay channel post", "message_id", post.MessageID, "payloads", result.Attempted)
	}

	return nil
}

// HandleLeaderboardCommand fetches and formats the leaderboard reply.
func (s *Service) HandleLeaderboardCommand(ctx context.Context, chatID int64) (string, error) {
	if s.leaderboard == nil {
		return "", fmt.Errorf("leaderboard source is not configured")
	}

	entries, err := s.leaderboard.Leaderboard(ctx, s.opts.LeaderboardPage, s.opts.LeaderboardSize)
	if err != nil {
		metrics.LeaderboardFetches.WithLabelValues(metrics.OutcomeError).Inc()
		return "", fmt.Errorf("fetch leaderboard: %w", err)
	}
	metrics.LeaderboardFetches.WithLabelValues(metrics.OutcomeOK).Inc()

	s.log.Info("Answering leaderboard command", "chat_id", chatID, "entries", len(entries))
	return zealy.Format(entries, s.opts.LeaderboardURL), nil
}
