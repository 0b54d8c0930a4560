// Package channel declares the contract between inbound transports and the
// relay service.
package channel

import (
	"context"

	"questrelay/pkg/bus"
)

// Handler receives inbound events from a channel adapter.
type Handler interface {
	// HandleChannelPost relays one channel post. Errors are reported back so
	// the adapter can log them; they never stop the adapter.
	HandleChannelPost(ctx context.Context, post bus.ChannelPost) error

	// HandleLeaderboardCommand produces the HTML leaderboard reply for the
	// requesting chat.
	HandleLeaderboardCommand(ctx context.Context, chatID int64) (string, error)
}

// Adapter bridges one external transport (for example Telegram) into the relay.
type Adapter interface {
	Name() string
	Run(ctx context.Context, handler Handler) error
}
