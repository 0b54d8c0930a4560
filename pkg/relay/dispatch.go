package relay

import (
	"context"
	"log/slog"

	"questrelay/pkg/bus"
	"questrelay/pkg/metrics"
)

// Sender delivers one outbound payload. Retry, if any, lives inside the
// sender's HTTP client, not here.
type Sender interface {
	Send(ctx context.Context, payload bus.Payload) error
}

// Dispatcher sends payload sequences best-effort: a failed payload is logged
// and the remaining ones are still attempted.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
}

// NewDispatcher builds a dispatcher around a delivery collaborator.
func NewDispatcher(sender Sender, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		sender: sender,
		log:    log.With("component", "relay.dispatcher"),
	}
}

// Dispatch sends each payload in order and returns the aggregate outcome.
// It never returns an error; per-payload failures are recorded in the result.
func (d *Dispatcher) Dispatch(ctx context.Context, payloads []bus.Payload) bus.DispatchResult {
	result := bus.DispatchResult{Attempted: len(payloads)}

	for i, payload := range payloads {
		if err := d.sender.Send(ctx, payload); err != nil {
			d.log.Error("Failed to deliver payload", "index", i, "kind", payload.Kind, "error", err)
			metrics.PayloadsSent.WithLabelValues(string(payload.Kind), metrics.OutcomeError).Inc()
			result.Failed = append(result.Failed, i)
			continue
		}
		metrics.PayloadsSent.WithLabelValues(string(payload.Kind), metrics.OutcomeOK).Inc()
	}

	return result
}
