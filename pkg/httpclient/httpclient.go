// Package httpclient builds the retrying HTTP client shared by every
// outbound call surface.
package httpclient

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	retryMax     = 3
	retryWaitMin = 1 * time.Second
	retryWaitMax = 30 * time.Second
)

// New returns a client with bounded exponential backoff, applied uniformly to
// all outbound HTTP calls (webhook delivery, leaderboard fetch, media
// download).
func New() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	// retryablehttp's own logger is too chatty; failures surface as errors.
	client.Logger = nil
	return client
}
