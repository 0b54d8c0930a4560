// Package discord delivers outbound payloads to a Discord webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"questrelay/pkg/bus"
	"questrelay/pkg/httpclient"
)

// Discord rejects webhook uploads above its attachment cap; bound the
// download so an oversized file fails fast instead of exhausting memory.
const maxAttachmentBytes = 100 << 20

// webhookMessage is the JSON payload accepted by a Discord webhook.
type webhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Color       int         `json:"color,omitempty"`
	Image       *embedImage `json:"image,omitempty"`
}

type embedImage struct {
	URL string `json:"url"`
}

// WebhookClient executes a single configured Discord webhook.
type WebhookClient struct {
	url  string
	http *retryablehttp.Client
}

// NewWebhookClient validates the webhook URL and builds a client with the
// shared retrying HTTP transport.
func NewWebhookClient(webhookURL string) (*WebhookClient, error) {
	trimmed := strings.TrimSpace(webhookURL)
	if trimmed == "" {
		return nil, errors.New("discord webhook URL is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid discord webhook URL: %w", err)
	}

	return &WebhookClient{
		url:  trimmed,
		http: httpclient.New(),
	}, nil
}

// Send delivers one payload to the webhook. File payloads are fetched from
// their source URL and re-uploaded as a multipart attachment, which is how
// URL-referenced files reach Discord.
func (c *WebhookClient) Send(ctx context.Context, payload bus.Payload) error {
	switch payload.Kind {
	case bus.PayloadContent:
		return c.postJSON(ctx, webhookMessage{Content: payload.Content})
	case bus.PayloadEmbed:
		return c.postJSON(ctx, webhookMessage{Embeds: []embed{embedFromPayload(payload)}})
	case bus.PayloadFile:
		return c.postFile(ctx, payload.FileURL)
	default:
		return fmt.Errorf("unsupported payload kind %q", payload.Kind)
	}
}

func embedFromPayload(payload bus.Payload) embed {
	e := embed{
		Title:       payload.Embed.Title,
		Description: payload.Embed.Description,
		Color:       payload.Embed.Color,
	}
	if payload.Embed.ImageURL != "" {
		e.Image = &embedImage{URL: payload.Embed.ImageURL}
	}
	return e
}

func (c *WebhookClient) postJSON(ctx context.Context, message webhookMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

func (c *WebhookClient) postFile(ctx context.Context, fileURL string) error {
	data, filename, err := c.download(ctx, fileURL)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files[0]", filename)
	if err != nil {
		return fmt.Errorf("build attachment part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write attachment part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize attachment form: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, buf.Bytes())
	if err != nil {
		return fmt.Errorf("build webhook upload: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

func (c *WebhookClient) download(ctx context.Context, fileURL string) ([]byte, string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build media download: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, "", fmt.Errorf("download media: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read media body: %w", err)
	}
	if len(data) > maxAttachmentBytes {
		return nil, "", fmt.Errorf("media at %s exceeds %d bytes", fileURL, maxAttachmentBytes)
	}

	return data, attachmentName(fileURL), nil
}

// attachmentName derives an upload filename from the media URL path.
func attachmentName(fileURL string) string {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "attachment"
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "attachment"
	}
	return name
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
