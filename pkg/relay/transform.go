package relay

import (
	"context"
	"fmt"

	"questrelay/pkg/bus"
)

const defaultPostLinkBase = "https://t.me"

// MediaResolver resolves a media file identifier to a fetchable URL.
type MediaResolver interface {
	ResolveFileURL(ctx context.Context, fileID string) (string, error)
}

// MediaResolveError reports a failed media resolution for a specific file.
type MediaResolveError struct {
	FileID string
	Err    error
}

func (e *MediaResolveError) Error() string {
	return fmt.Sprintf("resolve media %s: %v", e.FileID, e.Err)
}

func (e *MediaResolveError) Unwrap() error {
	return e.Err
}

// TransformOptions parameterizes announcement presentation.
type TransformOptions struct {
	Title        string
	AccentColor  int
	PollImageURL string
	// PostLinkBase is the public message-link base; defaults to https://t.me.
	PostLinkBase string
}

// Transformer turns one inbound channel post into the ordered outbound
// payloads that represent it. It performs no sends; the only side effect is
// the media-resolution lookup.
type Transformer struct {
	resolver MediaResolver
	opts     TransformOptions
}

// NewTransformer builds a transformer around a media resolver.
func NewTransformer(resolver MediaResolver, opts TransformOptions) *Transformer {
	if opts.PostLinkBase == "" {
		opts.PostLinkBase = defaultPostLinkBase
	}
	return &Transformer{resolver: resolver, opts: opts}
}

// Transform maps a channel post to its outbound payload sequence.
//
// Photos become a single embed with the highest-resolution variant as image.
// Videos become a file attachment followed by an embed. Polls become an embed
// with a deep link back to the original message. Anything else becomes a
// plain embed carrying the message text.
func (t *Transformer) Transform(ctx context.Context, post bus.ChannelPost) ([]bus.Payload, error) {
	switch post.Kind {
	case bus.PostPhoto:
		return t.transformPhoto(ctx, post)
	case bus.PostVideo:
		return t.transformVideo(ctx, post)
	case bus.PostPoll:
		return t.transformPoll(post), nil
	default:
		return []bus.Payload{t.embedPayload(post.Text, "")}, nil
	}
}

func (t *Transformer) transformPhoto(ctx context.Context, post bus.ChannelPost) ([]bus.Payload, error) {
	if len(post.PhotoFileIDs) == 0 {
		return nil, &MediaResolveError{Err: fmt.Errorf("photo post %d has no file variants", post.MessageID)}
	}

	// Variants arrive in ascending resolution; the last one is the largest.
	fileID := post.PhotoFileIDs[len(post.PhotoFileIDs)-1]
	url, err := t.resolver.ResolveFileURL(ctx, fileID)
	if err != nil {
		return nil, &MediaResolveError{FileID: fileID, Err: err}
	}

	return []bus.Payload{t.embedPayload(post.Text, url)}, nil
}

func (t *Transformer) transformVideo(ctx context.Context, post bus.ChannelPost) ([]bus.Payload, error) {
	url, err := t.resolver.ResolveFileURL(ctx, post.VideoFileID)
	if err != nil {
		return nil, &MediaResolveError{FileID: post.VideoFileID, Err: err}
	}

	// Attachment first, then the embed, matching the announcement layout.
	return []bus.Payload{
		bus.FilePayload(url),
		t.embedPayload(post.Text, ""),
	}, nil
}

func (t *Transformer) transformPoll(post bus.ChannelPost) []bus.Payload {
	link := fmt.Sprintf("%s/%s/%d", t.opts.PostLinkBase, post.ChannelUsername, post.MessageID)
	description := fmt.Sprintf("\nHead over to Telegram to participate in our poll!\nTG poll message link: %s\n", link)

	return []bus.Payload{bus.EmbedPayload(bus.Embed{
		Title:       t.opts.Title,
		Description: description,
		Color:       t.opts.AccentColor,
		ImageURL:    t.opts.PollImageURL,
	})}
}

func (t *Transformer) embedPayload(description, imageURL string) bus.Payload {
	return bus.EmbedPayload(bus.Embed{
		Title:       t.opts.Title,
		Description: description,
		Color:       t.opts.AccentColor,
		ImageURL:    imageURL,
	})
}
