// Package bus defines the message shapes passed between the inbound channel,
// the announcement transformer, and the outbound dispatcher.
package bus

// PostKind discriminates the content carried by a channel post.
type PostKind string

const (
	PostText  PostKind = "text"
	PostPhoto PostKind = "photo"
	PostVideo PostKind = "video"
	PostPoll  PostKind = "poll"
)

// ChannelPost is one inbound channel post, built by the channel adapter and
// consumed once by the transformer.
type ChannelPost struct {
	ChannelUsername string
	ChatID          int64
	MessageID       int
	Kind            PostKind
	// Text holds the message text, or the caption for media posts.
	// Empty when the post carries neither.
	Text string
	// PhotoFileIDs lists photo resolution variants in ascending size order,
	// matching the upstream API ordering.
	PhotoFileIDs []string
	VideoFileID  string
}

// PayloadKind discriminates outbound payload shapes.
type PayloadKind string

const (
	PayloadContent PayloadKind = "content"
	PayloadEmbed   PayloadKind = "embed"
	PayloadFile    PayloadKind = "file"
)

// Embed is a rich outbound message block.
type Embed struct {
	Title       string
	Description string
	Color       int
	ImageURL    string
}

// Payload is one outbound message produced by the transformer. Exactly one of
// Content, Embed, or FileURL is set, selected by Kind.
type Payload struct {
	Kind    PayloadKind
	Content string
	Embed   *Embed
	FileURL string
}

// ContentPayload builds a plain-text payload.
func ContentPayload(content string) Payload {
	return Payload{Kind: PayloadContent, Content: content}
}

// EmbedPayload builds a rich embed payload.
func EmbedPayload(embed Embed) Payload {
	return Payload{Kind: PayloadEmbed, Embed: &embed}
}

// FilePayload builds a file-attachment payload referencing a fetchable URL.
func FilePayload(url string) Payload {
	return Payload{Kind: PayloadFile, FileURL: url}
}

// DispatchResult aggregates a best-effort dispatch of an ordered payload
// sequence. Failed holds the zero-based indices that could not be delivered.
type DispatchResult struct {
	Attempted int
	Failed    []int
}

// OK reports whether every payload was delivered.
func (r DispatchResult) OK() bool {
	return len(r.Failed) == 0
}

// Partial reports whether some but not all payloads were delivered.
func (r DispatchResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Failed) < r.Attempted
}
