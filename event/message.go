package event

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Attachment is the wire form of a file attached to a message.
type Attachment struct {
	ID       snowflake.ID `json:"id"`
	Filename string       `json:"filename"`
	Size     int          `json:"size"`
	URL      string       `json:"url"`
	ProxyURL string       `json:"proxy_url"`
	Height   *int         `json:"height"`
	Width    *int         `json:"width"`
}

// Message is the wire form of a channel message.
type Message struct {
	ID              snowflake.ID   `json:"id"`
	ChannelID       snowflake.ID   `json:"channel_id"`
	GuildID         *snowflake.ID  `json:"guild_id"`
	Author          User           `json:"author"`
	Content         string         `json:"content"`
	Timestamp       time.Time      `json:"timestamp"`
	EditedTimestamp *time.Time     `json:"edited_timestamp"`
	Kind            int            `json:"type"`
	MentionEveryone bool           `json:"mention_everyone"`
	MentionRoleIDs  []snowflake.ID `json:"mention_roles"`
	MentionUserIDs  []snowflake.ID `json:"mentions"`
	Pinned          bool           `json:"pinned"`
	TTS             bool           `json:"tts"`
	WebhookID       *snowflake.ID  `json:"webhook_id"`
	Attachments     []Attachment   `json:"attachments"`
}

// MessageCreate announces a new message.
type MessageCreate struct {
	Message Message `json:"message"`
}

// MessageDelete announces a removed message. Only ids survive the
// deletion, never the message body.
type MessageDelete struct {
	ID        snowflake.ID  `json:"id"`
	ChannelID snowflake.ID  `json:"channel_id"`
	GuildID   *snowflake.ID `json:"guild_id"`
}

func (*MessageCreate) Kind() string { return "MESSAGE_CREATE" }
func (*MessageDelete) Kind() string { return "MESSAGE_DELETE" }

func (*MessageCreate) isEvent() {}
func (*MessageDelete) isEvent() {}
