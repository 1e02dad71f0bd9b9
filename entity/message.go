package entity

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Attachment is the stored form of a file attached to a message.
type Attachment struct {
	ID        snowflake.ID `json:"id"`
	MessageID snowflake.ID `json:"message_id"`
	Filename  string       `json:"filename"`
	Size      int          `json:"size"`
	URL       string       `json:"url"`
	ProxyURL  string       `json:"proxy_url"`
	Height    *int         `json:"height"`
	Width     *int         `json:"width"`
}

func (a Attachment) Key() snowflake.ID { return a.ID }

// NewAttachment converts a wire attachment into its stored form,
// bound to the message it arrived on.
func NewAttachment(messageID snowflake.ID, a event.Attachment) Attachment {
	return Attachment{
		ID:        a.ID,
		MessageID: messageID,
		Filename:  a.Filename,
		Size:      a.Size,
		URL:       a.URL,
		ProxyURL:  a.ProxyURL,
		Height:    a.Height,
		Width:     a.Width,
	}
}

// Message is the stored form of a channel message. Attachments are
// separate records bound by message id.
type Message struct {
	ID              snowflake.ID   `json:"id"`
	ChannelID       snowflake.ID   `json:"channel_id"`
	GuildID         *snowflake.ID  `json:"guild_id"`
	AuthorID        snowflake.ID   `json:"author_id"`
	Content         string         `json:"content"`
	Timestamp       time.Time      `json:"timestamp"`
	EditedTimestamp *time.Time     `json:"edited_timestamp"`
	Kind            int            `json:"type"`
	MentionEveryone bool           `json:"mention_everyone"`
	MentionRoleIDs  []snowflake.ID `json:"mention_role_ids"`
	MentionUserIDs  []snowflake.ID `json:"mention_user_ids"`
	Pinned          bool           `json:"pinned"`
	TTS             bool           `json:"tts"`
	WebhookID       *snowflake.ID  `json:"webhook_id"`
}

func (m Message) Key() snowflake.ID { return m.ID }

// NewMessage converts a wire message into its stored form, keeping
// only the author's id.
func NewMessage(m event.Message) Message {
	return Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		GuildID:         m.GuildID,
		AuthorID:        m.Author.ID,
		Content:         m.Content,
		Timestamp:       m.Timestamp,
		EditedTimestamp: m.EditedTimestamp,
		Kind:            m.Kind,
		MentionEveryone: m.MentionEveryone,
		MentionRoleIDs:  m.MentionRoleIDs,
		MentionUserIDs:  m.MentionUserIDs,
		Pinned:          m.Pinned,
		TTS:             m.TTS,
		WebhookID:       m.WebhookID,
	}
}
