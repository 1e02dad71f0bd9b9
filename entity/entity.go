// Package entity holds the stored form of every cached record. Each
// kind exposes its key, a conversion from the wire payload, and where
// partial updates exist, a merge that copies the old value and applies
// only the changed fields.
package entity

import "github.com/disgoorg/snowflake/v2"

// Entity is any cached record, addressed by its key.
type Entity[K comparable] interface {
	Key() K
}

// MemberKey identifies a member inside one guild.
type MemberKey struct {
	GuildID snowflake.ID `json:"guild_id"`
	UserID  snowflake.ID `json:"user_id"`
}

// EmojiKey identifies a custom emoji inside one guild.
type EmojiKey struct {
	GuildID snowflake.ID `json:"guild_id"`
	EmojiID snowflake.ID `json:"emoji_id"`
}

// PresenceKey identifies a user's presence inside one guild.
type PresenceKey struct {
	GuildID snowflake.ID `json:"guild_id"`
	UserID  snowflake.ID `json:"user_id"`
}

// VoiceStateKey identifies a user's voice state inside one guild.
type VoiceStateKey struct {
	GuildID snowflake.ID `json:"guild_id"`
	UserID  snowflake.ID `json:"user_id"`
}

// ChannelKind names the concrete repository a guild channel lives in.
type ChannelKind string

const (
	ChannelCategory ChannelKind = "category"
	ChannelText     ChannelKind = "text"
	ChannelVoice    ChannelKind = "voice"
	ChannelStage    ChannelKind = "stage"
)

// GuildChannel is a kind-tagged channel reference produced by guild
// channel listings, enough to route a removal to the right repository.
type GuildChannel struct {
	ID   snowflake.ID `json:"id"`
	Kind ChannelKind  `json:"kind"`
}
