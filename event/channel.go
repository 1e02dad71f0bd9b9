package event

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Channel is the wire form of any channel kind. Group and private
// channels have no guild; the rest always belong to one.
type Channel interface {
	// ChannelID reports the channel's own id.
	ChannelID() snowflake.ID

	isChannel()
}

// Overwrite is a permission overwrite on a guild channel.
type Overwrite struct {
	ID    snowflake.ID `json:"id"`
	Kind  string       `json:"type"`
	Allow uint64       `json:"allow"`
	Deny  uint64       `json:"deny"`
}

// Group is a group direct-message channel.
type Group struct {
	ID               snowflake.ID  `json:"id"`
	ApplicationID    *snowflake.ID `json:"application_id"`
	Icon             *string       `json:"icon"`
	LastMessageID    *snowflake.ID `json:"last_message_id"`
	LastPinTimestamp *time.Time    `json:"last_pin_timestamp"`
	Name             *string       `json:"name"`
	OwnerID          snowflake.ID  `json:"owner_id"`
	Recipients       []User        `json:"recipients"`
}

// PrivateChannel is a one-to-one direct-message channel.
type PrivateChannel struct {
	ID               snowflake.ID  `json:"id"`
	LastMessageID    *snowflake.ID `json:"last_message_id"`
	LastPinTimestamp *time.Time    `json:"last_pin_timestamp"`
	Recipients       []User        `json:"recipients"`
}

// CategoryChannel groups other guild channels in the channel list.
type CategoryChannel struct {
	ID                   snowflake.ID `json:"id"`
	GuildID              snowflake.ID `json:"guild_id"`
	Name                 string       `json:"name"`
	PermissionOverwrites []Overwrite  `json:"permission_overwrites"`
	Position             int          `json:"position"`
}

// TextChannel is a guild text channel.
type TextChannel struct {
	ID                   snowflake.ID  `json:"id"`
	GuildID              snowflake.ID  `json:"guild_id"`
	Name                 string        `json:"name"`
	NSFW                 bool          `json:"nsfw"`
	LastMessageID        *snowflake.ID `json:"last_message_id"`
	LastPinTimestamp     *time.Time    `json:"last_pin_timestamp"`
	ParentID             *snowflake.ID `json:"parent_id"`
	PermissionOverwrites []Overwrite   `json:"permission_overwrites"`
	Position             int           `json:"position"`
	RateLimitPerUser     *int          `json:"rate_limit_per_user"`
	Topic                *string       `json:"topic"`
}

// VoiceChannel is a guild voice channel.
type VoiceChannel struct {
	ID                   snowflake.ID  `json:"id"`
	GuildID              snowflake.ID  `json:"guild_id"`
	Bitrate              int           `json:"bitrate"`
	Name                 string        `json:"name"`
	ParentID             *snowflake.ID `json:"parent_id"`
	PermissionOverwrites []Overwrite   `json:"permission_overwrites"`
	Position             int           `json:"position"`
	UserLimit            *int          `json:"user_limit"`
}

// StageChannel is a guild stage channel. It carries the same fields as
// a voice channel and is stored alongside them under its own kind.
type StageChannel VoiceChannel

func (c Group) ChannelID() snowflake.ID           { return c.ID }
func (c PrivateChannel) ChannelID() snowflake.ID  { return c.ID }
func (c CategoryChannel) ChannelID() snowflake.ID { return c.ID }
func (c TextChannel) ChannelID() snowflake.ID     { return c.ID }
func (c VoiceChannel) ChannelID() snowflake.ID    { return c.ID }
func (c StageChannel) ChannelID() snowflake.ID    { return c.ID }

func (Group) isChannel()           {}
func (PrivateChannel) isChannel()  {}
func (CategoryChannel) isChannel() {}
func (TextChannel) isChannel()     {}
func (VoiceChannel) isChannel()    {}
func (StageChannel) isChannel()    {}

// ChannelCreate announces a new channel of any kind.
type ChannelCreate struct {
	Channel Channel `json:"channel"`
}

// ChannelUpdate carries the full new state of a channel.
type ChannelUpdate struct {
	Channel Channel `json:"channel"`
}

// ChannelDelete announces a removed channel.
type ChannelDelete struct {
	Channel Channel `json:"channel"`
}

// ChannelPinsUpdate signals that a channel's pinned messages changed.
type ChannelPinsUpdate struct {
	ChannelID        snowflake.ID  `json:"channel_id"`
	GuildID          *snowflake.ID `json:"guild_id"`
	LastPinTimestamp *time.Time    `json:"last_pin_timestamp"`
}

func (*ChannelCreate) Kind() string     { return "CHANNEL_CREATE" }
func (*ChannelUpdate) Kind() string     { return "CHANNEL_UPDATE" }
func (*ChannelDelete) Kind() string     { return "CHANNEL_DELETE" }
func (*ChannelPinsUpdate) Kind() string { return "CHANNEL_PINS_UPDATE" }

func (*ChannelCreate) isEvent()     {}
func (*ChannelUpdate) isEvent()     {}
func (*ChannelDelete) isEvent()     {}
func (*ChannelPinsUpdate) isEvent() {}
