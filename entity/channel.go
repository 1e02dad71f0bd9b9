package entity

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Overwrite is a stored permission overwrite on a guild channel.
type Overwrite struct {
	ID    snowflake.ID `json:"id"`
	Kind  string       `json:"type"`
	Allow uint64       `json:"allow"`
	Deny  uint64       `json:"deny"`
}

func newOverwrites(os []event.Overwrite) []Overwrite {
	if os == nil {
		return nil
	}
	out := make([]Overwrite, len(os))
	for i, o := range os {
		out[i] = Overwrite{ID: o.ID, Kind: o.Kind, Allow: o.Allow, Deny: o.Deny}
	}
	return out
}

// Group is the stored form of a group direct-message channel. Only
// recipient ids are kept; the users themselves live in the user
// repository.
type Group struct {
	ID               snowflake.ID   `json:"id"`
	ApplicationID    *snowflake.ID  `json:"application_id"`
	Icon             *string        `json:"icon"`
	LastMessageID    *snowflake.ID  `json:"last_message_id"`
	LastPinTimestamp *time.Time     `json:"last_pin_timestamp"`
	Name             *string        `json:"name"`
	OwnerID          snowflake.ID   `json:"owner_id"`
	RecipientIDs     []snowflake.ID `json:"recipient_ids"`
}

func (g Group) Key() snowflake.ID { return g.ID }

// NewGroup converts a wire group channel into its stored form.
func NewGroup(g event.Group) Group {
	ids := make([]snowflake.ID, len(g.Recipients))
	for i, r := range g.Recipients {
		ids[i] = r.ID
	}

	return Group{
		ID:               g.ID,
		ApplicationID:    g.ApplicationID,
		Icon:             g.Icon,
		LastMessageID:    g.LastMessageID,
		LastPinTimestamp: g.LastPinTimestamp,
		Name:             g.Name,
		OwnerID:          g.OwnerID,
		RecipientIDs:     ids,
	}
}

// WithLastPinTimestamp copies the group with only the pin timestamp
// changed.
func (g Group) WithLastPinTimestamp(t *time.Time) Group {
	g.LastPinTimestamp = t
	return g
}

// WithLastMessageID copies the group with only the last message id
// changed.
func (g Group) WithLastMessageID(id snowflake.ID) Group {
	g.LastMessageID = &id
	return g
}

// PrivateChannel is the stored form of a one-to-one direct-message
// channel.
type PrivateChannel struct {
	ID               snowflake.ID   `json:"id"`
	LastMessageID    *snowflake.ID  `json:"last_message_id"`
	LastPinTimestamp *time.Time     `json:"last_pin_timestamp"`
	RecipientIDs     []snowflake.ID `json:"recipient_ids"`
}

func (c PrivateChannel) Key() snowflake.ID { return c.ID }

// NewPrivateChannel converts a wire private channel into its stored
// form.
func NewPrivateChannel(c event.PrivateChannel) PrivateChannel {
	ids := make([]snowflake.ID, len(c.Recipients))
	for i, r := range c.Recipients {
		ids[i] = r.ID
	}

	return PrivateChannel{
		ID:               c.ID,
		LastMessageID:    c.LastMessageID,
		LastPinTimestamp: c.LastPinTimestamp,
		RecipientIDs:     ids,
	}
}

// WithLastPinTimestamp copies the channel with only the pin timestamp
// changed.
func (c PrivateChannel) WithLastPinTimestamp(t *time.Time) PrivateChannel {
	c.LastPinTimestamp = t
	return c
}

// WithLastMessageID copies the channel with only the last message id
// changed.
func (c PrivateChannel) WithLastMessageID(id snowflake.ID) PrivateChannel {
	c.LastMessageID = &id
	return c
}

// CategoryChannel is the stored form of a guild category.
type CategoryChannel struct {
	ID                   snowflake.ID `json:"id"`
	GuildID              snowflake.ID `json:"guild_id"`
	Name                 string       `json:"name"`
	PermissionOverwrites []Overwrite  `json:"permission_overwrites"`
	Position             int          `json:"position"`
}

func (c CategoryChannel) Key() snowflake.ID { return c.ID }

// NewCategoryChannel converts a wire category into its stored form.
func NewCategoryChannel(c event.CategoryChannel) CategoryChannel {
	return CategoryChannel{
		ID:                   c.ID,
		GuildID:              c.GuildID,
		Name:                 c.Name,
		PermissionOverwrites: newOverwrites(c.PermissionOverwrites),
		Position:             c.Position,
	}
}

// TextChannel is the stored form of a guild text channel.
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

func (c TextChannel) Key() snowflake.ID { return c.ID }

// NewTextChannel converts a wire text channel into its stored form.
func NewTextChannel(c event.TextChannel) TextChannel {
	return TextChannel{
		ID:                   c.ID,
		GuildID:              c.GuildID,
		Name:                 c.Name,
		NSFW:                 c.NSFW,
		LastMessageID:        c.LastMessageID,
		LastPinTimestamp:     c.LastPinTimestamp,
		ParentID:             c.ParentID,
		PermissionOverwrites: newOverwrites(c.PermissionOverwrites),
		Position:             c.Position,
		RateLimitPerUser:     c.RateLimitPerUser,
		Topic:                c.Topic,
	}
}

// WithLastPinTimestamp copies the channel with only the pin timestamp
// changed.
func (c TextChannel) WithLastPinTimestamp(t *time.Time) TextChannel {
	c.LastPinTimestamp = t
	return c
}

// WithLastMessageID copies the channel with only the last message id
// changed.
func (c TextChannel) WithLastMessageID(id snowflake.ID) TextChannel {
	c.LastMessageID = &id
	return c
}

// VoiceChannel is the stored form of a guild voice channel. Stage
// channels share this shape and live in their own repository.
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

func (c VoiceChannel) Key() snowflake.ID { return c.ID }

// NewVoiceChannel converts a wire voice channel into its stored form.
func NewVoiceChannel(c event.VoiceChannel) VoiceChannel {
	return VoiceChannel{
		ID:                   c.ID,
		GuildID:              c.GuildID,
		Bitrate:              c.Bitrate,
		Name:                 c.Name,
		ParentID:             c.ParentID,
		PermissionOverwrites: newOverwrites(c.PermissionOverwrites),
		Position:             c.Position,
		UserLimit:            c.UserLimit,
	}
}

// NewStageChannel converts a wire stage channel into the voice-channel
// shape stored by the stage repository.
func NewStageChannel(c event.StageChannel) VoiceChannel {
	return NewVoiceChannel(event.VoiceChannel(c))
}
