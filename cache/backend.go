package cache

import (
	"context"
	"iter"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/entity"
)

// Repository is the storage contract one backend implements per entity
// kind. Every operation reports failure through the backend's own
// error; the contract adds no error kinds of its own.
type Repository[E entity.Entity[K], K comparable] interface {
	// Get returns the stored value for key. Absence is reported via
	// the second return, never as an error.
	Get(ctx context.Context, key K) (E, bool, error)

	// Upsert inserts or fully replaces one record. It is idempotent.
	Upsert(ctx context.Context, ent E) error

	// UpsertBulk inserts or replaces a batch, equivalent to one Upsert
	// per element. The backend may batch the physical write; elements
	// are independent records and apply in no particular order.
	UpsertBulk(ctx context.Context, ents []E) error

	// Remove deletes the record for key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key K) error
}

// AttachmentRepository stores message attachments.
type AttachmentRepository interface {
	Repository[entity.Attachment, snowflake.ID]
}

// CategoryChannelRepository stores guild categories.
type CategoryChannelRepository interface {
	Repository[entity.CategoryChannel, snowflake.ID]
}

// CurrentUserRepository stores the authenticated user. There is at
// most one record at a time.
type CurrentUserRepository interface {
	Repository[entity.CurrentUser, snowflake.ID]

	// Current returns the stored current user, if any.
	Current(ctx context.Context) (entity.CurrentUser, bool, error)
}

// EmojiRepository stores custom guild emojis.
type EmojiRepository interface {
	Repository[entity.Emoji, entity.EmojiKey]
}

// GroupRepository stores group direct-message channels.
type GroupRepository interface {
	Repository[entity.Group, snowflake.ID]
}

// GuildRepository stores guilds and exposes the child listings that
// drive cascades. Listings are lazy one-shot sequences; an item error
// ends the sequence.
type GuildRepository interface {
	Repository[entity.Guild, snowflake.ID]

	// Channels streams a kind-tagged reference to every channel of
	// the guild, enough to route each removal to its repository.
	Channels(ctx context.Context, guildID snowflake.ID) iter.Seq2[entity.GuildChannel, error]

	// EmojiIDs streams the guild's emoji ids.
	EmojiIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error]

	// MemberIDs streams the user ids of the guild's members.
	MemberIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error]

	// PresenceIDs streams the user ids of the guild's presences.
	PresenceIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error]

	// RoleIDs streams the guild's role ids.
	RoleIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error]

	// VoiceStateIDs streams the user ids of the guild's voice states.
	VoiceStateIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error]
}

// MemberRepository stores guild members.
type MemberRepository interface {
	Repository[entity.Member, entity.MemberKey]
}

// MessageRepository stores messages and the attachment listing their
// removal cascades over.
type MessageRepository interface {
	Repository[entity.Message, snowflake.ID]

	// Attachments streams the stored attachments of one message.
	Attachments(ctx context.Context, messageID snowflake.ID) iter.Seq2[entity.Attachment, error]
}

// PresenceRepository stores per-guild user presences.
type PresenceRepository interface {
	Repository[entity.Presence, entity.PresenceKey]
}

// PrivateChannelRepository stores one-to-one direct-message channels.
type PrivateChannelRepository interface {
	Repository[entity.PrivateChannel, snowflake.ID]
}

// RoleRepository stores guild roles.
type RoleRepository interface {
	Repository[entity.Role, snowflake.ID]
}

// TextChannelRepository stores guild text channels.
type TextChannelRepository interface {
	Repository[entity.TextChannel, snowflake.ID]
}

// UserRepository stores global users.
type UserRepository interface {
	Repository[entity.User, snowflake.ID]

	// GuildIDs streams the ids of guilds the user is a member of.
	GuildIDs(ctx context.Context, userID snowflake.ID) iter.Seq2[snowflake.ID, error]
}

// VoiceChannelRepository stores guild voice channels. Stage channels
// share the shape and get their own instance.
type VoiceChannelRepository interface {
	Repository[entity.VoiceChannel, snowflake.ID]
}

// VoiceStateRepository stores per-guild user voice states.
type VoiceStateRepository interface {
	Repository[entity.VoiceState, entity.VoiceStateKey]
}

// Backend constructs the repository set over one physical store. A
// backend must be safe under concurrent calls from many events; any
// synchronization that keeps a record's reads and writes consistent
// lives behind these constructors.
type Backend interface {
	Attachments() AttachmentRepository
	CategoryChannels() CategoryChannelRepository
	CurrentUser() CurrentUserRepository
	Emojis() EmojiRepository
	Groups() GroupRepository
	Guilds() GuildRepository
	Members() MemberRepository
	Messages() MessageRepository
	Presences() PresenceRepository
	PrivateChannels() PrivateChannelRepository
	Roles() RoleRepository
	StageChannels() VoiceChannelRepository
	TextChannels() TextChannelRepository
	Users() UserRepository
	VoiceChannels() VoiceChannelRepository
	VoiceStates() VoiceStateRepository
}
