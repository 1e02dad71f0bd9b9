// Package memory is a map-backed cache backend. A single RWMutex
// guards every table, so repository calls never fail; listings
// snapshot under the read lock and yield outside it.
package memory

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/entity"
)

var _ cache.Backend = (*Backend)(nil)

// Backend holds every table behind one lock. Repositories are views
// into it and may be shared freely.
type Backend struct {
	mu sync.RWMutex

	attachments      map[snowflake.ID]entity.Attachment
	categoryChannels map[snowflake.ID]entity.CategoryChannel
	current          *entity.CurrentUser
	emojis           map[entity.EmojiKey]entity.Emoji
	groups           map[snowflake.ID]entity.Group
	guilds           map[snowflake.ID]entity.Guild
	members          map[entity.MemberKey]entity.Member
	messages         map[snowflake.ID]entity.Message
	presences        map[entity.PresenceKey]entity.Presence
	privateChannels  map[snowflake.ID]entity.PrivateChannel
	roles            map[snowflake.ID]entity.Role
	stageChannels    map[snowflake.ID]entity.VoiceChannel
	textChannels     map[snowflake.ID]entity.TextChannel
	users            map[snowflake.ID]entity.User
	voiceChannels    map[snowflake.ID]entity.VoiceChannel
	voiceStates      map[entity.VoiceStateKey]entity.VoiceState
}

// New returns an empty backend.
func New() *Backend {
	return &Backend{
		attachments:      make(map[snowflake.ID]entity.Attachment),
		categoryChannels: make(map[snowflake.ID]entity.CategoryChannel),
		emojis:           make(map[entity.EmojiKey]entity.Emoji),
		groups:           make(map[snowflake.ID]entity.Group),
		guilds:           make(map[snowflake.ID]entity.Guild),
		members:          make(map[entity.MemberKey]entity.Member),
		messages:         make(map[snowflake.ID]entity.Message),
		presences:        make(map[entity.PresenceKey]entity.Presence),
		privateChannels:  make(map[snowflake.ID]entity.PrivateChannel),
		roles:            make(map[snowflake.ID]entity.Role),
		stageChannels:    make(map[snowflake.ID]entity.VoiceChannel),
		textChannels:     make(map[snowflake.ID]entity.TextChannel),
		users:            make(map[snowflake.ID]entity.User),
		voiceChannels:    make(map[snowflake.ID]entity.VoiceChannel),
		voiceStates:      make(map[entity.VoiceStateKey]entity.VoiceState),
	}
}

func (b *Backend) Attachments() cache.AttachmentRepository {
	return &table[entity.Attachment, snowflake.ID]{b: b, items: b.attachments}
}

func (b *Backend) CategoryChannels() cache.CategoryChannelRepository {
	return &table[entity.CategoryChannel, snowflake.ID]{b: b, items: b.categoryChannels}
}

func (b *Backend) CurrentUser() cache.CurrentUserRepository {
	return &currentUserRepository{b: b}
}

func (b *Backend) Emojis() cache.EmojiRepository {
	return &table[entity.Emoji, entity.EmojiKey]{b: b, items: b.emojis}
}

func (b *Backend) Groups() cache.GroupRepository {
	return &table[entity.Group, snowflake.ID]{b: b, items: b.groups}
}

func (b *Backend) Guilds() cache.GuildRepository {
	return &guildRepository{&table[entity.Guild, snowflake.ID]{b: b, items: b.guilds}}
}

func (b *Backend) Members() cache.MemberRepository {
	return &table[entity.Member, entity.MemberKey]{b: b, items: b.members}
}

func (b *Backend) Messages() cache.MessageRepository {
	return &messageRepository{&table[entity.Message, snowflake.ID]{b: b, items: b.messages}}
}

func (b *Backend) Presences() cache.PresenceRepository {
	return &table[entity.Presence, entity.PresenceKey]{b: b, items: b.presences}
}

func (b *Backend) PrivateChannels() cache.PrivateChannelRepository {
	return &table[entity.PrivateChannel, snowflake.ID]{b: b, items: b.privateChannels}
}

func (b *Backend) Roles() cache.RoleRepository {
	return &table[entity.Role, snowflake.ID]{b: b, items: b.roles}
}

func (b *Backend) StageChannels() cache.VoiceChannelRepository {
	return &table[entity.VoiceChannel, snowflake.ID]{b: b, items: b.stageChannels}
}

func (b *Backend) TextChannels() cache.TextChannelRepository {
	return &table[entity.TextChannel, snowflake.ID]{b: b, items: b.textChannels}
}

func (b *Backend) Users() cache.UserRepository {
	return &userRepository{&table[entity.User, snowflake.ID]{b: b, items: b.users}}
}

func (b *Backend) VoiceChannels() cache.VoiceChannelRepository {
	return &table[entity.VoiceChannel, snowflake.ID]{b: b, items: b.voiceChannels}
}

func (b *Backend) VoiceStates() cache.VoiceStateRepository {
	return &table[entity.VoiceState, entity.VoiceStateKey]{b: b, items: b.voiceStates}
}
