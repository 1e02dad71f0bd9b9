// Package cache projects gateway events onto a pluggable storage
// backend, one repository per entity kind.
package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

// Cache owns a backend and the repository set built over it. The
// repository fields are read/write handles shared with callers outside
// the projector; the backend keeps them safe to use concurrently.
type Cache struct {
	backend Backend

	Attachments      AttachmentRepository
	CategoryChannels CategoryChannelRepository
	CurrentUser      CurrentUserRepository
	Emojis           EmojiRepository
	Groups           GroupRepository
	Guilds           GuildRepository
	Members          MemberRepository
	Messages         MessageRepository
	Presences        PresenceRepository
	PrivateChannels  PrivateChannelRepository
	Roles            RoleRepository
	StageChannels    VoiceChannelRepository
	TextChannels     TextChannelRepository
	Users            UserRepository
	VoiceChannels    VoiceChannelRepository
	VoiceStates      VoiceStateRepository
}

// New builds a cache over the backend. Every repository is constructed
// once, here, never lazily per call.
func New(backend Backend) *Cache {
	return &Cache{
		backend:          backend,
		Attachments:      backend.Attachments(),
		CategoryChannels: backend.CategoryChannels(),
		CurrentUser:      backend.CurrentUser(),
		Emojis:           backend.Emojis(),
		Groups:           backend.Groups(),
		Guilds:           backend.Guilds(),
		Members:          backend.Members(),
		Messages:         backend.Messages(),
		Presences:        backend.Presences(),
		PrivateChannels:  backend.PrivateChannels(),
		Roles:            backend.Roles(),
		StageChannels:    backend.StageChannels(),
		TextChannels:     backend.TextChannels(),
		Users:            backend.Users(),
		VoiceChannels:    backend.VoiceChannels(),
		VoiceStates:      backend.VoiceStates(),
	}
}

// Backend returns the backend the cache was built over.
func (c *Cache) Backend() Backend { return c.backend }

// Process projects one event onto the cache. Events the projector does
// not model are a deliberate no-op. A failing call aborts the rest of
// this event's steps and surfaces the backend's error as-is; other
// in-flight events are unaffected.
func (c *Cache) Process(ctx context.Context, evt event.Event) error {
	trace := uuid.NewString()
	dlog.Debug("Starting event projection", "kind", evt.Kind(), "trace", trace)

	var err error
	switch e := evt.(type) {
	case *event.ChannelCreate:
		err = c.upsertChannel(ctx, e.Channel)
	case *event.ChannelUpdate:
		err = c.upsertChannel(ctx, e.Channel)
	case *event.ChannelDelete:
		err = c.removeChannel(ctx, e.Channel)
	case *event.ChannelPinsUpdate:
		err = c.updateChannelPins(ctx, e)
	case *event.GuildCreate:
		err = c.createGuild(ctx, e.Guild)
	case *event.GuildUpdate:
		err = c.updateGuild(ctx, e)
	case *event.GuildDelete:
		err = c.deleteGuild(ctx, e)
	case *event.GuildEmojisUpdate:
		err = c.updateGuildEmojis(ctx, e)
	case *event.MemberAdd:
		err = c.addMember(ctx, e.Member)
	case *event.MemberRemove:
		err = c.removeMember(ctx, e)
	case *event.MemberUpdate:
		err = c.updateMember(ctx, e)
	case *event.MemberChunk:
		err = c.chunkMembers(ctx, e)
	case *event.MessageCreate:
		err = c.createMessage(ctx, e.Message)
	case *event.MessageDelete:
		err = c.deleteMessage(ctx, e)
	case *event.Ready:
		err = c.ready(ctx, e)
	case *event.BanAdd, *event.BanRemove:
		// Bans leave no state in the cache.
	default:
		// Unmodeled events are a no-op, never a failure.
	}

	if err != nil {
		dlog.Error("Finished event projection", "kind", evt.Kind(), "trace", trace, "error", err)
		return err
	}

	dlog.Debug("Finished event projection", "kind", evt.Kind(), "trace", trace)
	return nil
}

func (c *Cache) ready(ctx context.Context, e *event.Ready) error {
	return c.CurrentUser.Upsert(ctx, entity.NewCurrentUser(e.User))
}
