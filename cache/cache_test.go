package cache_test

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
	"github.com/fuad-daoud/discord-cache/store/memory"
)

func newCache() *cache.Cache {
	return cache.New(memory.New())
}

func collect[V any](t *testing.T, s iter.Seq2[V, error]) []V {
	t.Helper()
	var out []V
	for v, err := range s {
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func wireMember(guildID, userID snowflake.ID, name string) event.Member {
	return event.Member{
		GuildID:  guildID,
		User:     event.User{ID: userID, Username: name},
		JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// guildSnapshot builds a snapshot whose children omit their guild id,
// the way gateway payloads do.
func guildSnapshot(id snowflake.ID) event.Guild {
	return event.Guild{
		ID:      id,
		Name:    "snapshot guild",
		OwnerID: snowflake.ID(1),
		Channels: []event.Channel{
			event.TextChannel{ID: snowflake.ID(11), Name: "general"},
			event.VoiceChannel{ID: snowflake.ID(12), Name: "voice"},
		},
		Emojis: []event.Emoji{{ID: snowflake.ID(40), Name: "blob"}},
		Members: []event.Member{
			wireMember(0, 1, "one"),
			wireMember(0, 2, "two"),
			wireMember(0, 3, "three"),
		},
		Presences:   []event.Presence{{UserID: snowflake.ID(1), Status: "online"}},
		Roles:       []event.Role{{ID: snowflake.ID(5), Name: "admin"}},
		VoiceStates: []event.VoiceState{{UserID: snowflake.ID(2), SessionID: "s2"}},
	}
}

func TestProcessGuildCreateSnapshot(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.GuildCreate{Guild: guildSnapshot(100)}))

	guild, ok, err := c.Guilds.Get(ctx, snowflake.ID(100))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "snapshot guild", guild.Name)

	assert.Len(t, collect(t, c.Guilds.Channels(ctx, snowflake.ID(100))), 2)
	assert.Len(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(100))), 3)
	assert.Len(t, collect(t, c.Guilds.RoleIDs(ctx, snowflake.ID(100))), 1)
	assert.Len(t, collect(t, c.Guilds.EmojiIDs(ctx, snowflake.ID(100))), 1)
	assert.Len(t, collect(t, c.Guilds.PresenceIDs(ctx, snowflake.ID(100))), 1)
	assert.Len(t, collect(t, c.Guilds.VoiceStateIDs(ctx, snowflake.ID(100))), 1)

	// Channel guild ids are filled in from the snapshot.
	text, ok, err := c.TextChannels.Get(ctx, snowflake.ID(11))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(100), text.GuildID)

	// Member users land in the user repository.
	user, ok, err := c.Users.Get(ctx, snowflake.ID(2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", user.Username)
}

func TestProcessChannelCreateGroup(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	group := event.Group{
		ID:      snowflake.ID(10),
		OwnerID: snowflake.ID(1),
		Recipients: []event.User{
			{ID: snowflake.ID(1), Username: "one"},
			{ID: snowflake.ID(2), Username: "two"},
		},
	}
	require.NoError(t, c.Process(ctx, &event.ChannelCreate{Channel: group}))

	stored, ok, err := c.Groups.Get(ctx, snowflake.ID(10))
	require.NoError(t, err)
	require.True(t, ok)
	assert.ElementsMatch(t, []snowflake.ID{1, 2}, stored.RecipientIDs)

	for _, id := range []snowflake.ID{1, 2} {
		_, ok, err := c.Users.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestProcessChannelUpdateReplaces(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.ChannelCreate{
		Channel: event.TextChannel{ID: snowflake.ID(11), GuildID: snowflake.ID(100), Name: "old"},
	}))
	require.NoError(t, c.Process(ctx, &event.ChannelUpdate{
		Channel: event.TextChannel{ID: snowflake.ID(11), GuildID: snowflake.ID(100), Name: "new"},
	}))

	stored, ok, err := c.TextChannels.Get(ctx, snowflake.ID(11))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", stored.Name)
}

func TestProcessChannelDelete(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	ch := event.VoiceChannel{ID: snowflake.ID(12), GuildID: snowflake.ID(100), Name: "voice"}
	require.NoError(t, c.Process(ctx, &event.ChannelCreate{Channel: ch}))
	require.NoError(t, c.Process(ctx, &event.ChannelDelete{Channel: ch}))

	_, ok, err := c.VoiceChannels.Get(ctx, snowflake.ID(12))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcessChannelPinsUpdate(t *testing.T) {
	ctx := context.Background()
	pinned := time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)

	t.Run("merges into text channel", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.TextChannels.Upsert(ctx, entity.TextChannel{
			ID: snowflake.ID(11), GuildID: snowflake.ID(100), Name: "general",
		}))

		require.NoError(t, c.Process(ctx, &event.ChannelPinsUpdate{
			ChannelID:        snowflake.ID(11),
			LastPinTimestamp: &pinned,
		}))

		stored, ok, err := c.TextChannels.Get(ctx, snowflake.ID(11))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, &pinned, stored.LastPinTimestamp)
		assert.Equal(t, "general", stored.Name)
	})

	t.Run("group takes priority over text", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Groups.Upsert(ctx, entity.Group{ID: snowflake.ID(77)}))
		require.NoError(t, c.TextChannels.Upsert(ctx, entity.TextChannel{ID: snowflake.ID(77)}))

		require.NoError(t, c.Process(ctx, &event.ChannelPinsUpdate{
			ChannelID:        snowflake.ID(77),
			LastPinTimestamp: &pinned,
		}))

		group, _, err := c.Groups.Get(ctx, snowflake.ID(77))
		require.NoError(t, err)
		assert.Equal(t, &pinned, group.LastPinTimestamp)

		text, _, err := c.TextChannels.Get(ctx, snowflake.ID(77))
		require.NoError(t, err)
		assert.Nil(t, text.LastPinTimestamp)
	})

	t.Run("absent channel is a no-op", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.ChannelPinsUpdate{
			ChannelID:        snowflake.ID(404),
			LastPinTimestamp: &pinned,
		}))

		_, ok, err := c.TextChannels.Get(ctx, snowflake.ID(404))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProcessGuildUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges stored guild", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.GuildCreate{Guild: guildSnapshot(100)}))

		require.NoError(t, c.Process(ctx, &event.GuildUpdate{
			ID:      snowflake.ID(100),
			Name:    "renamed",
			OwnerID: snowflake.ID(9),
		}))

		stored, ok, err := c.Guilds.Get(ctx, snowflake.ID(100))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "renamed", stored.Name)
		assert.Equal(t, snowflake.ID(9), stored.OwnerID)
	})

	t.Run("absent guild is a no-op", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.GuildUpdate{ID: snowflake.ID(404), Name: "ghost"}))

		_, ok, err := c.Guilds.Get(ctx, snowflake.ID(404))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProcessGuildDeleteUnavailable(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.GuildCreate{Guild: guildSnapshot(100)}))
	require.NoError(t, c.Process(ctx, &event.GuildDelete{ID: snowflake.ID(100), Unavailable: true}))

	stored, ok, err := c.Guilds.Get(ctx, snowflake.ID(100))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stored.Unavailable)

	// An outage never cascades.
	assert.Len(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(100))), 3)
	assert.Len(t, collect(t, c.Guilds.Channels(ctx, snowflake.ID(100))), 2)
}

func TestProcessGuildDeleteCascade(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.GuildCreate{Guild: guildSnapshot(100)}))
	require.NoError(t, c.Process(ctx, &event.GuildDelete{ID: snowflake.ID(100), Unavailable: false}))

	_, ok, err := c.Guilds.Get(ctx, snowflake.ID(100))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, collect(t, c.Guilds.Channels(ctx, snowflake.ID(100))))
	assert.Empty(t, collect(t, c.Guilds.EmojiIDs(ctx, snowflake.ID(100))))
	assert.Empty(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(100))))
	assert.Empty(t, collect(t, c.Guilds.PresenceIDs(ctx, snowflake.ID(100))))
	assert.Empty(t, collect(t, c.Guilds.RoleIDs(ctx, snowflake.ID(100))))
	assert.Empty(t, collect(t, c.Guilds.VoiceStateIDs(ctx, snowflake.ID(100))))

	// Users are global and survive the cascade.
	_, ok, err = c.Users.Get(ctx, snowflake.ID(1))
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingRoleRepository struct {
	cache.RoleRepository
	err error
}

func (f failingRoleRepository) Remove(ctx context.Context, id snowflake.ID) error {
	return f.err
}

type failingRolesBackend struct {
	cache.Backend
	err error
}

func (b failingRolesBackend) Roles() cache.RoleRepository {
	return failingRoleRepository{RoleRepository: b.Backend.Roles(), err: b.err}
}

func TestProcessGuildDeleteCascadePartialFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("role removal failed")
	c := cache.New(failingRolesBackend{Backend: memory.New(), err: boom})

	require.NoError(t, c.Process(ctx, &event.GuildCreate{Guild: guildSnapshot(100)}))

	err := c.Process(ctx, &event.GuildDelete{ID: snowflake.ID(100), Unavailable: false})
	assert.ErrorIs(t, err, boom)

	// The guild record must survive a failed cascade; children that
	// were already removed stay removed.
	_, ok, getErr := c.Guilds.Get(ctx, snowflake.ID(100))
	require.NoError(t, getErr)
	assert.True(t, ok)
}

func TestProcessGuildEmojisUpdate(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.GuildEmojisUpdate{
		GuildID: snowflake.ID(100),
		Emojis: []event.Emoji{
			{ID: snowflake.ID(40), Name: "blob"},
			{ID: snowflake.ID(41), Name: "wave"},
		},
	}))

	stored, ok, err := c.Emojis.Get(ctx, entity.EmojiKey{GuildID: 100, EmojiID: 41})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "wave", stored.Name)
	assert.Len(t, collect(t, c.Guilds.EmojiIDs(ctx, snowflake.ID(100))), 2)
}

func TestProcessMemberAdd(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.MemberAdd{Member: wireMember(100, 1, "one")}))

	member, ok, err := c.Members.Get(ctx, entity.MemberKey{GuildID: 100, UserID: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(1), member.UserID)

	user, ok, err := c.Users.Get(ctx, snowflake.ID(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", user.Username)
}

func TestProcessMemberRemoveKeepsUser(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.MemberAdd{Member: wireMember(100, 1, "one")}))
	require.NoError(t, c.Process(ctx, &event.MemberRemove{
		GuildID: snowflake.ID(100),
		User:    event.User{ID: snowflake.ID(1), Username: "one"},
	}))

	_, ok, err := c.Members.Get(ctx, entity.MemberKey{GuildID: 100, UserID: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Users.Get(ctx, snowflake.ID(1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProcessMemberUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges stored member and refreshes user", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.MemberAdd{Member: wireMember(100, 1, "one")}))

		nick := "nickname"
		require.NoError(t, c.Process(ctx, &event.MemberUpdate{
			GuildID: snowflake.ID(100),
			User:    event.User{ID: snowflake.ID(1), Username: "renamed"},
			Nick:    &nick,
			RoleIDs: []snowflake.ID{5},
		}))

		member, ok, err := c.Members.Get(ctx, entity.MemberKey{GuildID: 100, UserID: 1})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, &nick, member.Nick)
		assert.Equal(t, []snowflake.ID{5}, member.RoleIDs)

		user, _, err := c.Users.Get(ctx, snowflake.ID(1))
		require.NoError(t, err)
		assert.Equal(t, "renamed", user.Username)
	})

	t.Run("absent member is a no-op", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.MemberUpdate{
			GuildID: snowflake.ID(100),
			User:    event.User{ID: snowflake.ID(1), Username: "ghost"},
		}))

		// The user refresh is skipped too when the member is absent.
		_, ok, err := c.Users.Get(ctx, snowflake.ID(1))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProcessMemberChunk(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.MemberChunk{
		GuildID:    snowflake.ID(100),
		ChunkIndex: 0,
		ChunkCount: 1,
		Members: []event.Member{
			wireMember(0, 1, "one"),
			wireMember(0, 2, "two"),
		},
		Presences: []event.Presence{{UserID: snowflake.ID(1), Status: "idle"}},
	}))

	assert.Len(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(100))), 2)
	assert.Len(t, collect(t, c.Guilds.PresenceIDs(ctx, snowflake.ID(100))), 1)

	user, ok, err := c.Users.Get(ctx, snowflake.ID(2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", user.Username)
}

func TestProcessMessageCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges last message id into holder", func(t *testing.T) {
		c := newCache()
		topic := "news"
		require.NoError(t, c.TextChannels.Upsert(ctx, entity.TextChannel{
			ID:      snowflake.ID(11),
			GuildID: snowflake.ID(100),
			Name:    "general",
			Topic:   &topic,
		}))

		require.NoError(t, c.Process(ctx, &event.MessageCreate{Message: event.Message{
			ID:        snowflake.ID(900),
			ChannelID: snowflake.ID(11),
			Author:    event.User{ID: snowflake.ID(1)},
			Content:   "hello",
			Attachments: []event.Attachment{
				{ID: snowflake.ID(50), Filename: "pic.png"},
			},
		}}))

		ch, ok, err := c.TextChannels.Get(ctx, snowflake.ID(11))
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, ch.LastMessageID)
		assert.Equal(t, snowflake.ID(900), *ch.LastMessageID)
		assert.Equal(t, "general", ch.Name)
		assert.Equal(t, &topic, ch.Topic)

		msg, ok, err := c.Messages.Get(ctx, snowflake.ID(900))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, snowflake.ID(1), msg.AuthorID)

		atts := collect(t, c.Messages.Attachments(ctx, snowflake.ID(900)))
		require.Len(t, atts, 1)
		assert.Equal(t, "pic.png", atts[0].Filename)
	})

	t.Run("unknown channel still stores the message", func(t *testing.T) {
		c := newCache()
		require.NoError(t, c.Process(ctx, &event.MessageCreate{Message: event.Message{
			ID:        snowflake.ID(901),
			ChannelID: snowflake.ID(404),
			Author:    event.User{ID: snowflake.ID(1)},
		}}))

		_, ok, err := c.Messages.Get(ctx, snowflake.ID(901))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestProcessMessageDelete(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.MessageCreate{Message: event.Message{
		ID:        snowflake.ID(900),
		ChannelID: snowflake.ID(11),
		Author:    event.User{ID: snowflake.ID(1)},
		Attachments: []event.Attachment{
			{ID: snowflake.ID(50), Filename: "a.png"},
			{ID: snowflake.ID(51), Filename: "b.png"},
		},
	}}))

	require.NoError(t, c.Process(ctx, &event.MessageDelete{
		ID:        snowflake.ID(900),
		ChannelID: snowflake.ID(11),
	}))

	_, ok, err := c.Messages.Get(ctx, snowflake.ID(900))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, collect(t, c.Messages.Attachments(ctx, snowflake.ID(900))))
	for _, id := range []snowflake.ID{50, 51} {
		_, ok, err := c.Attachments.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestProcessReadyStoresCurrentUser(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.Ready{
		Version:   9,
		User:      event.User{ID: snowflake.ID(42), Username: "bot"},
		SessionID: "abc",
	}))

	current, ok, err := c.CurrentUser.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(42), current.ID)
	assert.Equal(t, "bot", current.Username)
}

func TestProcessBansAreNoOps(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	require.NoError(t, c.Process(ctx, &event.BanAdd{
		GuildID: snowflake.ID(100),
		User:    event.User{ID: snowflake.ID(1), Username: "one"},
	}))
	require.NoError(t, c.Process(ctx, &event.BanRemove{
		GuildID: snowflake.ID(100),
		User:    event.User{ID: snowflake.ID(1), Username: "one"},
	}))

	// Nothing is stored for bans, not even the user.
	_, ok, err := c.Users.Get(ctx, snowflake.ID(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcessConcurrentEventsDisjoint(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	snapshots := []event.Guild{guildSnapshot(100), func() event.Guild {
		g := guildSnapshot(200)
		g.Channels = []event.Channel{
			event.TextChannel{ID: snowflake.ID(21), Name: "other"},
		}
		g.Members = []event.Member{wireMember(0, 7, "seven")}
		g.Roles = nil
		g.Emojis = nil
		g.Presences = nil
		g.VoiceStates = nil
		return g
	}()}

	var wg sync.WaitGroup
	errs := make([]error, len(snapshots))
	for i, snap := range snapshots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.Process(ctx, &event.GuildCreate{Guild: snap})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(100))), 3)
	assert.Len(t, collect(t, c.Guilds.MemberIDs(ctx, snowflake.ID(200))), 1)
	assert.Len(t, collect(t, c.Guilds.Channels(ctx, snowflake.ID(100))), 2)
	assert.Len(t, collect(t, c.Guilds.Channels(ctx, snowflake.ID(200))), 1)
}
