package memory

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-cache/entity"
)

func collect[V any](t *testing.T, s iter.Seq2[V, error]) []V {
	t.Helper()
	var out []V
	for v, err := range s {
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestUpsertGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := New()

	t.Run("guild", func(t *testing.T) {
		guilds := b.Guilds()
		stored := entity.Guild{ID: snowflake.ID(100), Name: "guild", OwnerID: snowflake.ID(1)}
		require.NoError(t, guilds.Upsert(ctx, stored))

		got, ok, err := guilds.Get(ctx, snowflake.ID(100))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, stored, got)
	})

	t.Run("member composite key", func(t *testing.T) {
		members := b.Members()
		stored := entity.Member{
			GuildID:  snowflake.ID(100),
			UserID:   snowflake.ID(1),
			JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, members.Upsert(ctx, stored))

		got, ok, err := members.Get(ctx, entity.MemberKey{GuildID: 100, UserID: 1})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, stored, got)

		_, ok, err = members.Get(ctx, entity.MemberKey{GuildID: 100, UserID: 2})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("replace on same key", func(t *testing.T) {
		users := b.Users()
		require.NoError(t, users.Upsert(ctx, entity.User{ID: snowflake.ID(1), Username: "old"}))
		require.NoError(t, users.Upsert(ctx, entity.User{ID: snowflake.ID(1), Username: "new"}))

		got, ok, err := users.Get(ctx, snowflake.ID(1))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "new", got.Username)
	})
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	b := New()
	roles := b.Roles()

	require.NoError(t, roles.Upsert(ctx, entity.Role{ID: snowflake.ID(5), GuildID: snowflake.ID(100)}))
	require.NoError(t, roles.Remove(ctx, snowflake.ID(5)))

	_, ok, err := roles.Get(ctx, snowflake.ID(5))
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is not an error.
	require.NoError(t, roles.Remove(ctx, snowflake.ID(5)))
}

func TestUpsertBulk(t *testing.T) {
	ctx := context.Background()
	b := New()
	users := b.Users()

	require.NoError(t, users.UpsertBulk(ctx, []entity.User{
		{ID: snowflake.ID(1), Username: "one"},
		{ID: snowflake.ID(2), Username: "two"},
		{ID: snowflake.ID(3), Username: "three"},
	}))

	for id, name := range map[snowflake.ID]string{1: "one", 2: "two", 3: "three"} {
		got, ok, err := users.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, name, got.Username)
	}
}

func TestGuildChannelListing(t *testing.T) {
	ctx := context.Background()
	b := New()
	guildID := snowflake.ID(100)

	require.NoError(t, b.CategoryChannels().Upsert(ctx, entity.CategoryChannel{ID: snowflake.ID(10), GuildID: guildID}))
	require.NoError(t, b.TextChannels().Upsert(ctx, entity.TextChannel{ID: snowflake.ID(11), GuildID: guildID}))
	require.NoError(t, b.VoiceChannels().Upsert(ctx, entity.VoiceChannel{ID: snowflake.ID(12), GuildID: guildID}))
	require.NoError(t, b.StageChannels().Upsert(ctx, entity.VoiceChannel{ID: snowflake.ID(13), GuildID: guildID}))
	// Another guild's channel must not leak into the listing.
	require.NoError(t, b.TextChannels().Upsert(ctx, entity.TextChannel{ID: snowflake.ID(14), GuildID: snowflake.ID(200)}))

	refs := collect(t, b.Guilds().Channels(ctx, guildID))
	require.Len(t, refs, 4)

	kinds := make(map[snowflake.ID]entity.ChannelKind, len(refs))
	for _, ref := range refs {
		kinds[ref.ID] = ref.Kind
	}
	assert.Equal(t, map[snowflake.ID]entity.ChannelKind{
		10: entity.ChannelCategory,
		11: entity.ChannelText,
		12: entity.ChannelVoice,
		13: entity.ChannelStage,
	}, kinds)
}

func TestGuildChildListings(t *testing.T) {
	ctx := context.Background()
	b := New()
	guildID := snowflake.ID(100)

	require.NoError(t, b.Emojis().Upsert(ctx, entity.Emoji{ID: snowflake.ID(40), GuildID: guildID}))
	require.NoError(t, b.Members().Upsert(ctx, entity.Member{GuildID: guildID, UserID: snowflake.ID(1)}))
	require.NoError(t, b.Presences().Upsert(ctx, entity.Presence{GuildID: guildID, UserID: snowflake.ID(1)}))
	require.NoError(t, b.Roles().Upsert(ctx, entity.Role{ID: snowflake.ID(5), GuildID: guildID}))
	require.NoError(t, b.VoiceStates().Upsert(ctx, entity.VoiceState{GuildID: guildID, UserID: snowflake.ID(1)}))

	guilds := b.Guilds()
	assert.Equal(t, []snowflake.ID{40}, collect(t, guilds.EmojiIDs(ctx, guildID)))
	assert.Equal(t, []snowflake.ID{1}, collect(t, guilds.MemberIDs(ctx, guildID)))
	assert.Equal(t, []snowflake.ID{1}, collect(t, guilds.PresenceIDs(ctx, guildID)))
	assert.Equal(t, []snowflake.ID{5}, collect(t, guilds.RoleIDs(ctx, guildID)))
	assert.Equal(t, []snowflake.ID{1}, collect(t, guilds.VoiceStateIDs(ctx, guildID)))

	// A guild with no children lists nothing.
	assert.Empty(t, collect(t, guilds.MemberIDs(ctx, snowflake.ID(999))))
}

func TestMessageAttachmentListing(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.Attachments().UpsertBulk(ctx, []entity.Attachment{
		{ID: snowflake.ID(50), MessageID: snowflake.ID(900), Filename: "a.png"},
		{ID: snowflake.ID(51), MessageID: snowflake.ID(900), Filename: "b.png"},
		{ID: snowflake.ID(52), MessageID: snowflake.ID(901), Filename: "c.png"},
	}))

	atts := collect(t, b.Messages().Attachments(ctx, snowflake.ID(900)))
	require.Len(t, atts, 2)
	for _, att := range atts {
		assert.Equal(t, snowflake.ID(900), att.MessageID)
	}
}

func TestUserGuildIDs(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.Members().UpsertBulk(ctx, []entity.Member{
		{GuildID: snowflake.ID(100), UserID: snowflake.ID(1)},
		{GuildID: snowflake.ID(200), UserID: snowflake.ID(1)},
		{GuildID: snowflake.ID(200), UserID: snowflake.ID(2)},
	}))

	ids := collect(t, b.Users().GuildIDs(ctx, snowflake.ID(1)))
	assert.ElementsMatch(t, []snowflake.ID{100, 200}, ids)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	b := New()
	repo := b.CurrentUser()

	_, ok, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Upsert(ctx, entity.CurrentUser{ID: snowflake.ID(42), Username: "bot"}))

	got, ok, err := repo.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bot", got.Username)

	got, ok, err = repo.Get(ctx, snowflake.ID(42))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bot", got.Username)

	// Get only answers for the stored id.
	_, ok, err = repo.Get(ctx, snowflake.ID(43))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Remove(ctx, snowflake.ID(42)))
	_, ok, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListingStopsEarly(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.Members().UpsertBulk(ctx, []entity.Member{
		{GuildID: snowflake.ID(100), UserID: snowflake.ID(1)},
		{GuildID: snowflake.ID(100), UserID: snowflake.ID(2)},
		{GuildID: snowflake.ID(100), UserID: snowflake.ID(3)},
	}))

	// Breaking out of the sequence must not deadlock later calls.
	for range b.Guilds().MemberIDs(ctx, snowflake.ID(100)) {
		break
	}

	ids := collect(t, b.Guilds().MemberIDs(ctx, snowflake.ID(100)))
	assert.Len(t, ids, 3)
}
