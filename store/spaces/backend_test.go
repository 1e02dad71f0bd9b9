package spaces

import (
	"context"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/entity"
)

// The backend tests talk to a live bucket and only run when the
// SPACES_* variables are set.
func testBackend(t *testing.T) *Backend {
	t.Helper()
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Skip("SPACES_KEY not set")
	}
	backend, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return backend
}

func TestGuildRoundTrip(t *testing.T) {
	backend := testBackend(t)
	ctx := context.Background()
	guilds := backend.Guilds()
	id := snowflake.ID(910001)
	t.Cleanup(func() {
		_ = guilds.Remove(context.Background(), id)
	})

	if err := guilds.Upsert(ctx, entity.Guild{ID: id, Name: "round trip", OwnerID: snowflake.ID(42)}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := guilds.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("guild not found after upsert")
	}
	if got.Name != "round trip" {
		t.Fatalf("got %+v", got)
	}

	if err := guilds.Remove(ctx, id); err != nil {
		t.Fatal(err)
	}
	_, ok, err = guilds.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("guild still present after remove")
	}
}

func TestMemberMarkers(t *testing.T) {
	backend := testBackend(t)
	ctx := context.Background()
	members := backend.Members()
	key := entity.MemberKey{GuildID: snowflake.ID(910002), UserID: snowflake.ID(5)}
	t.Cleanup(func() {
		_ = members.Remove(context.Background(), key)
	})

	if err := members.Upsert(ctx, entity.Member{GuildID: key.GuildID, UserID: key.UserID}); err != nil {
		t.Fatal(err)
	}

	var memberIDs []snowflake.ID
	for id, err := range backend.Guilds().MemberIDs(ctx, key.GuildID) {
		if err != nil {
			t.Fatal(err)
		}
		memberIDs = append(memberIDs, id)
	}
	if len(memberIDs) != 1 || memberIDs[0] != key.UserID {
		t.Fatalf("got member ids %v", memberIDs)
	}

	var guildIDs []snowflake.ID
	for id, err := range backend.Users().GuildIDs(ctx, key.UserID) {
		if err != nil {
			t.Fatal(err)
		}
		guildIDs = append(guildIDs, id)
	}
	if len(guildIDs) != 1 || guildIDs[0] != key.GuildID {
		t.Fatalf("got guild ids %v", guildIDs)
	}

	if err := members.Remove(ctx, key); err != nil {
		t.Fatal(err)
	}
	for id, err := range backend.Users().GuildIDs(ctx, key.UserID) {
		if err != nil {
			t.Fatal(err)
		}
		t.Fatalf("marker survived removal: %s", id)
	}
}

func TestChannelMarkers(t *testing.T) {
	backend := testBackend(t)
	ctx := context.Background()
	guildID := snowflake.ID(910003)
	channel := entity.TextChannel{ID: snowflake.ID(31), GuildID: guildID, Name: "general"}
	t.Cleanup(func() {
		_ = backend.TextChannels().Remove(context.Background(), channel.ID)
	})

	if err := backend.TextChannels().Upsert(ctx, channel); err != nil {
		t.Fatal(err)
	}

	var refs []entity.GuildChannel
	for ref, err := range backend.Guilds().Channels(ctx, guildID) {
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, ref)
	}
	if len(refs) != 1 || refs[0].ID != channel.ID || refs[0].Kind != entity.ChannelText {
		t.Fatalf("got %+v", refs)
	}

	if err := backend.TextChannels().Remove(ctx, channel.ID); err != nil {
		t.Fatal(err)
	}
	for ref, err := range backend.Guilds().Channels(ctx, guildID) {
		if err != nil {
			t.Fatal(err)
		}
		t.Fatalf("marker survived removal: %+v", ref)
	}
}

func TestAttachmentMarkers(t *testing.T) {
	backend := testBackend(t)
	ctx := context.Background()
	attachments := backend.Attachments()
	a := entity.Attachment{ID: snowflake.ID(7), MessageID: snowflake.ID(910004), Filename: "photo.png"}
	t.Cleanup(func() {
		_ = attachments.Remove(context.Background(), a.ID)
	})

	if err := attachments.Upsert(ctx, a); err != nil {
		t.Fatal(err)
	}

	var got []entity.Attachment
	for stored, err := range backend.Messages().Attachments(ctx, a.MessageID) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, stored)
	}
	if len(got) != 1 || got[0].Filename != "photo.png" {
		t.Fatalf("got %+v", got)
	}
}

func TestCurrentUserSingleton(t *testing.T) {
	backend := testBackend(t)
	ctx := context.Background()
	current := backend.CurrentUser()
	first := entity.CurrentUser{ID: snowflake.ID(910005), Username: "first"}
	second := entity.CurrentUser{ID: snowflake.ID(910006), Username: "second"}
	t.Cleanup(func() {
		_ = current.Remove(context.Background(), first.ID)
		_ = current.Remove(context.Background(), second.ID)
	})

	if err := current.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := current.Upsert(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, ok, err := current.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("no current user stored")
	}
	if got.ID != second.ID {
		t.Fatalf("got %s, want %s", got.ID, second.ID)
	}

	_, ok, err = current.Get(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("previous current user still stored")
	}
}
