package cache

import (
	"context"

	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
)

// upsertChannel stores a created or updated channel under its kind's
// repository. DM-style channels also refresh their recipient users,
// concurrently with the channel write.
func (c *Cache) upsertChannel(ctx context.Context, ch event.Channel) error {
	switch ch := ch.(type) {
	case event.Group:
		users := recipientUsers(ch.Recipients)
		group := entity.NewGroup(ch)
		return runAll(ctx,
			func(ctx context.Context) error { return c.Users.UpsertBulk(ctx, users) },
			func(ctx context.Context) error { return c.Groups.Upsert(ctx, group) },
		)
	case event.PrivateChannel:
		users := recipientUsers(ch.Recipients)
		private := entity.NewPrivateChannel(ch)
		return runAll(ctx,
			func(ctx context.Context) error { return c.Users.UpsertBulk(ctx, users) },
			func(ctx context.Context) error { return c.PrivateChannels.Upsert(ctx, private) },
		)
	case event.CategoryChannel:
		return c.CategoryChannels.Upsert(ctx, entity.NewCategoryChannel(ch))
	case event.TextChannel:
		return c.TextChannels.Upsert(ctx, entity.NewTextChannel(ch))
	case event.VoiceChannel:
		return c.VoiceChannels.Upsert(ctx, entity.NewVoiceChannel(ch))
	case event.StageChannel:
		return c.StageChannels.Upsert(ctx, entity.NewStageChannel(ch))
	}
	return nil
}

func (c *Cache) removeChannel(ctx context.Context, ch event.Channel) error {
	switch ch := ch.(type) {
	case event.Group:
		return c.Groups.Remove(ctx, ch.ID)
	case event.PrivateChannel:
		return c.PrivateChannels.Remove(ctx, ch.ID)
	case event.CategoryChannel:
		return c.CategoryChannels.Remove(ctx, ch.ID)
	case event.TextChannel:
		return c.TextChannels.Remove(ctx, ch.ID)
	case event.VoiceChannel:
		return c.VoiceChannels.Remove(ctx, ch.ID)
	case event.StageChannel:
		return c.StageChannels.Remove(ctx, ch.ID)
	}
	return nil
}

// updateChannelPins merges the new pin timestamp into whichever
// pin-holding kind owns the channel id, trying groups, then text
// channels, then private channels, stopping at the first match. No
// match is a no-op.
func (c *Cache) updateChannelPins(ctx context.Context, e *event.ChannelPinsUpdate) error {
	group, ok, err := c.Groups.Get(ctx, e.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		return c.Groups.Upsert(ctx, group.WithLastPinTimestamp(e.LastPinTimestamp))
	}

	text, ok, err := c.TextChannels.Get(ctx, e.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		return c.TextChannels.Upsert(ctx, text.WithLastPinTimestamp(e.LastPinTimestamp))
	}

	private, ok, err := c.PrivateChannels.Get(ctx, e.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		return c.PrivateChannels.Upsert(ctx, private.WithLastPinTimestamp(e.LastPinTimestamp))
	}

	return nil
}

func recipientUsers(recipients []event.User) []entity.User {
	users := make([]entity.User, len(recipients))
	for i, r := range recipients {
		users[i] = entity.NewUser(r)
	}
	return users
}
