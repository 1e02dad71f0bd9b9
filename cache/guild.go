package cache

import (
	"context"

	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
)

// createGuild projects a full snapshot: every child channel and the
// bulk collections in one unordered fan-out, then the guild record
// itself after the join, so a stored guild implies stored children.
// Snapshot children may omit their guild id; it is filled in here.
func (c *Cache) createGuild(ctx context.Context, g event.Guild) error {
	var ops []func(context.Context) error

	for _, ch := range g.Channels {
		switch ch := ch.(type) {
		case event.CategoryChannel:
			if ch.GuildID == 0 {
				ch.GuildID = g.ID
			}
			ent := entity.NewCategoryChannel(ch)
			ops = append(ops, func(ctx context.Context) error { return c.CategoryChannels.Upsert(ctx, ent) })
		case event.TextChannel:
			if ch.GuildID == 0 {
				ch.GuildID = g.ID
			}
			ent := entity.NewTextChannel(ch)
			ops = append(ops, func(ctx context.Context) error { return c.TextChannels.Upsert(ctx, ent) })
		case event.VoiceChannel:
			if ch.GuildID == 0 {
				ch.GuildID = g.ID
			}
			ent := entity.NewVoiceChannel(ch)
			ops = append(ops, func(ctx context.Context) error { return c.VoiceChannels.Upsert(ctx, ent) })
		case event.StageChannel:
			if ch.GuildID == 0 {
				ch.GuildID = g.ID
			}
			ent := entity.NewStageChannel(ch)
			ops = append(ops, func(ctx context.Context) error { return c.StageChannels.Upsert(ctx, ent) })
		default:
			// DM-style channels never appear in guild snapshots.
		}
	}

	emojis := make([]entity.Emoji, len(g.Emojis))
	for i, e := range g.Emojis {
		emojis[i] = entity.NewEmoji(g.ID, e)
	}

	members := make([]entity.Member, len(g.Members))
	users := make([]entity.User, len(g.Members))
	for i, m := range g.Members {
		if m.GuildID == 0 {
			m.GuildID = g.ID
		}
		members[i] = entity.NewMember(m)
		users[i] = entity.NewUser(m.User)
	}

	presences := make([]entity.Presence, len(g.Presences))
	for i, p := range g.Presences {
		if p.GuildID == 0 {
			p.GuildID = g.ID
		}
		presences[i] = entity.NewPresence(p)
	}

	roles := make([]entity.Role, len(g.Roles))
	for i, r := range g.Roles {
		roles[i] = entity.NewRole(r, g.ID)
	}

	states := make([]entity.VoiceState, len(g.VoiceStates))
	for i, v := range g.VoiceStates {
		states[i] = entity.NewVoiceState(v, g.ID)
	}

	ops = append(ops,
		func(ctx context.Context) error { return c.Emojis.UpsertBulk(ctx, emojis) },
		func(ctx context.Context) error { return c.Members.UpsertBulk(ctx, members) },
		func(ctx context.Context) error { return c.Users.UpsertBulk(ctx, users) },
		func(ctx context.Context) error { return c.Presences.UpsertBulk(ctx, presences) },
		func(ctx context.Context) error { return c.Roles.UpsertBulk(ctx, roles) },
		func(ctx context.Context) error { return c.VoiceStates.UpsertBulk(ctx, states) },
	)

	if err := runAll(ctx, ops...); err != nil {
		return err
	}
	return c.Guilds.Upsert(ctx, entity.NewGuild(g))
}

// updateGuild merges refreshed metadata into the stored guild. An
// absent guild is a no-op.
func (c *Cache) updateGuild(ctx context.Context, e *event.GuildUpdate) error {
	guild, ok, err := c.Guilds.Get(ctx, e.ID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return c.Guilds.Upsert(ctx, guild.Update(*e))
}

// deleteGuild flips the unavailable flag for outages. A structural
// removal cascades instead: every child listing is read, the removals
// fan out, and the guild record goes only after all of them succeed.
// Child removals that already ran stay applied if a later one fails.
func (c *Cache) deleteGuild(ctx context.Context, e *event.GuildDelete) error {
	if e.Unavailable {
		guild, ok, err := c.Guilds.Get(ctx, e.ID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return c.Guilds.Upsert(ctx, guild.WithUnavailable(true))
	}

	var ops []func(context.Context) error

	for ch, err := range c.Guilds.Channels(ctx, e.ID) {
		if err != nil {
			return err
		}
		switch ch.Kind {
		case entity.ChannelCategory:
			ops = append(ops, func(ctx context.Context) error { return c.CategoryChannels.Remove(ctx, ch.ID) })
		case entity.ChannelText:
			ops = append(ops, func(ctx context.Context) error { return c.TextChannels.Remove(ctx, ch.ID) })
		case entity.ChannelVoice:
			ops = append(ops, func(ctx context.Context) error { return c.VoiceChannels.Remove(ctx, ch.ID) })
		case entity.ChannelStage:
			ops = append(ops, func(ctx context.Context) error { return c.StageChannels.Remove(ctx, ch.ID) })
		}
	}

	for id, err := range c.Guilds.EmojiIDs(ctx, e.ID) {
		if err != nil {
			return err
		}
		key := entity.EmojiKey{GuildID: e.ID, EmojiID: id}
		ops = append(ops, func(ctx context.Context) error { return c.Emojis.Remove(ctx, key) })
	}

	for id, err := range c.Guilds.MemberIDs(ctx, e.ID) {
		if err != nil {
			return err
		}
		key := entity.MemberKey{GuildID: e.ID, UserID: id}
		ops = append(ops, func(ctx context.Context) error { return c.Members.Remove(ctx, key) })
	}

	for id, err := range c.Guilds.PresenceIDs(ctx, e.ID) {
		if err != nil {
			return err
		}
		key := entity.PresenceKey{GuildID: e.ID, UserID: id}
		ops = append(ops, func(ctx context.Context) error { return c.Presences.Remove(ctx, key) })
	}

	for id, err := range c.Guilds.RoleIDs(ctx, e.ID) {
		if err != nil {
			return err
		}
		ops = append(ops, func(ctx context.Context) error { return c.Roles.Remove(ctx, id) })
	}

	for id, err := range c.Guilds.VoiceStateIDs(ctx, e.ID) {
		if err != nil {
			return err
		}
		key := entity.VoiceStateKey{GuildID: e.ID, UserID: id}
		ops = append(ops, func(ctx context.Context) error { return c.VoiceStates.Remove(ctx, key) })
	}

	if err := runAll(ctx, ops...); err != nil {
		return err
	}
	return c.Guilds.Remove(ctx, e.ID)
}

func (c *Cache) updateGuildEmojis(ctx context.Context, e *event.GuildEmojisUpdate) error {
	emojis := make([]entity.Emoji, len(e.Emojis))
	for i, em := range e.Emojis {
		emojis[i] = entity.NewEmoji(e.GuildID, em)
	}
	return c.Emojis.UpsertBulk(ctx, emojis)
}
