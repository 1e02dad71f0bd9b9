package cache

import (
	"context"

	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
)

// addMember stores the joining user and the member record,
// concurrently; the two are independent writes.
func (c *Cache) addMember(ctx context.Context, m event.Member) error {
	user := entity.NewUser(m.User)
	member := entity.NewMember(m)
	return runAll(ctx,
		func(ctx context.Context) error { return c.Users.Upsert(ctx, user) },
		func(ctx context.Context) error { return c.Members.Upsert(ctx, member) },
	)
}

// removeMember drops the member record. The user record stays; users
// are global.
func (c *Cache) removeMember(ctx context.Context, e *event.MemberRemove) error {
	return c.Members.Remove(ctx, entity.MemberKey{GuildID: e.GuildID, UserID: e.User.ID})
}

// updateMember merges the changed member fields and refreshes the
// user, if the member is stored at all. An absent member is a no-op.
func (c *Cache) updateMember(ctx context.Context, e *event.MemberUpdate) error {
	member, ok, err := c.Members.Get(ctx, entity.MemberKey{GuildID: e.GuildID, UserID: e.User.ID})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	user := entity.NewUser(e.User)
	merged := member.Update(*e)
	return runAll(ctx,
		func(ctx context.Context) error { return c.Users.Upsert(ctx, user) },
		func(ctx context.Context) error { return c.Members.Upsert(ctx, merged) },
	)
}

// chunkMembers bulk-writes one page of a requested member list:
// members, their users and any presences, each through its
// repository's bulk entry point.
func (c *Cache) chunkMembers(ctx context.Context, e *event.MemberChunk) error {
	members := make([]entity.Member, len(e.Members))
	users := make([]entity.User, len(e.Members))
	for i, m := range e.Members {
		if m.GuildID == 0 {
			m.GuildID = e.GuildID
		}
		members[i] = entity.NewMember(m)
		users[i] = entity.NewUser(m.User)
	}

	presences := make([]entity.Presence, len(e.Presences))
	for i, p := range e.Presences {
		if p.GuildID == 0 {
			p.GuildID = e.GuildID
		}
		presences[i] = entity.NewPresence(p)
	}

	return runAll(ctx,
		func(ctx context.Context) error { return c.Members.UpsertBulk(ctx, members) },
		func(ctx context.Context) error { return c.Users.UpsertBulk(ctx, users) },
		func(ctx context.Context) error { return c.Presences.UpsertBulk(ctx, presences) },
	)
}
