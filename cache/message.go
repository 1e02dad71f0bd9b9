package cache

import (
	"context"

	"github.com/fuad-daoud/discord-cache/entity"
	"github.com/fuad-daoud/discord-cache/event"
)

// createMessage merges the holder channel's last message id, then fans
// out the attachment and message writes. All three holder kinds are
// checked; channel ids are unique across kinds, so at most one merge
// gets queued.
func (c *Cache) createMessage(ctx context.Context, m event.Message) error {
	var ops []func(context.Context) error

	group, ok, err := c.Groups.Get(ctx, m.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		merged := group.WithLastMessageID(m.ID)
		ops = append(ops, func(ctx context.Context) error { return c.Groups.Upsert(ctx, merged) })
	}

	text, ok, err := c.TextChannels.Get(ctx, m.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		merged := text.WithLastMessageID(m.ID)
		ops = append(ops, func(ctx context.Context) error { return c.TextChannels.Upsert(ctx, merged) })
	}

	private, ok, err := c.PrivateChannels.Get(ctx, m.ChannelID)
	if err != nil {
		return err
	}
	if ok {
		merged := private.WithLastMessageID(m.ID)
		ops = append(ops, func(ctx context.Context) error { return c.PrivateChannels.Upsert(ctx, merged) })
	}

	for _, a := range m.Attachments {
		att := entity.NewAttachment(m.ID, a)
		ops = append(ops, func(ctx context.Context) error { return c.Attachments.Upsert(ctx, att) })
	}

	msg := entity.NewMessage(m)
	ops = append(ops, func(ctx context.Context) error { return c.Messages.Upsert(ctx, msg) })

	return runAll(ctx, ops...)
}

// deleteMessage removes the stored attachments first, discovered via
// the message's attachment listing; the delete payload carries none.
// The message record goes only after every attachment removal
// succeeded.
func (c *Cache) deleteMessage(ctx context.Context, e *event.MessageDelete) error {
	var ops []func(context.Context) error

	for att, err := range c.Messages.Attachments(ctx, e.ID) {
		if err != nil {
			return err
		}
		ops = append(ops, func(ctx context.Context) error { return c.Attachments.Remove(ctx, att.ID) })
	}

	if err := runAll(ctx, ops...); err != nil {
		return err
	}
	return c.Messages.Remove(ctx, e.ID)
}
