package memory

import (
	"context"
	"iter"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/entity"
)

type guildRepository struct {
	*table[entity.Guild, snowflake.ID]
}

func (r *guildRepository) Channels(ctx context.Context, guildID snowflake.ID) iter.Seq2[entity.GuildChannel, error] {
	r.b.mu.RLock()
	var refs []entity.GuildChannel
	for id, ch := range r.b.categoryChannels {
		if ch.GuildID == guildID {
			refs = append(refs, entity.GuildChannel{ID: id, Kind: entity.ChannelCategory})
		}
	}
	for id, ch := range r.b.textChannels {
		if ch.GuildID == guildID {
			refs = append(refs, entity.GuildChannel{ID: id, Kind: entity.ChannelText})
		}
	}
	for id, ch := range r.b.voiceChannels {
		if ch.GuildID == guildID {
			refs = append(refs, entity.GuildChannel{ID: id, Kind: entity.ChannelVoice})
		}
	}
	for id, ch := range r.b.stageChannels {
		if ch.GuildID == guildID {
			refs = append(refs, entity.GuildChannel{ID: id, Kind: entity.ChannelStage})
		}
	}
	r.b.mu.RUnlock()

	return seq(refs)
}

func (r *guildRepository) EmojiIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for key := range r.b.emojis {
		if key.GuildID == guildID {
			ids = append(ids, key.EmojiID)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

func (r *guildRepository) MemberIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for key := range r.b.members {
		if key.GuildID == guildID {
			ids = append(ids, key.UserID)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

func (r *guildRepository) PresenceIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for key := range r.b.presences {
		if key.GuildID == guildID {
			ids = append(ids, key.UserID)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

func (r *guildRepository) RoleIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for id, role := range r.b.roles {
		if role.GuildID == guildID {
			ids = append(ids, id)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

func (r *guildRepository) VoiceStateIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for key := range r.b.voiceStates {
		if key.GuildID == guildID {
			ids = append(ids, key.UserID)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

type messageRepository struct {
	*table[entity.Message, snowflake.ID]
}

func (r *messageRepository) Attachments(ctx context.Context, messageID snowflake.ID) iter.Seq2[entity.Attachment, error] {
	r.b.mu.RLock()
	var atts []entity.Attachment
	for _, att := range r.b.attachments {
		if att.MessageID == messageID {
			atts = append(atts, att)
		}
	}
	r.b.mu.RUnlock()

	return seq(atts)
}

type userRepository struct {
	*table[entity.User, snowflake.ID]
}

func (r *userRepository) GuildIDs(ctx context.Context, userID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	r.b.mu.RLock()
	var ids []snowflake.ID
	for key := range r.b.members {
		if key.UserID == userID {
			ids = append(ids, key.GuildID)
		}
	}
	r.b.mu.RUnlock()

	return seq(ids)
}

// currentUserRepository stores the one authenticated user. Get only
// answers for the stored id; Current answers regardless.
type currentUserRepository struct {
	b *Backend
}

func (r *currentUserRepository) Get(ctx context.Context, key snowflake.ID) (entity.CurrentUser, bool, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()

	if r.b.current == nil || r.b.current.ID != key {
		return entity.CurrentUser{}, false, nil
	}
	return *r.b.current, true, nil
}

func (r *currentUserRepository) Upsert(ctx context.Context, ent entity.CurrentUser) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()

	r.b.current = &ent
	return nil
}

func (r *currentUserRepository) UpsertBulk(ctx context.Context, ents []entity.CurrentUser) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()

	for _, ent := range ents {
		r.b.current = &ent
	}
	return nil
}

func (r *currentUserRepository) Remove(ctx context.Context, key snowflake.ID) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()

	if r.b.current != nil && r.b.current.ID == key {
		r.b.current = nil
	}
	return nil
}

func (r *currentUserRepository) Current(ctx context.Context) (entity.CurrentUser, bool, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()

	if r.b.current == nil {
		return entity.CurrentUser{}, false, nil
	}
	return *r.b.current, true, nil
}
