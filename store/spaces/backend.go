package spaces

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/entity"
)

var _ cache.Backend = (*Backend)(nil)

// channels builds the repository of one guild channel kind. All four
// share the key layout, differing only in kind and guild accessor.
func channels[E entity.Entity[snowflake.ID]](b *Backend, kind entity.ChannelKind, guildID func(E) snowflake.ID) objectRepository[E, snowflake.ID] {
	return objectRepository[E, snowflake.ID]{
		store: b,
		key:   func(id snowflake.ID) string { return channelKey(kind, id) },
		marker: func(c E, _ []byte) (string, []byte) {
			return channelMarkerKey(guildID(c), kind, c.Key()), nil
		},
	}
}

func (b *Backend) Attachments() cache.AttachmentRepository {
	return objectRepository[entity.Attachment, snowflake.ID]{
		store: b,
		key:   attachmentKey,
		marker: func(a entity.Attachment, body []byte) (string, []byte) {
			return attachmentMarkerKey(a.MessageID, a.ID), body
		},
	}
}

func (b *Backend) CategoryChannels() cache.CategoryChannelRepository {
	return channels(b, entity.ChannelCategory, func(c entity.CategoryChannel) snowflake.ID { return c.GuildID })
}

func (b *Backend) CurrentUser() cache.CurrentUserRepository {
	return currentUserRepository{
		objectRepository: objectRepository[entity.CurrentUser, snowflake.ID]{
			store: b,
			key:   currentUserKey,
		},
		store: b,
	}
}

func (b *Backend) Emojis() cache.EmojiRepository {
	return objectRepository[entity.Emoji, entity.EmojiKey]{
		store: b,
		key:   emojiKey,
	}
}

func (b *Backend) Groups() cache.GroupRepository {
	return objectRepository[entity.Group, snowflake.ID]{
		store: b,
		key:   groupKey,
	}
}

func (b *Backend) Guilds() cache.GuildRepository {
	return guildRepository{
		objectRepository: objectRepository[entity.Guild, snowflake.ID]{
			store: b,
			key:   guildKey,
		},
		store: b,
	}
}

func (b *Backend) Members() cache.MemberRepository {
	return objectRepository[entity.Member, entity.MemberKey]{
		store: b,
		key:   memberKey,
		marker: func(m entity.Member, _ []byte) (string, []byte) {
			return memberMarkerKey(m.Key()), nil
		},
	}
}

func (b *Backend) Messages() cache.MessageRepository {
	return messageRepository{
		objectRepository: objectRepository[entity.Message, snowflake.ID]{
			store: b,
			key:   messageKey,
		},
		store: b,
	}
}

func (b *Backend) Presences() cache.PresenceRepository {
	return objectRepository[entity.Presence, entity.PresenceKey]{
		store: b,
		key:   presenceKey,
	}
}

func (b *Backend) PrivateChannels() cache.PrivateChannelRepository {
	return objectRepository[entity.PrivateChannel, snowflake.ID]{
		store: b,
		key:   privateChannelKey,
	}
}

func (b *Backend) Roles() cache.RoleRepository {
	return objectRepository[entity.Role, snowflake.ID]{
		store: b,
		key:   roleKey,
		marker: func(r entity.Role, _ []byte) (string, []byte) {
			return roleMarkerKey(r.GuildID, r.ID), nil
		},
	}
}

func (b *Backend) StageChannels() cache.VoiceChannelRepository {
	return channels(b, entity.ChannelStage, func(c entity.VoiceChannel) snowflake.ID { return c.GuildID })
}

func (b *Backend) TextChannels() cache.TextChannelRepository {
	return channels(b, entity.ChannelText, func(c entity.TextChannel) snowflake.ID { return c.GuildID })
}

func (b *Backend) Users() cache.UserRepository {
	return userRepository{
		objectRepository: objectRepository[entity.User, snowflake.ID]{
			store: b,
			key:   userKey,
		},
		store: b,
	}
}

func (b *Backend) VoiceChannels() cache.VoiceChannelRepository {
	return channels(b, entity.ChannelVoice, func(c entity.VoiceChannel) snowflake.ID { return c.GuildID })
}

func (b *Backend) VoiceStates() cache.VoiceStateRepository {
	return objectRepository[entity.VoiceState, entity.VoiceStateKey]{
		store: b,
		key:   voiceStateKey,
	}
}

type guildRepository struct {
	objectRepository[entity.Guild, snowflake.ID]
	store *Backend
}

func (r guildRepository) Channels(ctx context.Context, guildID snowflake.ID) iter.Seq2[entity.GuildChannel, error] {
	return func(yield func(entity.GuildChannel, error) bool) {
		keys, err := r.store.listKeys(ctx, guildPrefix(guildID)+"channels/")
		if err != nil {
			yield(entity.GuildChannel{}, err)
			return
		}
		for _, key := range keys {
			ref, err := channelFromKey(key)
			if err != nil {
				yield(entity.GuildChannel{}, err)
				return
			}
			if !yield(ref, nil) {
				return
			}
		}
	}
}

func (r guildRepository) EmojiIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, guildPrefix(guildID)+"emojis/")
}

func (r guildRepository) MemberIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, guildPrefix(guildID)+"members/")
}

func (r guildRepository) PresenceIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, guildPrefix(guildID)+"presences/")
}

func (r guildRepository) RoleIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, guildPrefix(guildID)+"roles/")
}

func (r guildRepository) VoiceStateIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, guildPrefix(guildID)+"voice-states/")
}

type messageRepository struct {
	objectRepository[entity.Message, snowflake.ID]
	store *Backend
}

func (r messageRepository) Attachments(ctx context.Context, messageID snowflake.ID) iter.Seq2[entity.Attachment, error] {
	return func(yield func(entity.Attachment, error) bool) {
		keys, err := r.store.listKeys(ctx, "messages/"+messageID.String()+"/attachments/")
		if err != nil {
			yield(entity.Attachment{}, err)
			return
		}
		for _, key := range keys {
			body, ok, err := r.store.getObject(ctx, key)
			if err != nil {
				yield(entity.Attachment{}, err)
				return
			}
			if !ok {
				continue
			}
			var a entity.Attachment
			if err := json.Unmarshal(body, &a); err != nil {
				yield(entity.Attachment{}, err)
				return
			}
			if !yield(a, nil) {
				return
			}
		}
	}
}

type userRepository struct {
	objectRepository[entity.User, snowflake.ID]
	store *Backend
}

func (r userRepository) GuildIDs(ctx context.Context, userID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return idSeq(ctx, r.store, "users/"+userID.String()+"/guilds/")
}

type currentUserRepository struct {
	objectRepository[entity.CurrentUser, snowflake.ID]
	store *Backend
}

// Upsert keeps the account a singleton: whatever other account object
// exists is removed first.
func (r currentUserRepository) Upsert(ctx context.Context, u entity.CurrentUser) error {
	keys, err := r.store.listKeys(ctx, "current-user/")
	if err != nil {
		return err
	}
	own := currentUserKey(u.ID)
	for _, key := range keys {
		if key == own {
			continue
		}
		if err := r.store.deleteObject(ctx, key); err != nil {
			return err
		}
	}
	return r.objectRepository.Upsert(ctx, u)
}

func (r currentUserRepository) UpsertBulk(ctx context.Context, us []entity.CurrentUser) error {
	for _, u := range us {
		if err := r.Upsert(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (r currentUserRepository) Current(ctx context.Context) (entity.CurrentUser, bool, error) {
	var zero entity.CurrentUser
	keys, err := r.store.listKeys(ctx, "current-user/")
	if err != nil {
		return zero, false, err
	}
	if len(keys) == 0 {
		return zero, false, nil
	}
	body, ok, err := r.store.getObject(ctx, keys[0])
	if err != nil || !ok {
		return zero, false, err
	}
	var u entity.CurrentUser
	if err := json.Unmarshal(body, &u); err != nil {
		return zero, false, err
	}
	return u, true, nil
}
