package graph

import (
	"encoding/json"
	"errors"
	"iter"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/entity"
)

// Config carries the neo4j connection settings.
type Config struct {
	URI      string
	User     string
	Password string
}

// ConfigFromEnv reads NEO4J_DATABASE_URL, NEO4J_DATABASE_USER and
// NEO4J_DATABASE_PASSWORD.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		URI:      os.Getenv("NEO4J_DATABASE_URL"),
		User:     os.Getenv("NEO4J_DATABASE_USER"),
		Password: os.Getenv("NEO4J_DATABASE_PASSWORD"),
	}
	if cfg.URI == "" {
		return Config{}, errors.New("NEO4J_DATABASE_URL is not set")
	}
	return cfg, nil
}

// Backend stores every record as one neo4j node, related to its
// parent where it has one.
type Backend struct {
	conn *Connection
}

var _ cache.Backend = (*Backend)(nil)

// New connects to neo4j and builds the backend over the connection.
func New(cfg Config) (*Backend, error) {
	conn, err := NewConnection(cfg.URI, cfg.User, cfg.Password)
	if err != nil {
		return nil, err
	}
	return &Backend{conn: conn}, nil
}

// Close closes the underlying driver.
func (b *Backend) Close(ctx context.Context) error {
	return b.conn.Close(ctx)
}

func guildLink(guildID snowflake.ID) []string {
	return []string{
		Merge(Cypher("g", Guild{Id: guildID.String()})),
		Merge("(g)-[:HAS]->(n)"),
	}
}

func (b *Backend) Attachments() cache.AttachmentRepository {
	return nodeRepository[entity.Attachment, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return Attachment{Id: id.String()} },
		node: func(a entity.Attachment, data string) any {
			return Attachment{Id: a.ID.String(), MessageId: a.MessageID.String(), Data: data}
		},
		link: func(a entity.Attachment) []string {
			return []string{
				Merge(Cypher("m", Message{Id: a.MessageID.String()})),
				Merge("(m)-[:HAS]->(n)"),
			}
		},
	}
}

func (b *Backend) CategoryChannels() cache.CategoryChannelRepository {
	return nodeRepository[entity.CategoryChannel, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return CategoryChannel{Id: id.String()} },
		node: func(c entity.CategoryChannel, data string) any {
			return CategoryChannel{
				GuildChannel: GuildChannel{GuildId: c.GuildID.String(), Kind: string(entity.ChannelCategory)},
				Id:           c.ID.String(),
				Data:         data,
			}
		},
		link: func(c entity.CategoryChannel) []string { return guildLink(c.GuildID) },
	}
}

func (b *Backend) CurrentUser() cache.CurrentUserRepository {
	return currentUserRepository{
		nodeRepository: nodeRepository[entity.CurrentUser, snowflake.ID]{
			conn:  b.conn,
			match: func(id snowflake.ID) any { return CurrentUser{Id: id.String()} },
			node: func(u entity.CurrentUser, data string) any {
				return CurrentUser{Id: u.ID.String(), Data: data}
			},
			// The account is a singleton; an upsert under a new id
			// replaces whatever was stored before.
			link: func(u entity.CurrentUser) []string {
				return []string{
					"WITH n",
					Match("(o:CurrentUser)"),
					"WHERE NOT o.id = n.id",
					DetachDelete("o"),
				}
			},
		},
		conn: b.conn,
	}
}

func (b *Backend) Emojis() cache.EmojiRepository {
	return nodeRepository[entity.Emoji, entity.EmojiKey]{
		conn: b.conn,
		match: func(k entity.EmojiKey) any {
			return Emoji{Id: k.EmojiID.String(), GuildId: k.GuildID.String()}
		},
		node: func(e entity.Emoji, data string) any {
			return Emoji{Id: e.ID.String(), GuildId: e.GuildID.String(), Data: data}
		},
		link: func(e entity.Emoji) []string { return guildLink(e.GuildID) },
	}
}

func (b *Backend) Groups() cache.GroupRepository {
	return nodeRepository[entity.Group, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return Group{Id: id.String()} },
		node: func(g entity.Group, data string) any {
			return Group{Id: g.ID.String(), Data: data}
		},
	}
}

func (b *Backend) Guilds() cache.GuildRepository {
	return guildRepository{
		nodeRepository: nodeRepository[entity.Guild, snowflake.ID]{
			conn:  b.conn,
			match: func(id snowflake.ID) any { return Guild{Id: id.String()} },
			node: func(g entity.Guild, data string) any {
				return Guild{Id: g.ID.String(), Data: data}
			},
		},
		conn: b.conn,
	}
}

func (b *Backend) Members() cache.MemberRepository {
	return nodeRepository[entity.Member, entity.MemberKey]{
		conn: b.conn,
		match: func(k entity.MemberKey) any {
			return Member{UserId: k.UserID.String(), GuildId: k.GuildID.String()}
		},
		node: func(m entity.Member, data string) any {
			return Member{UserId: m.UserID.String(), GuildId: m.GuildID.String(), Data: data}
		},
		link: func(m entity.Member) []string {
			return []string{
				Merge(Cypher("g", Guild{Id: m.GuildID.String()})),
				Merge("(g)-[:HAS]->(n)-[:MEMBER_OF]->(g)"),
			}
		},
	}
}

func (b *Backend) Messages() cache.MessageRepository {
	return messageRepository{
		nodeRepository: nodeRepository[entity.Message, snowflake.ID]{
			conn:  b.conn,
			match: func(id snowflake.ID) any { return Message{Id: id.String()} },
			node: func(m entity.Message, data string) any {
				return Message{Id: m.ID.String(), ChannelId: m.ChannelID.String(), Data: data}
			},
			link: func(m entity.Message) []string {
				return []string{
					Merge(Cypher("u", User{Id: m.AuthorID.String()})),
					Merge("(n)-[:AUTHOR]->(u)"),
				}
			},
		},
		conn: b.conn,
	}
}

func (b *Backend) Presences() cache.PresenceRepository {
	return nodeRepository[entity.Presence, entity.PresenceKey]{
		conn: b.conn,
		match: func(k entity.PresenceKey) any {
			return Presence{UserId: k.UserID.String(), GuildId: k.GuildID.String()}
		},
		node: func(p entity.Presence, data string) any {
			return Presence{UserId: p.UserID.String(), GuildId: p.GuildID.String(), Data: data}
		},
		link: func(p entity.Presence) []string { return guildLink(p.GuildID) },
	}
}

func (b *Backend) PrivateChannels() cache.PrivateChannelRepository {
	return nodeRepository[entity.PrivateChannel, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return PrivateChannel{Id: id.String()} },
		node: func(c entity.PrivateChannel, data string) any {
			return PrivateChannel{Id: c.ID.String(), Data: data}
		},
	}
}

func (b *Backend) Roles() cache.RoleRepository {
	return nodeRepository[entity.Role, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return Role{Id: id.String()} },
		node: func(r entity.Role, data string) any {
			return Role{Id: r.ID.String(), GuildId: r.GuildID.String(), Data: data}
		},
		link: func(r entity.Role) []string { return guildLink(r.GuildID) },
	}
}

func (b *Backend) StageChannels() cache.VoiceChannelRepository {
	return nodeRepository[entity.VoiceChannel, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return StageChannel{Id: id.String()} },
		node: func(c entity.VoiceChannel, data string) any {
			return StageChannel{
				GuildChannel: GuildChannel{GuildId: c.GuildID.String(), Kind: string(entity.ChannelStage)},
				Id:           c.ID.String(),
				Data:         data,
			}
		},
		link: func(c entity.VoiceChannel) []string { return guildLink(c.GuildID) },
	}
}

func (b *Backend) TextChannels() cache.TextChannelRepository {
	return nodeRepository[entity.TextChannel, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return TextChannel{Id: id.String()} },
		node: func(c entity.TextChannel, data string) any {
			return TextChannel{
				GuildChannel: GuildChannel{GuildId: c.GuildID.String(), Kind: string(entity.ChannelText)},
				Id:           c.ID.String(),
				Data:         data,
			}
		},
		link: func(c entity.TextChannel) []string { return guildLink(c.GuildID) },
	}
}

func (b *Backend) Users() cache.UserRepository {
	return userRepository{
		nodeRepository: nodeRepository[entity.User, snowflake.ID]{
			conn:  b.conn,
			match: func(id snowflake.ID) any { return User{Id: id.String()} },
			node: func(u entity.User, data string) any {
				return User{Id: u.ID.String(), Data: data}
			},
		},
		conn: b.conn,
	}
}

func (b *Backend) VoiceChannels() cache.VoiceChannelRepository {
	return nodeRepository[entity.VoiceChannel, snowflake.ID]{
		conn:  b.conn,
		match: func(id snowflake.ID) any { return VoiceChannel{Id: id.String()} },
		node: func(c entity.VoiceChannel, data string) any {
			return VoiceChannel{
				GuildChannel: GuildChannel{GuildId: c.GuildID.String(), Kind: string(entity.ChannelVoice)},
				Id:           c.ID.String(),
				Data:         data,
			}
		},
		link: func(c entity.VoiceChannel) []string { return guildLink(c.GuildID) },
	}
}

func (b *Backend) VoiceStates() cache.VoiceStateRepository {
	return nodeRepository[entity.VoiceState, entity.VoiceStateKey]{
		conn: b.conn,
		match: func(k entity.VoiceStateKey) any {
			return VoiceState{UserId: k.UserID.String(), GuildId: k.GuildID.String()}
		},
		node: func(v entity.VoiceState, data string) any {
			return VoiceState{UserId: v.UserID.String(), GuildId: v.GuildID.String(), Data: data}
		},
		link: func(v entity.VoiceState) []string { return guildLink(v.GuildID) },
	}
}

type guildRepository struct {
	nodeRepository[entity.Guild, snowflake.ID]
	conn *Connection
}

func (r guildRepository) Channels(ctx context.Context, guildID snowflake.ID) iter.Seq2[entity.GuildChannel, error] {
	return listSeq(ctx, r.conn, GuildChannel{GuildId: guildID.String()}, func(n channelRecord) (entity.GuildChannel, error) {
		id, err := snowflake.Parse(n.Id)
		if err != nil {
			return entity.GuildChannel{}, err
		}
		return entity.GuildChannel{ID: id, Kind: entity.ChannelKind(n.Kind)}, nil
	})
}

func (r guildRepository) EmojiIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, Emoji{GuildId: guildID.String()}, func(n idRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.Id)
	})
}

func (r guildRepository) MemberIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, Member{GuildId: guildID.String()}, func(n userRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.UserId)
	})
}

func (r guildRepository) PresenceIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, Presence{GuildId: guildID.String()}, func(n userRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.UserId)
	})
}

func (r guildRepository) RoleIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, Role{GuildId: guildID.String()}, func(n idRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.Id)
	})
}

func (r guildRepository) VoiceStateIDs(ctx context.Context, guildID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, VoiceState{GuildId: guildID.String()}, func(n userRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.UserId)
	})
}

type messageRepository struct {
	nodeRepository[entity.Message, snowflake.ID]
	conn *Connection
}

func (r messageRepository) Attachments(ctx context.Context, messageID snowflake.ID) iter.Seq2[entity.Attachment, error] {
	return listSeq(ctx, r.conn, Attachment{MessageId: messageID.String()}, func(n dataRecord) (entity.Attachment, error) {
		var a entity.Attachment
		err := json.Unmarshal([]byte(n.Data), &a)
		return a, err
	})
}

type userRepository struct {
	nodeRepository[entity.User, snowflake.ID]
	conn *Connection
}

func (r userRepository) GuildIDs(ctx context.Context, userID snowflake.ID) iter.Seq2[snowflake.ID, error] {
	return listSeq(ctx, r.conn, Member{UserId: userID.String()}, func(n guildRecord) (snowflake.ID, error) {
		return snowflake.Parse(n.GuildId)
	})
}

type currentUserRepository struct {
	nodeRepository[entity.CurrentUser, snowflake.ID]
	conn *Connection
}

func (r currentUserRepository) Current(ctx context.Context) (entity.CurrentUser, bool, error) {
	var zero entity.CurrentUser
	result, err := r.conn.Query(ctx, Match("(n:CurrentUser)"), Return("n"))
	if err != nil {
		return zero, false, err
	}
	rec, ok := ParseKey[dataRecord]("n", result.Records)
	if !ok {
		return zero, false, nil
	}
	var u entity.CurrentUser
	if err := json.Unmarshal([]byte(rec.Data), &u); err != nil {
		return zero, false, err
	}
	return u, true, nil
}
