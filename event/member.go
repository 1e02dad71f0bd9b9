package event

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Member is the wire form of a guild member. GuildID is always set,
// even inside snapshots where Discord omits it; the source fills it in
// before handing the payload over.
type Member struct {
	GuildID      snowflake.ID   `json:"guild_id"`
	User         User           `json:"user"`
	Nick         *string        `json:"nick"`
	Deaf         bool           `json:"deaf"`
	Mute         bool           `json:"mute"`
	JoinedAt     time.Time      `json:"joined_at"`
	PremiumSince *time.Time     `json:"premium_since"`
	RoleIDs      []snowflake.ID `json:"roles"`
}

// MemberAdd announces a user joining a guild.
type MemberAdd struct {
	Member Member `json:"member"`
}

// MemberRemove announces a user leaving a guild; the member record is
// gone but the user survives.
type MemberRemove struct {
	GuildID snowflake.ID `json:"guild_id"`
	User    User         `json:"user"`
}

// MemberUpdate carries the changed subset of a member.
type MemberUpdate struct {
	GuildID      snowflake.ID   `json:"guild_id"`
	User         User           `json:"user"`
	Nick         *string        `json:"nick"`
	PremiumSince *time.Time     `json:"premium_since"`
	RoleIDs      []snowflake.ID `json:"roles"`
}

// MemberChunk is one page of a requested member list.
type MemberChunk struct {
	GuildID    snowflake.ID `json:"guild_id"`
	ChunkIndex int          `json:"chunk_index"`
	ChunkCount int          `json:"chunk_count"`
	Members    []Member     `json:"members"`
	Presences  []Presence   `json:"presences"`
}

func (*MemberAdd) Kind() string    { return "GUILD_MEMBER_ADD" }
func (*MemberRemove) Kind() string { return "GUILD_MEMBER_REMOVE" }
func (*MemberUpdate) Kind() string { return "GUILD_MEMBER_UPDATE" }
func (*MemberChunk) Kind() string  { return "GUILD_MEMBERS_CHUNK" }

func (*MemberAdd) isEvent()    {}
func (*MemberRemove) isEvent() {}
func (*MemberUpdate) isEvent() {}
func (*MemberChunk) isEvent()  {}
