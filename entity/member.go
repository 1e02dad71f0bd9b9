package entity

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Member is the stored form of a guild member. The user itself is a
// separate record; only the id is kept here.
type Member struct {
	GuildID      snowflake.ID   `json:"guild_id"`
	UserID       snowflake.ID   `json:"user_id"`
	Nick         *string        `json:"nick"`
	Deaf         bool           `json:"deaf"`
	Mute         bool           `json:"mute"`
	JoinedAt     time.Time      `json:"joined_at"`
	PremiumSince *time.Time     `json:"premium_since"`
	RoleIDs      []snowflake.ID `json:"role_ids"`
}

func (m Member) Key() MemberKey {
	return MemberKey{GuildID: m.GuildID, UserID: m.UserID}
}

// NewMember converts a wire member into its stored form.
func NewMember(m event.Member) Member {
	return Member{
		GuildID:      m.GuildID,
		UserID:       m.User.ID,
		Nick:         m.Nick,
		Deaf:         m.Deaf,
		Mute:         m.Mute,
		JoinedAt:     m.JoinedAt,
		PremiumSince: m.PremiumSince,
		RoleIDs:      m.RoleIDs,
	}
}

// Update copies the member and overwrites the fields a member-update
// payload carries. Join time and voice flags are kept as stored.
func (m Member) Update(u event.MemberUpdate) Member {
	m.Nick = u.Nick
	m.PremiumSince = u.PremiumSince
	m.RoleIDs = u.RoleIDs
	return m
}
