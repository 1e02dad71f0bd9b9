package entity

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Role is the stored form of a guild role.
type Role struct {
	ID          snowflake.ID `json:"id"`
	GuildID     snowflake.ID `json:"guild_id"`
	Name        string       `json:"name"`
	Color       int          `json:"color"`
	Hoist       bool         `json:"hoist"`
	Managed     bool         `json:"managed"`
	Mentionable bool         `json:"mentionable"`
	Permissions uint64       `json:"permissions"`
	Position    int          `json:"position"`
}

func (r Role) Key() snowflake.ID { return r.ID }

// NewRole converts a wire role into its stored form. Roles arrive
// without their guild id, so the caller supplies it.
func NewRole(r event.Role, guildID snowflake.ID) Role {
	return Role{
		ID:          r.ID,
		GuildID:     guildID,
		Name:        r.Name,
		Color:       r.Color,
		Hoist:       r.Hoist,
		Managed:     r.Managed,
		Mentionable: r.Mentionable,
		Permissions: r.Permissions,
		Position:    r.Position,
	}
}
