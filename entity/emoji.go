package entity

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Emoji is the stored form of a custom guild emoji.
type Emoji struct {
	ID            snowflake.ID   `json:"id"`
	GuildID       snowflake.ID   `json:"guild_id"`
	Name          string         `json:"name"`
	Animated      bool           `json:"animated"`
	Available     bool           `json:"available"`
	Managed       bool           `json:"managed"`
	RequireColons bool           `json:"require_colons"`
	RoleIDs       []snowflake.ID `json:"role_ids"`
	UserID        *snowflake.ID  `json:"user_id"`
}

func (e Emoji) Key() EmojiKey {
	return EmojiKey{GuildID: e.GuildID, EmojiID: e.ID}
}

// NewEmoji converts a wire emoji into its stored form. Emojis arrive
// without their guild id, so the caller supplies it.
func NewEmoji(guildID snowflake.ID, e event.Emoji) Emoji {
	var userID *snowflake.ID
	if e.User != nil {
		userID = &e.User.ID
	}

	return Emoji{
		ID:            e.ID,
		GuildID:       guildID,
		Name:          e.Name,
		Animated:      e.Animated,
		Available:     e.Available,
		Managed:       e.Managed,
		RequireColons: e.RequireColons,
		RoleIDs:       e.RoleIDs,
		UserID:        userID,
	}
}
