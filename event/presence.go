package event

import "github.com/disgoorg/snowflake/v2"

// Activity is one entry of a presence's activity list.
type Activity struct {
	Name string  `json:"name"`
	Kind int     `json:"type"`
	URL  *string `json:"url"`
}

// Presence is the wire form of a user's presence in a guild.
type Presence struct {
	GuildID    snowflake.ID `json:"guild_id"`
	UserID     snowflake.ID `json:"user_id"`
	Status     string       `json:"status"`
	Activities []Activity   `json:"activities"`
}
