package entity

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Activity is one stored entry of a presence's activity list.
type Activity struct {
	Name string  `json:"name"`
	Kind int     `json:"type"`
	URL  *string `json:"url"`
}

// Presence is the stored form of a user's presence in a guild.
type Presence struct {
	GuildID    snowflake.ID `json:"guild_id"`
	UserID     snowflake.ID `json:"user_id"`
	Status     string       `json:"status"`
	Activities []Activity   `json:"activities"`
}

func (p Presence) Key() PresenceKey {
	return PresenceKey{GuildID: p.GuildID, UserID: p.UserID}
}

// NewPresence converts a wire presence into its stored form.
func NewPresence(p event.Presence) Presence {
	var activities []Activity
	if p.Activities != nil {
		activities = make([]Activity, len(p.Activities))
		for i, a := range p.Activities {
			activities[i] = Activity{Name: a.Name, Kind: a.Kind, URL: a.URL}
		}
	}

	return Presence{
		GuildID:    p.GuildID,
		UserID:     p.UserID,
		Status:     p.Status,
		Activities: activities,
	}
}
