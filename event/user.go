package event

import "github.com/disgoorg/snowflake/v2"

// User is the wire form of a Discord user.
type User struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator"`
	Avatar        *string      `json:"avatar"`
	Bot           bool         `json:"bot"`
	Email         *string      `json:"email"`
	Flags         *int         `json:"flags"`
	Locale        *string      `json:"locale"`
	MFAEnabled    *bool        `json:"mfa_enabled"`
	PremiumType   *int         `json:"premium_type"`
	PublicFlags   *int         `json:"public_flags"`
	System        *bool        `json:"system"`
	Verified      *bool        `json:"verified"`
}

// UnavailableGuild is the guild stub delivered before the full
// snapshot arrives.
type UnavailableGuild struct {
	ID          snowflake.ID `json:"id"`
	Unavailable bool         `json:"unavailable"`
}

// Ready is the first dispatch after identifying. The guild list only
// holds stubs; full snapshots follow as guild-create dispatches.
type Ready struct {
	Version   int                `json:"v"`
	User      User               `json:"user"`
	Guilds    []UnavailableGuild `json:"guilds"`
	SessionID string             `json:"session_id"`
}

func (*Ready) Kind() string { return "READY" }

func (*Ready) isEvent() {}
