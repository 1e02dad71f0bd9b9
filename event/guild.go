package event

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Role is the wire form of a guild role.
type Role struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Color       int          `json:"color"`
	Hoist       bool         `json:"hoist"`
	Managed     bool         `json:"managed"`
	Mentionable bool         `json:"mentionable"`
	Permissions uint64       `json:"permissions"`
	Position    int          `json:"position"`
}

// Emoji is the wire form of a custom guild emoji.
type Emoji struct {
	ID            snowflake.ID   `json:"id"`
	Name          string         `json:"name"`
	Animated      bool           `json:"animated"`
	Available     bool           `json:"available"`
	Managed       bool           `json:"managed"`
	RequireColons bool           `json:"require_colons"`
	RoleIDs       []snowflake.ID `json:"roles"`
	User          *User          `json:"user"`
}

// Guild is the full guild snapshot delivered on guild-create. The
// child collections hold everything Discord knew at dispatch time.
type Guild struct {
	ID                          snowflake.ID  `json:"id"`
	Name                        string        `json:"name"`
	OwnerID                     snowflake.ID  `json:"owner_id"`
	AfkChannelID                *snowflake.ID `json:"afk_channel_id"`
	AfkTimeout                  int           `json:"afk_timeout"`
	ApplicationID               *snowflake.ID `json:"application_id"`
	Banner                      *string       `json:"banner"`
	DefaultMessageNotifications int           `json:"default_message_notifications"`
	Description                 *string       `json:"description"`
	DiscoverySplash             *string       `json:"discovery_splash"`
	ExplicitContentFilter       int           `json:"explicit_content_filter"`
	Features                    []string      `json:"features"`
	Icon                        *string       `json:"icon"`
	JoinedAt                    *time.Time    `json:"joined_at"`
	Large                       bool          `json:"large"`
	MemberCount                 *int          `json:"member_count"`
	MFALevel                    int           `json:"mfa_level"`
	PreferredLocale             string        `json:"preferred_locale"`
	PremiumSubscriptionCount    *int          `json:"premium_subscription_count"`
	PremiumTier                 int           `json:"premium_tier"`
	Region                      string        `json:"region"`
	RulesChannelID              *snowflake.ID `json:"rules_channel_id"`
	Splash                      *string       `json:"splash"`
	SystemChannelID             *snowflake.ID `json:"system_channel_id"`
	Unavailable                 bool          `json:"unavailable"`
	VanityURLCode               *string       `json:"vanity_url_code"`
	VerificationLevel           int           `json:"verification_level"`

	Channels    []Channel    `json:"channels"`
	Emojis      []Emoji      `json:"emojis"`
	Members     []Member     `json:"members"`
	Presences   []Presence   `json:"presences"`
	Roles       []Role       `json:"roles"`
	VoiceStates []VoiceState `json:"voice_states"`
}

// GuildCreate delivers a full guild snapshot, either on join or when a
// guild comes back from an outage.
type GuildCreate struct {
	Guild Guild `json:"guild"`
}

// GuildUpdate carries refreshed guild metadata. Child collections are
// never included.
type GuildUpdate struct {
	ID                          snowflake.ID  `json:"id"`
	Name                        string        `json:"name"`
	OwnerID                     snowflake.ID  `json:"owner_id"`
	AfkChannelID                *snowflake.ID `json:"afk_channel_id"`
	AfkTimeout                  int           `json:"afk_timeout"`
	Banner                      *string       `json:"banner"`
	DefaultMessageNotifications int           `json:"default_message_notifications"`
	Description                 *string       `json:"description"`
	DiscoverySplash             *string       `json:"discovery_splash"`
	ExplicitContentFilter       int           `json:"explicit_content_filter"`
	Features                    []string      `json:"features"`
	Icon                        *string       `json:"icon"`
	MFALevel                    int           `json:"mfa_level"`
	PreferredLocale             string        `json:"preferred_locale"`
	PremiumTier                 int           `json:"premium_tier"`
	RulesChannelID              *snowflake.ID `json:"rules_channel_id"`
	Splash                      *string       `json:"splash"`
	SystemChannelID             *snowflake.ID `json:"system_channel_id"`
	VanityURLCode               *string       `json:"vanity_url_code"`
	VerificationLevel           int           `json:"verification_level"`
}

// GuildDelete signals that a guild became unavailable or that the bot
// left it. Unavailable distinguishes outage from departure.
type GuildDelete struct {
	ID          snowflake.ID `json:"id"`
	Unavailable bool         `json:"unavailable"`
}

// GuildEmojisUpdate carries the full new emoji list for a guild.
type GuildEmojisUpdate struct {
	GuildID snowflake.ID `json:"guild_id"`
	Emojis  []Emoji      `json:"emojis"`
}

func (*GuildCreate) Kind() string       { return "GUILD_CREATE" }
func (*GuildUpdate) Kind() string       { return "GUILD_UPDATE" }
func (*GuildDelete) Kind() string       { return "GUILD_DELETE" }
func (*GuildEmojisUpdate) Kind() string { return "GUILD_EMOJIS_UPDATE" }

func (*GuildCreate) isEvent()       {}
func (*GuildUpdate) isEvent()       {}
func (*GuildDelete) isEvent()       {}
func (*GuildEmojisUpdate) isEvent() {}
