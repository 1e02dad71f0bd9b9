package entity

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// Guild is the stored form of a guild. Children (channels, members,
// roles, emojis, presences, voice states) live in their own
// repositories and are reachable through the guild listings.
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
}

func (g Guild) Key() snowflake.ID { return g.ID }

// NewGuild converts a guild snapshot into its stored form, dropping
// the child collections.
func NewGuild(g event.Guild) Guild {
	return Guild{
		ID:                          g.ID,
		Name:                        g.Name,
		OwnerID:                     g.OwnerID,
		AfkChannelID:                g.AfkChannelID,
		AfkTimeout:                  g.AfkTimeout,
		ApplicationID:               g.ApplicationID,
		Banner:                      g.Banner,
		DefaultMessageNotifications: g.DefaultMessageNotifications,
		Description:                 g.Description,
		DiscoverySplash:             g.DiscoverySplash,
		ExplicitContentFilter:       g.ExplicitContentFilter,
		Features:                    g.Features,
		Icon:                        g.Icon,
		JoinedAt:                    g.JoinedAt,
		Large:                       g.Large,
		MemberCount:                 g.MemberCount,
		MFALevel:                    g.MFALevel,
		PreferredLocale:             g.PreferredLocale,
		PremiumSubscriptionCount:    g.PremiumSubscriptionCount,
		PremiumTier:                 g.PremiumTier,
		Region:                      g.Region,
		RulesChannelID:              g.RulesChannelID,
		Splash:                      g.Splash,
		SystemChannelID:             g.SystemChannelID,
		Unavailable:                 g.Unavailable,
		VanityURLCode:               g.VanityURLCode,
		VerificationLevel:           g.VerificationLevel,
	}
}

// Update copies the guild and overwrites the metadata fields carried
// by a guild-update payload. Availability, join state and counts are
// kept as stored.
func (g Guild) Update(u event.GuildUpdate) Guild {
	g.Name = u.Name
	g.OwnerID = u.OwnerID
	g.AfkChannelID = u.AfkChannelID
	g.AfkTimeout = u.AfkTimeout
	g.Banner = u.Banner
	g.DefaultMessageNotifications = u.DefaultMessageNotifications
	g.Description = u.Description
	g.DiscoverySplash = u.DiscoverySplash
	g.ExplicitContentFilter = u.ExplicitContentFilter
	g.Features = u.Features
	g.Icon = u.Icon
	g.MFALevel = u.MFALevel
	g.PreferredLocale = u.PreferredLocale
	g.PremiumTier = u.PremiumTier
	g.RulesChannelID = u.RulesChannelID
	g.Splash = u.Splash
	g.SystemChannelID = u.SystemChannelID
	g.VanityURLCode = u.VanityURLCode
	g.VerificationLevel = u.VerificationLevel
	return g
}

// WithUnavailable copies the guild with only the unavailable flag
// changed.
func (g Guild) WithUnavailable(unavailable bool) Guild {
	g.Unavailable = unavailable
	return g
}
