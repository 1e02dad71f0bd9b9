package platform

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

func ptr[T any](v T) *T { return &v }

func userFrom(u discord.User) event.User {
	return event.User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
		Bot:           u.Bot,
		PublicFlags:   ptr(int(u.PublicFlags)),
		System:        ptr(u.System),
	}
}

func readyFrom(e gateway.EventReady) *event.Ready {
	user := userFrom(e.User.User)
	user.Locale = ptr(string(e.User.Locale))
	user.MFAEnabled = ptr(e.User.MfaEnabled)
	user.Verified = ptr(e.User.Verified)

	guilds := make([]event.UnavailableGuild, 0, len(e.Guilds))
	for _, g := range e.Guilds {
		guilds = append(guilds, event.UnavailableGuild{ID: g.ID, Unavailable: g.Unavailable})
	}
	return &event.Ready{
		Version:   e.Version,
		User:      user,
		Guilds:    guilds,
		SessionID: e.SessionID,
	}
}

func memberFrom(m discord.Member, guildID snowflake.ID) event.Member {
	return event.Member{
		GuildID:      guildID,
		User:         userFrom(m.User),
		Nick:         m.Nick,
		Deaf:         m.Deaf,
		Mute:         m.Mute,
		JoinedAt:     m.JoinedAt,
		PremiumSince: m.PremiumSince,
		RoleIDs:      m.RoleIDs,
	}
}

func roleFrom(r discord.Role) event.Role {
	return event.Role{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Hoist:       r.Hoist,
		Managed:     r.Managed,
		Mentionable: r.Mentionable,
		Permissions: uint64(r.Permissions),
		Position:    r.Position,
	}
}

func emojiFrom(e discord.Emoji) event.Emoji {
	return event.Emoji{
		ID:            e.ID,
		Name:          e.Name,
		Animated:      e.Animated,
		Available:     e.Available,
		Managed:       e.Managed,
		RequireColons: e.RequireColons,
		RoleIDs:       e.Roles,
	}
}

func messageFrom(m discord.Message) event.Message {
	mentions := make([]snowflake.ID, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		mentions = append(mentions, u.ID)
	}
	attachments := make([]event.Attachment, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, event.Attachment{
			ID:       a.ID,
			Filename: a.Filename,
			Size:     a.Size,
			URL:      a.URL,
			ProxyURL: a.ProxyURL,
			Height:   a.Height,
			Width:    a.Width,
		})
	}
	return event.Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		GuildID:         m.GuildID,
		Author:          userFrom(m.Author),
		Content:         m.Content,
		Timestamp:       m.CreatedAt,
		EditedTimestamp: m.EditedTimestamp,
		Kind:            int(m.Type),
		MentionEveryone: m.MentionEveryone,
		MentionRoleIDs:  m.MentionRoles,
		MentionUserIDs:  mentions,
		Pinned:          m.Pinned,
		TTS:             m.TTS,
		WebhookID:       m.WebhookID,
		Attachments:     attachments,
	}
}

func featuresFrom(features []discord.GuildFeature) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, string(f))
	}
	return out
}

func guildUpdateFrom(g discord.Guild) *event.GuildUpdate {
	return &event.GuildUpdate{
		ID:                          g.ID,
		Name:                        g.Name,
		OwnerID:                     g.OwnerID,
		AfkChannelID:                g.AfkChannelID,
		AfkTimeout:                  int(g.AfkTimeout),
		Banner:                      g.Banner,
		DefaultMessageNotifications: int(g.DefaultMessageNotifications),
		Description:                 g.Description,
		DiscoverySplash:             g.DiscoverySplash,
		ExplicitContentFilter:       int(g.ExplicitContentFilter),
		Features:                    featuresFrom(g.Features),
		Icon:                        g.Icon,
		MFALevel:                    int(g.MFALevel),
		PreferredLocale:             string(g.PreferredLocale),
		PremiumTier:                 int(g.PremiumTier),
		RulesChannelID:              g.RulesChannelID,
		Splash:                      g.Splash,
		SystemChannelID:             g.SystemChannelID,
		VanityURLCode:               g.VanityURLCode,
		VerificationLevel:           int(g.VerificationLevel),
	}
}

// guildFrom assembles the snapshot for one guild. Roles and emojis ride
// on the guild fetch itself; members and channels are fetched
// separately and may be nil when their fetch failed.
func guildFrom(g *discord.RestGuild, members []discord.Member, channels []discord.GuildChannel) event.Guild {
	guild := event.Guild{
		ID:                          g.ID,
		Name:                        g.Name,
		OwnerID:                     g.OwnerID,
		AfkChannelID:                g.AfkChannelID,
		AfkTimeout:                  int(g.AfkTimeout),
		ApplicationID:               g.ApplicationID,
		Banner:                      g.Banner,
		DefaultMessageNotifications: int(g.DefaultMessageNotifications),
		Description:                 g.Description,
		DiscoverySplash:             g.DiscoverySplash,
		ExplicitContentFilter:       int(g.ExplicitContentFilter),
		Features:                    featuresFrom(g.Features),
		Icon:                        g.Icon,
		MemberCount:                 ptr(len(members)),
		MFALevel:                    int(g.MFALevel),
		PreferredLocale:             string(g.PreferredLocale),
		PremiumTier:                 int(g.PremiumTier),
		RulesChannelID:              g.RulesChannelID,
		Splash:                      g.Splash,
		SystemChannelID:             g.SystemChannelID,
		VanityURLCode:               g.VanityURLCode,
		VerificationLevel:           int(g.VerificationLevel),
	}
	for _, r := range g.Roles {
		guild.Roles = append(guild.Roles, roleFrom(r))
	}
	for _, em := range g.Emojis {
		guild.Emojis = append(guild.Emojis, emojiFrom(em))
	}
	for _, m := range members {
		guild.Members = append(guild.Members, memberFrom(m, g.ID))
	}
	for _, ch := range channels {
		if converted := channelFrom(ch); converted != nil {
			guild.Channels = append(guild.Channels, converted)
		}
	}
	return guild
}

// channelFrom maps a gateway channel onto its stored kind. Threads and
// forums have no stored form and come back nil.
func channelFrom(ch discord.GuildChannel) event.Channel {
	switch ch.Type() {
	case discord.ChannelTypeGuildCategory:
		return event.CategoryChannel{
			ID:       ch.ID(),
			GuildID:  ch.GuildID(),
			Name:     ch.Name(),
			Position: ch.Position(),
		}
	case discord.ChannelTypeGuildText, discord.ChannelTypeGuildNews:
		return event.TextChannel{
			ID:       ch.ID(),
			GuildID:  ch.GuildID(),
			Name:     ch.Name(),
			ParentID: ch.ParentID(),
			Position: ch.Position(),
		}
	case discord.ChannelTypeGuildVoice:
		return event.VoiceChannel{
			ID:       ch.ID(),
			GuildID:  ch.GuildID(),
			Name:     ch.Name(),
			ParentID: ch.ParentID(),
			Position: ch.Position(),
		}
	case discord.ChannelTypeGuildStageVoice:
		return event.StageChannel{
			ID:       ch.ID(),
			GuildID:  ch.GuildID(),
			Name:     ch.Name(),
			ParentID: ch.ParentID(),
			Position: ch.Position(),
		}
	default:
		return nil
	}
}
