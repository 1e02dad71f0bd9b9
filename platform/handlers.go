package platform

import (
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/event"
	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

type handlers struct {
	cache *cache.Cache
}

func (h *handlers) process(evt event.Event) {
	if err := h.cache.Process(context.Background(), evt); err != nil {
		dlog.Error("Failed to project dispatch", "kind", evt.Kind(), "error", err)
	}
}

// hydrate rebuilds a full guild snapshot over REST and projects it as a
// guild-create. The gateway stub on ready carries no collections, so
// roles and emojis come from the guild fetch and members and channels
// from their own endpoints. A failed guild fetch drops the snapshot;
// failed collection fetches degrade to a partial one.
func (h *handlers) hydrate(client bot.Client, guildID snowflake.ID) {
	guild, err := client.Rest().GetGuild(guildID, false)
	if err != nil {
		dlog.Error("Failed to fetch guild", "guild", guildID, "error", err)
		return
	}
	members, err := client.Rest().GetMembers(guild.ID, 1000, snowflake.MustParse("0"))
	if err != nil {
		dlog.Error("Failed to fetch members", "guild", guild.ID, "error", err)
	}
	channels, err := client.Rest().GetGuildChannels(guild.ID)
	if err != nil {
		dlog.Error("Failed to fetch channels", "guild", guild.ID, "error", err)
	}
	h.process(&event.GuildCreate{Guild: guildFrom(guild, members, channels)})
}

func (h *handlers) ready(e *events.Ready) {
	dlog.Debug("Starting ready hydration", "guilds", len(e.Guilds))
	h.process(readyFrom(e.EventReady))
	for _, stub := range e.Guilds {
		h.hydrate(e.Client(), stub.ID)
	}
	dlog.Debug("Finished ready hydration")
}

func (h *handlers) guildJoin(e *events.GuildJoin) {
	h.hydrate(e.Client(), e.GuildID)
}

func (h *handlers) guildAvailable(e *events.GuildAvailable) {
	h.hydrate(e.Client(), e.GuildID)
}

func (h *handlers) guildUpdate(e *events.GuildUpdate) {
	h.process(guildUpdateFrom(e.Guild))
}

func (h *handlers) guildLeave(e *events.GuildLeave) {
	h.process(&event.GuildDelete{ID: e.GuildID})
}

func (h *handlers) guildUnavailable(e *events.GuildUnavailable) {
	h.process(&event.GuildDelete{ID: e.GuildID, Unavailable: true})
}

func (h *handlers) channelCreate(e *events.GuildChannelCreate) {
	if ch := channelFrom(e.Channel); ch != nil {
		h.process(&event.ChannelCreate{Channel: ch})
	}
}

func (h *handlers) channelUpdate(e *events.GuildChannelUpdate) {
	if ch := channelFrom(e.Channel); ch != nil {
		h.process(&event.ChannelUpdate{Channel: ch})
	}
}

func (h *handlers) channelDelete(e *events.GuildChannelDelete) {
	if ch := channelFrom(e.Channel); ch != nil {
		h.process(&event.ChannelDelete{Channel: ch})
	}
}

func (h *handlers) pinsUpdate(e *events.GuildChannelPinsUpdate) {
	guildID := e.GuildID
	h.process(&event.ChannelPinsUpdate{
		ChannelID:        e.ChannelID,
		GuildID:          &guildID,
		LastPinTimestamp: e.NewLastPinTimestamp,
	})
}

func (h *handlers) memberJoin(e *events.GuildMemberJoin) {
	h.process(&event.MemberAdd{Member: memberFrom(e.Member, e.GuildID)})
}

func (h *handlers) memberUpdate(e *events.GuildMemberUpdate) {
	h.process(&event.MemberUpdate{
		GuildID:      e.GuildID,
		User:         userFrom(e.Member.User),
		Nick:         e.Member.Nick,
		PremiumSince: e.Member.PremiumSince,
		RoleIDs:      e.Member.RoleIDs,
	})
}

func (h *handlers) memberLeave(e *events.GuildMemberLeave) {
	h.process(&event.MemberRemove{GuildID: e.GuildID, User: userFrom(e.User)})
}

func (h *handlers) messageCreate(e *events.GuildMessageCreate) {
	h.process(&event.MessageCreate{Message: messageFrom(e.Message)})
}

func (h *handlers) messageDelete(e *events.GuildMessageDelete) {
	guildID := e.GuildID
	h.process(&event.MessageDelete{ID: e.MessageID, ChannelID: e.ChannelID, GuildID: &guildID})
}

func (h *handlers) dmMessageCreate(e *events.DMMessageCreate) {
	h.process(&event.MessageCreate{Message: messageFrom(e.Message)})
}

func (h *handlers) dmMessageDelete(e *events.DMMessageDelete) {
	h.process(&event.MessageDelete{ID: e.MessageID, ChannelID: e.ChannelID})
}

func (h *handlers) banAdd(e *events.GuildBan) {
	h.process(&event.BanAdd{GuildID: e.GuildID, User: userFrom(e.User)})
}

func (h *handlers) banRemove(e *events.GuildUnban) {
	h.process(&event.BanRemove{GuildID: e.GuildID, User: userFrom(e.User)})
}
