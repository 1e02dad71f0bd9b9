// Package platform binds a Discord gateway session to the cache. Every
// dispatch the projector models is translated to its wire form and
// handed to Cache.Process. Disgo's own caches stay off; the cache owns
// all state.
package platform

import (
	"os"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	discache "github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/gateway"
	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/cache"
	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

// Setup connects to the gateway with the token from the TOKEN
// environment variable and projects every dispatch onto c. The
// returned client is open; hand it to Close on shutdown.
func Setup(c *cache.Cache) (bot.Client, error) {
	h := &handlers{cache: c}
	client, err := disgo.New(os.Getenv("TOKEN"),
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentsNonPrivileged,
				gateway.IntentMessageContent,
				gateway.IntentGuildMembers,
				gateway.IntentGuildMessages,
				gateway.IntentDirectMessages,
				gateway.IntentGuildVoiceStates,
			),
		),
		bot.WithCacheConfigOpts(
			discache.WithCaches(discache.FlagsNone),
		),

		bot.WithEventListenerFunc(h.ready),
		bot.WithEventListenerFunc(h.guildJoin),
		bot.WithEventListenerFunc(h.guildAvailable),
		bot.WithEventListenerFunc(h.guildUpdate),
		bot.WithEventListenerFunc(h.guildLeave),
		bot.WithEventListenerFunc(h.guildUnavailable),

		bot.WithEventListenerFunc(h.channelCreate),
		bot.WithEventListenerFunc(h.channelUpdate),
		bot.WithEventListenerFunc(h.channelDelete),
		bot.WithEventListenerFunc(h.pinsUpdate),

		bot.WithEventListenerFunc(h.memberJoin),
		bot.WithEventListenerFunc(h.memberUpdate),
		bot.WithEventListenerFunc(h.memberLeave),

		bot.WithEventListenerFunc(h.messageCreate),
		bot.WithEventListenerFunc(h.messageDelete),
		bot.WithEventListenerFunc(h.dmMessageCreate),
		bot.WithEventListenerFunc(h.dmMessageDelete),

		bot.WithEventListenerFunc(h.banAdd),
		bot.WithEventListenerFunc(h.banRemove),
	)
	if err != nil {
		return nil, err
	}
	if err = client.OpenGateway(context.TODO()); err != nil {
		return nil, err
	}
	dlog.Info("Connected to gateway")
	return client, nil
}

// Close shuts the gateway session down.
func Close(client bot.Client) {
	client.Close(context.TODO())
	dlog.Info("disgo closed successfully")
}
