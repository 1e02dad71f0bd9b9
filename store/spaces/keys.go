package spaces

import (
	"fmt"
	"path"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/entity"
)

// Object keys. Records addressable by one id get a flat key; records
// keyed inside a parent live under the parent's prefix. Markers are
// extra objects under a parent prefix that exist only to be listed.

func guildKey(id snowflake.ID) string { return "guilds/" + id.String() + ".json" }

func guildPrefix(id snowflake.ID) string { return "guilds/" + id.String() + "/" }

func channelKey(kind entity.ChannelKind, id snowflake.ID) string {
	return "channels/" + string(kind) + "/" + id.String() + ".json"
}

// Channel markers carry the kind in the key itself so a listing never
// has to read the marker bodies.
func channelMarkerKey(guildID snowflake.ID, kind entity.ChannelKind, id snowflake.ID) string {
	return guildPrefix(guildID) + "channels/" + id.String() + "." + string(kind)
}

func roleKey(id snowflake.ID) string { return "roles/" + id.String() + ".json" }

func roleMarkerKey(guildID, id snowflake.ID) string {
	return guildPrefix(guildID) + "roles/" + id.String()
}

func emojiKey(k entity.EmojiKey) string {
	return guildPrefix(k.GuildID) + "emojis/" + k.EmojiID.String() + ".json"
}

func memberKey(k entity.MemberKey) string {
	return guildPrefix(k.GuildID) + "members/" + k.UserID.String() + ".json"
}

// Member markers under the user make the user's guild listing a
// prefix scan.
func memberMarkerKey(k entity.MemberKey) string {
	return "users/" + k.UserID.String() + "/guilds/" + k.GuildID.String()
}

func presenceKey(k entity.PresenceKey) string {
	return guildPrefix(k.GuildID) + "presences/" + k.UserID.String() + ".json"
}

func voiceStateKey(k entity.VoiceStateKey) string {
	return guildPrefix(k.GuildID) + "voice-states/" + k.UserID.String() + ".json"
}

func userKey(id snowflake.ID) string { return "users/" + id.String() + ".json" }

func currentUserKey(id snowflake.ID) string { return "current-user/" + id.String() + ".json" }

func groupKey(id snowflake.ID) string { return "groups/" + id.String() + ".json" }

func privateChannelKey(id snowflake.ID) string {
	return "private-channels/" + id.String() + ".json"
}

func messageKey(id snowflake.ID) string { return "messages/" + id.String() + ".json" }

func attachmentKey(id snowflake.ID) string { return "attachments/" + id.String() + ".json" }

// Attachment markers carry the full record so the message's listing
// yields entities without touching the flat objects.
func attachmentMarkerKey(messageID, id snowflake.ID) string {
	return "messages/" + messageID.String() + "/attachments/" + id.String() + ".json"
}

// idFromKey parses the snowflake that names the object, dropping the
// .json extension when present.
func idFromKey(key string) (snowflake.ID, error) {
	name := strings.TrimSuffix(path.Base(key), ".json")
	return snowflake.Parse(name)
}

// channelFromKey parses a channel marker key's "<id>.<kind>" basename.
func channelFromKey(key string) (entity.GuildChannel, error) {
	name := path.Base(key)
	rawID, rawKind, found := strings.Cut(name, ".")
	if !found {
		return entity.GuildChannel{}, fmt.Errorf("malformed channel marker key %q", key)
	}
	id, err := snowflake.Parse(rawID)
	if err != nil {
		return entity.GuildChannel{}, err
	}
	return entity.GuildChannel{ID: id, Kind: entity.ChannelKind(rawKind)}, nil
}
