package entity

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// VoiceState is the stored form of a user's voice connection state in
// a guild. A nil ChannelID means the user is not in voice.
type VoiceState struct {
	GuildID    snowflake.ID  `json:"guild_id"`
	UserID     snowflake.ID  `json:"user_id"`
	ChannelID  *snowflake.ID `json:"channel_id"`
	SessionID  string        `json:"session_id"`
	Deaf       bool          `json:"deaf"`
	Mute       bool          `json:"mute"`
	SelfDeaf   bool          `json:"self_deaf"`
	SelfMute   bool          `json:"self_mute"`
	SelfStream bool          `json:"self_stream"`
	Suppress   bool          `json:"suppress"`
}

func (v VoiceState) Key() VoiceStateKey {
	return VoiceStateKey{GuildID: v.GuildID, UserID: v.UserID}
}

// NewVoiceState converts a wire voice state into its stored form.
// Voice states arrive without their guild id inside snapshots, so the
// caller supplies it.
func NewVoiceState(v event.VoiceState, guildID snowflake.ID) VoiceState {
	return VoiceState{
		GuildID:    guildID,
		UserID:     v.UserID,
		ChannelID:  v.ChannelID,
		SessionID:  v.SessionID,
		Deaf:       v.Deaf,
		Mute:       v.Mute,
		SelfDeaf:   v.SelfDeaf,
		SelfMute:   v.SelfMute,
		SelfStream: v.SelfStream,
		Suppress:   v.Suppress,
	}
}
