package event

import "github.com/disgoorg/snowflake/v2"

// VoiceState is the wire form of a user's voice connection state. A
// nil ChannelID means the user left voice entirely.
type VoiceState struct {
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
