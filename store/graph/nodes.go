package graph

// One node per stored record. Key fields identify the node in MATCH
// and MERGE patterns; Data carries the record json. Field tags stay
// camelCase so decoded properties map back by name.

type Guild struct {
	Id   string `json:"id"`
	Data string `json:"data"`
}

// GuildChannel is embedded by all four guild channel nodes so they
// share one label, which is what the guild cascade listing matches.
type GuildChannel struct {
	GuildId string `json:"guildId"`
	Kind    string `json:"kind"`
}

type CategoryChannel struct {
	GuildChannel
	Id   string `json:"id"`
	Data string `json:"data"`
}

type TextChannel struct {
	GuildChannel
	Id   string `json:"id"`
	Data string `json:"data"`
}

type VoiceChannel struct {
	GuildChannel
	Id   string `json:"id"`
	Data string `json:"data"`
}

type StageChannel struct {
	GuildChannel
	Id   string `json:"id"`
	Data string `json:"data"`
}

type Group struct {
	Id   string `json:"id"`
	Data string `json:"data"`
}

type PrivateChannel struct {
	Id   string `json:"id"`
	Data string `json:"data"`
}

type Role struct {
	Id      string `json:"id"`
	GuildId string `json:"guildId"`
	Data    string `json:"data"`
}

type Emoji struct {
	Id      string `json:"id"`
	GuildId string `json:"guildId"`
	Data    string `json:"data"`
}

type Member struct {
	UserId  string `json:"userId"`
	GuildId string `json:"guildId"`
	Data    string `json:"data"`
}

type Presence struct {
	UserId  string `json:"userId"`
	GuildId string `json:"guildId"`
	Data    string `json:"data"`
}

type VoiceState struct {
	UserId  string `json:"userId"`
	GuildId string `json:"guildId"`
	Data    string `json:"data"`
}

type User struct {
	Id   string `json:"id"`
	Data string `json:"data"`
}

type CurrentUser struct {
	Id   string `json:"id"`
	Data string `json:"data"`
}

type Message struct {
	Id        string `json:"id"`
	ChannelId string `json:"channelId"`
	Data      string `json:"data"`
}

type Attachment struct {
	Id        string `json:"id"`
	MessageId string `json:"messageId"`
	Data      string `json:"data"`
}
