package event

import "github.com/disgoorg/snowflake/v2"

// BanAdd announces a ban. The member-remove dispatch that follows does
// the cache work; the ban itself is not stored.
type BanAdd struct {
	GuildID snowflake.ID `json:"guild_id"`
	User    User         `json:"user"`
}

// BanRemove announces a lifted ban. Nothing is stored for it.
type BanRemove struct {
	GuildID snowflake.ID `json:"guild_id"`
	User    User         `json:"user"`
}

func (*BanAdd) Kind() string    { return "GUILD_BAN_ADD" }
func (*BanRemove) Kind() string { return "GUILD_BAN_REMOVE" }

func (*BanAdd) isEvent()    {}
func (*BanRemove) isEvent() {}
