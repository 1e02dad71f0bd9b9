package entity

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"

	"github.com/fuad-daoud/discord-cache/event"
)

func TestNewUser(t *testing.T) {
	u := NewUser(event.User{
		ID:            snowflake.ID(1),
		Username:      "one",
		Discriminator: "0001",
		Avatar:        strptr("abc"),
		Bot:           true,
		PublicFlags:   intptr(64),
	})

	assert.Equal(t, snowflake.ID(1), u.Key())
	assert.Equal(t, "one", u.Username)
	assert.Equal(t, strptr("abc"), u.Avatar)
	assert.True(t, u.Bot)
	assert.Equal(t, intptr(64), u.PublicFlags)
	assert.Nil(t, u.Email)
}

func TestNewCurrentUser(t *testing.T) {
	mfa := true

	t.Run("with mfa", func(t *testing.T) {
		u := NewCurrentUser(event.User{ID: snowflake.ID(1), Username: "bot", MFAEnabled: &mfa})
		assert.True(t, u.MFAEnabled)
		assert.Equal(t, snowflake.ID(1), u.Key())
	})

	t.Run("mfa defaults false", func(t *testing.T) {
		u := NewCurrentUser(event.User{ID: snowflake.ID(1), Username: "bot"})
		assert.False(t, u.MFAEnabled)
	})
}
