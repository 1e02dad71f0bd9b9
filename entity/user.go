package entity

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/event"
)

// User is the stored form of a Discord user. Users are global; guild
// membership is tracked by Member records, not here.
type User struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator"`
	Avatar        *string      `json:"avatar"`
	Bot           bool         `json:"bot"`
	Email         *string      `json:"email"`
	Flags         *int         `json:"flags"`
	Locale        *string      `json:"locale"`
	MFAEnabled    *bool        `json:"mfa_enabled"`
	PremiumType   *int         `json:"premium_type"`
	PublicFlags   *int         `json:"public_flags"`
	System        *bool        `json:"system"`
	Verified      *bool        `json:"verified"`
}

func (u User) Key() snowflake.ID { return u.ID }

// NewUser converts a wire user into its stored form.
func NewUser(u event.User) User {
	return User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
		Bot:           u.Bot,
		Email:         u.Email,
		Flags:         u.Flags,
		Locale:        u.Locale,
		MFAEnabled:    u.MFAEnabled,
		PremiumType:   u.PremiumType,
		PublicFlags:   u.PublicFlags,
		System:        u.System,
		Verified:      u.Verified,
	}
}

// CurrentUser is the stored form of the authenticated user delivered
// on ready. There is at most one.
type CurrentUser struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator"`
	Avatar        *string      `json:"avatar"`
	Bot           bool         `json:"bot"`
	Email         *string      `json:"email"`
	MFAEnabled    bool         `json:"mfa_enabled"`
	Verified      *bool        `json:"verified"`
}

func (u CurrentUser) Key() snowflake.ID { return u.ID }

// NewCurrentUser converts the ready payload's user into its stored
// form.
func NewCurrentUser(u event.User) CurrentUser {
	mfa := false
	if u.MFAEnabled != nil {
		mfa = *u.MFAEnabled
	}

	return CurrentUser{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
		Bot:           u.Bot,
		Email:         u.Email,
		MFAEnabled:    mfa,
		Verified:      u.Verified,
	}
}
