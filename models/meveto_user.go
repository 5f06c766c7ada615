package models

import (
	"time"
)

// MevetoUser tracks the Meveto login state of a local user
type MevetoUser struct {
	ID             int64      `json:"id" db:"id"`
	UserIdentifier string     `json:"user_identifier" db:"user_identifier"`
	LastLoggedIn   *time.Time `json:"last_logged_in,omitempty" db:"last_logged_in"`
	LastLoggedOut  *time.Time `json:"last_logged_out,omitempty" db:"last_logged_out"`
	IsLoggedIn     bool       `json:"is_logged_in" db:"is_logged_in"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// LoggedOutSince reports whether the user logged out after t. Sessions
// started before a remote logout are no longer valid.
func (u *MevetoUser) LoggedOutSince(t time.Time) bool {
	if u.IsLoggedIn || u.LastLoggedOut == nil {
		return false
	}
	return u.LastLoggedOut.After(t)
}
