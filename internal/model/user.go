package model

import "time"

// User is an account on the platform. ID is assigned by the caller, never by the store.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	University      *string   `json:"university"`
	IsVerified      bool      `json:"isVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewUser holds the fields required to register a user.
type NewUser struct {
	ID         string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	University string
}

// UserUpsert is a partial user record. Nil fields are left untouched on update.
type UserUpsert struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	University      *string
}

// Apply merges the upsert onto existing (nil when the user does not exist yet) and returns the resulting record.
// CreatedAt is kept from existing; UpdatedAt is always set to now.
func (u UserUpsert) Apply(existing *User, now time.Time) User {
	var out User
	if existing != nil {
		out = *existing
	} else {
		out = User{ID: u.ID, CreatedAt: now}
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.FirstName != nil {
		out.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		out.LastName = *u.LastName
	}
	if u.ProfileImageURL != nil {
		out.ProfileImageURL = u.ProfileImageURL
	}
	if u.University != nil {
		out.University = u.University
	}
	out.UpdatedAt = now
	return out
}
