package auth

import (
	"time"

	"github.com/quotedesk/quotedesk/internal/users"
)

// Token is an opaque bearer credential issued at login.
type Token struct {
	Value     string    `json:"token"`
	UserID    int64     `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Profile is the public view of the signed-in user.
type Profile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Profile   `json:"user"`
}

func profileOf(u *users.User) Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Username: u.Username, Phone: u.Phone}
}
