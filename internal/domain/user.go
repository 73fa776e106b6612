package domain

import "time"

const (
	RoleUser = "user"
	RoleRoot = "root"
)

type User struct {
	ID        uint      `json:"id" toml:"id"`
	Username  string    `json:"username" toml:"username"`
	Email     string    `json:"email" toml:"email"`
	Role      string    `json:"role" toml:"role"`
	AvatarURL string    `json:"avatar_url" toml:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" toml:"updated_at"`
}

// IsRoot reports whether the user may manage the catalog.
func (u User) IsRoot() bool {
	return u.Role == RoleRoot
}
