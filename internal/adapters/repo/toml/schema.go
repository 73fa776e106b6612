package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int         `toml:"version"`
	SavedAt string      `toml:"saved_at,omitempty"`
	User    *userSchema `toml:"user,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type userSchema struct {
	ID        int64  `toml:"id"`
	Username  string `toml:"username"`
	Email     string `toml:"email"`
	Role      string `toml:"role"`
	AvatarURL string `toml:"avatar_url,omitempty"`
	CreatedAt string `toml:"created_at,omitempty"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}
