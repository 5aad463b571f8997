package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SetPassword hashes the plaintext password and stores the hash.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate))
	return err == nil
}

// PublicUser is the projection returned to clients. The password hash never
// leaves the server.
type PublicUser struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	AvatarURL *string  `json:"avatarUrl,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}
