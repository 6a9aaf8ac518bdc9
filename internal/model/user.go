package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name"`
	AvatarURL    *string   `json:"avatar_url"`
	Private      bool      `json:"private"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the projection safe to return to other users:
// no email, no password hash, no privacy flag.
type UserView struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

func (u *User) View() *UserView {
	return &UserView{
		ID: u.ID,
		Username: u.Username,
		DisplayName: u.DisplayName,
		AvatarURL: u.AvatarURL,
	}
}
