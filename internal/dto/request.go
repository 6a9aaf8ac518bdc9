package dto

import "github.com/google/uuid"

type SignUp struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Refresh struct {
	RefreshToken string `json:"refresh_token"`
}

type CreatePost struct {
	Content string `json:"content"`
}

type CreateReaction struct {
	Type string `json:"type"`
}

type SetPrivacy struct {
	Private bool `json:"private"`
}

// SendMessage is the payload read from a chat websocket connection.
type SendMessage struct {
	To      uuid.UUID `json:"to"`
	Content string    `json:"content"`
}
