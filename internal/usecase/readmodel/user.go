package readmodel

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	User        User
}
