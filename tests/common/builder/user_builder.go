//go:build unit || e2e

package builder

import (
	"time"

	"stamp-rally/internal/usecase/readmodel"
)

type UserBuilder struct {
	ID        int
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        42,
		Username:  "walker",
		Email:     "walker@example.com",
		IsActive:  true,
		CreatedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildReadModel() *readmodel.User {
	return &readmodel.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func (u *UserBuilder) BuildLoginResult(token string) *readmodel.LoginResult {
	return &readmodel.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *u.BuildReadModel(),
	}
}

// BuildUpstream is the user object as the auth service serializes it.
func (u *UserBuilder) BuildUpstream() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
