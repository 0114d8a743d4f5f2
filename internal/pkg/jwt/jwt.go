package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims covers the fields the auth service puts into access tokens.
type Claims struct {
	UserID   any    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns a stable per-user key: user_id when present, the subject otherwise.
func (c *Claims) Identity() string {
	switch v := c.UserID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return c.Subject
}

// Inspector reads tokens issued by the external auth service. It never issues tokens.
// With a shared secret it verifies HS256 signatures; without one it only decodes the claims,
// leaving validity to the authority.
type Inspector struct {
	secretKey []byte
	parser    *jwt.Parser
}

func NewInspector(secretKey string) *Inspector {
	var key []byte
	if secretKey != "" {
		key = []byte(secretKey)
	}
	return &Inspector{
		secretKey: key,
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (i *Inspector) Verifies() bool {
	return i.secretKey != nil
}

func (i *Inspector) Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}

	if !i.Verifies() {
		if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	token, err := i.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
