package chat

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message must not be empty")

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// MaxHistory bounds the stored transcript per chat session; oldest messages drop first.
const MaxHistory = 200

const GreetingText = "Welcome to the Paju publishing district! Ask me about places to visit, " +
	"or send a photo of a landmark to collect a stamp."

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ImageName *string   `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(role Role, content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
}

func Greeting(now time.Time) Message {
	return NewMessage(RoleBot, GreetingText, now)
}

// ValidateText trims input and rejects blank messages.
func ValidateText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyMessage
	}
	return text, nil
}

// History is an append-only transcript capped at MaxHistory.
type History []Message

func (h History) Append(msgs ...Message) History {
	out := append(h, msgs...)
	if len(out) > MaxHistory {
		out = out[len(out)-MaxHistory:]
	}
	return out
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID returns ids shaped like user_<unix millis>_<9 base36 chars>, the format the
// chatbot service already keys its conversations by.
func NewSessionID(now time.Time) string {
	var b strings.Builder
	for range 9 {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), b.String())
}

// RecognitionReply renders an image recognition result as a bot message body.
func RecognitionReply(place string, confidence float64, response string) string {
	if place == "" {
		return response
	}
	header := fmt.Sprintf("Recognized: %s (%.0f%%)", place, confidence*100)
	if response == "" {
		return header
	}
	return header + "\n" + response
}
