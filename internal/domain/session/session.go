package session

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidGuestID = errors.New("invalid guest session id")

const (
	guestNamespace = "guest:"
	userNamespace  = "user:"

	claimLedgerSuffix   = "claimed_rewards"
	chatSessionSuffix   = "chatbot_session_id"
	chatMessagesSegment = "chat_messages:"
)

// Session is the per-browser state the service keeps track of. The access token's presence is
// the only authentication signal; the guest id scopes locally persisted data.
type Session struct {
	GuestID string
	Token   string
	UserID  string
}

func NewGuestID() string {
	return uuid.NewString()
}

// ParseGuestID accepts only canonical UUIDs so cookie values can't reach into other key spaces.
func ParseGuestID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidGuestID
	}
	return id.String(), nil
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// ClaimLedgerKey is where the unauthenticated claim ledger lives.
func (s Session) ClaimLedgerKey() string {
	return s.guestPrefix() + claimLedgerSuffix
}

func (s Session) ChatSessionKey() string {
	return s.chatPrefix() + chatSessionSuffix
}

func (s Session) ChatMessagesKey(chatSessionID string) string {
	return s.chatPrefix() + chatMessagesSegment + chatSessionID
}

// ScopedPrefixes lists every key prefix owned by this session; logout deletes them all.
func (s Session) ScopedPrefixes() []string {
	prefixes := []string{s.guestPrefix()}
	if s.UserID != "" {
		prefixes = append(prefixes, s.userPrefix())
	}
	return prefixes
}

// WithoutCredential drops the token and identity, keeping the guest scope.
func (s Session) WithoutCredential() Session {
	return Session{GuestID: s.GuestID}
}

func (s Session) chatPrefix() string {
	if s.Authenticated() && s.UserID != "" {
		return s.userPrefix()
	}
	return s.guestPrefix()
}

func (s Session) guestPrefix() string {
	return guestNamespace + s.GuestID + ":"
}

func (s Session) userPrefix() string {
	return userNamespace + s.UserID + ":"
}
