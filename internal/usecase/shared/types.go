package shared

import (
	"context"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/usecase/readmodel"
)

// Ledger is the per-session source of stamp counts and claim records. One implementation asks
// the authority, the other keeps claims in the session-scoped local store.
type Ledger interface {
	StampCount(ctx context.Context) (int, error)
	// AvailableRewards returns the authority's claimability verdicts; nil when there is no authority.
	AvailableRewards(ctx context.Context) ([]reward.AuthorityFlag, error)
	ListClaims(ctx context.Context) ([]reward.ClaimRecord, error)
	Claim(ctx context.Context, rewardID int) (*reward.ClaimRecord, error)
	Source() reward.Source
}

// LedgerFactory picks the ledger strategy for a session. Selection is by token presence only.
type LedgerFactory interface {
	For(sess session.Session) Ledger
}

type ImageGateway interface {
	List(ctx context.Context, token string) ([]readmodel.Image, error)
	Delete(ctx context.Context, token string, imageID int) error
}

type AuthGateway interface {
	Signup(ctx context.Context, in readmodel.SignupInput) (*readmodel.User, error)
	Login(ctx context.Context, username, password string) (*readmodel.LoginResult, error)
	Me(ctx context.Context, token string) (*readmodel.User, error)
}

type ChatGateway interface {
	SendText(ctx context.Context, message, chatSessionID string) (string, error)
	RecognizeImage(ctx context.Context, upload readmodel.ImageUpload, chatSessionID string) (*readmodel.Recognition, error)
	ClearSession(ctx context.Context, chatSessionID string) error
	SearchEvents(ctx context.Context, query string, topK int) (*readmodel.EventSearch, error)
}

// KVStore is the session-scoped persistence used for chat state and logout cleanup.
// Get reports absent keys with an infra.KindNotFound error.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
