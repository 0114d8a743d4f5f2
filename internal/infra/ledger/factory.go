package ledger

import (
	"log/slog"
	"time"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/infra/kvstore"
	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/usecase/shared"
)

type Factory struct {
	client *upstream.Client
	store  kvstore.Store
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger
}

func NewFactory(client *upstream.Client, store kvstore.Store, clk clock.Clock, loc *time.Location, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{client: client, store: store, clock: clk, loc: loc, logger: logger}
}

// For returns the remote ledger when the session holds a token and the local one otherwise.
func (f *Factory) For(sess session.Session) shared.Ledger {
	if sess.Authenticated() {
		return NewRemote(f.client, sess.Token, f.clock, f.loc, f.logger)
	}
	return NewLocal(f.store, sess.ClaimLedgerKey(), f.clock, f.logger)
}
