package commands

import (
	"context"
	"log/slog"
	"strings"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrInvalidSignup      = errs.New("invalid signup")
)

type AuthCommands interface {
	Signup(ctx context.Context, in readmodel.SignupInput) (*readmodel.User, error)
	Login(ctx context.Context, username, password string) (*readmodel.LoginResult, error)
	// Logout removes every key the session owns. Cookies are the handler's concern.
	Logout(ctx context.Context, sess session.Session) error
}

type authCommandsImpl struct {
	auth   shared.AuthGateway
	store  shared.KVStore
	logger *slog.Logger
}

func NewAuthCommands(auth shared.AuthGateway, store shared.KVStore, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{auth: auth, store: store, logger: logger}
}

func (a *authCommandsImpl) Signup(ctx context.Context, in readmodel.SignupInput) (*readmodel.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Password == "" {
		return nil, errs.Mark(errs.New("username and password are required"), ErrInvalidSignup)
	}

	u, err := a.auth.Signup(ctx, in)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidInput) {
			return nil, errs.Mark(err, ErrInvalidSignup)
		}
		return nil, err
	}
	return u, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, username, password string) (*readmodel.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.Mark(errs.New("username and password are required"), ErrInvalidCredentials)
	}

	res, err := a.auth.Login(ctx, username, password)
	if err != nil {
		// the auth service answers bad credentials with 401 or 400
		if errs.Is(err, errs.ErrAuthExpired) || errs.Is(err, errs.ErrInvalidInput) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, err
	}
	return res, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, sess session.Session) error {
	total := 0
	for _, prefix := range sess.ScopedPrefixes() {
		n, err := a.store.DeletePrefix(ctx, prefix)
		if err != nil {
			return errs.Mark(errs.Wrapf(err, "delete session keys %s", prefix), errs.ErrStorageFailed)
		}
		total += n
	}
	a.logger.Info("Session cleared", slog.String("guest_id", sess.GuestID), slog.Int("deleted_keys", total))
	return nil
}
