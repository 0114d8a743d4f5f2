package gateway

import (
	"context"
	"time"

	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"

	"github.com/jinzhu/copier"
)

type Auth struct {
	client *upstream.Client
	loc    *time.Location
}

func NewAuth(client *upstream.Client, loc *time.Location) *Auth {
	return &Auth{client: client, loc: loc}
}

func (a *Auth) Signup(ctx context.Context, in readmodel.SignupInput) (*readmodel.User, error) {
	u, err := a.client.Signup(ctx, upstream.SignupRequest{Username: in.Username, Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "signup")
	}
	return a.toUser(*u)
}

func (a *Auth) Login(ctx context.Context, username, password string) (*readmodel.LoginResult, error) {
	resp, err := a.client.Login(ctx, upstream.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "login")
	}
	if resp.AccessToken == "" {
		return nil, errs.Mark(errs.New("login response without access token"), errs.ErrRemoteUnavailable)
	}

	u, err := a.toUser(resp.User)
	if err != nil {
		return nil, err
	}
	return &readmodel.LoginResult{AccessToken: resp.AccessToken, TokenType: resp.TokenType, User: *u}, nil
}

func (a *Auth) Me(ctx context.Context, token string) (*readmodel.User, error) {
	u, err := a.client.Me(ctx, token)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "fetch current user")
	}
	return a.toUser(*u)
}

func (a *Auth) toUser(u upstream.User) (*readmodel.User, error) {
	var out readmodel.User
	if err := copier.CopyWithOption(&out, &u, copyOptions(a.loc)); err != nil {
		return nil, errs.Wrap(err, "map user")
	}
	return &out, nil
}
