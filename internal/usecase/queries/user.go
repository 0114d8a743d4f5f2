package queries

import (
	"context"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"
)

type UserQueries interface {
	// Me fails with errs.ErrAuthExpired when the authority no longer accepts the token.
	Me(ctx context.Context, sess session.Session) (*readmodel.User, error)
}

type userQueriesImpl struct {
	auth shared.AuthGateway
}

func NewUserQueries(auth shared.AuthGateway) UserQueries {
	return &userQueriesImpl{auth: auth}
}

func (q *userQueriesImpl) Me(ctx context.Context, sess session.Session) (*readmodel.User, error) {
	if !sess.Authenticated() {
		return nil, errs.ErrAuthRequired
	}
	return q.auth.Me(ctx, sess.Token)
}
