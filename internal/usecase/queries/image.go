package queries

import (
	"context"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"
)

type ImageQueries interface {
	List(ctx context.Context, sess session.Session) ([]readmodel.Image, error)
}

type imageQueriesImpl struct {
	images shared.ImageGateway
}

func NewImageQueries(images shared.ImageGateway) ImageQueries {
	return &imageQueriesImpl{images: images}
}

func (q *imageQueriesImpl) List(ctx context.Context, sess session.Session) ([]readmodel.Image, error) {
	if !sess.Authenticated() {
		return nil, errs.ErrAuthRequired
	}
	return q.images.List(ctx, sess.Token)
}
