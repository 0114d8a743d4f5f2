package commands

import (
	"context"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/shared"
)

type ImageCommands interface {
	Delete(ctx context.Context, sess session.Session, imageID int) error
}

type imageCommandsImpl struct {
	images shared.ImageGateway
}

func NewImageCommands(images shared.ImageGateway) ImageCommands {
	return &imageCommandsImpl{images: images}
}

func (c *imageCommandsImpl) Delete(ctx context.Context, sess session.Session, imageID int) error {
	if !sess.Authenticated() {
		return errs.ErrAuthRequired
	}
	if imageID <= 0 {
		return errs.Mark(errs.Newf("invalid image id %d", imageID), errs.ErrInvalidInput)
	}
	return c.images.Delete(ctx, sess.Token, imageID)
}
