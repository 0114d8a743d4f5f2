package gateway

import (
	"context"
	"time"

	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"

	"github.com/jinzhu/copier"
)

type Images struct {
	client *upstream.Client
	loc    *time.Location
}

func NewImages(client *upstream.Client, loc *time.Location) *Images {
	return &Images{client: client, loc: loc}
}

func (g *Images) List(ctx context.Context, token string) ([]readmodel.Image, error) {
	resp, err := g.client.Images(ctx, token)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "list images")
	}

	images := make([]readmodel.Image, 0, len(resp.Images))
	for _, img := range resp.Images {
		var out readmodel.Image
		if err := copier.CopyWithOption(&out, &img, copyOptions(g.loc)); err != nil {
			return nil, errs.Wrap(err, "map image")
		}
		images = append(images, out)
	}
	return images, nil
}

func (g *Images) Delete(ctx context.Context, token string, imageID int) error {
	if err := g.client.DeleteImage(ctx, token, imageID); err != nil {
		return errs.Wrapf(upstream.Classify(err, nil), "delete image %d", imageID)
	}
	return nil
}
