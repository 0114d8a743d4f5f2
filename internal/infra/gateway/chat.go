package gateway

import (
	"context"

	"stamp-rally/internal/infra/upstream"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
)

type Chat struct {
	bot *upstream.Chatbot
}

func NewChat(bot *upstream.Chatbot) *Chat {
	return &Chat{bot: bot}
}

func (g *Chat) SendText(ctx context.Context, message, chatSessionID string) (string, error) {
	resp, err := g.bot.SendText(ctx, message, chatSessionID)
	if err != nil {
		return "", errs.Wrap(upstream.Classify(err, nil), "send chat message")
	}
	return resp.Response, nil
}

func (g *Chat) RecognizeImage(ctx context.Context, upload readmodel.ImageUpload, chatSessionID string) (*readmodel.Recognition, error) {
	resp, err := g.bot.UploadImage(ctx, upload.Filename, upload.Content, chatSessionID)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "recognize image")
	}
	return &readmodel.Recognition{
		PredictedPlace: resp.PredictedPlace,
		Confidence:     resp.Confidence,
		Response:       resp.Response,
	}, nil
}

func (g *Chat) ClearSession(ctx context.Context, chatSessionID string) error {
	if err := g.bot.ClearSession(ctx, chatSessionID); err != nil {
		return errs.Wrap(upstream.Classify(err, nil), "clear chat session")
	}
	return nil
}

func (g *Chat) SearchEvents(ctx context.Context, query string, topK int) (*readmodel.EventSearch, error) {
	resp, err := g.bot.SearchEvents(ctx, query, topK)
	if err != nil {
		return nil, errs.Wrap(upstream.Classify(err, nil), "search events")
	}

	out := &readmodel.EventSearch{Response: resp.Response, Events: make([]readmodel.Event, 0, len(resp.Events))}
	for _, e := range resp.Events {
		out.Events = append(out.Events, readmodel.Event{
			Content:  e.Content,
			Date:     e.Metadata.Date,
			Location: e.Metadata.Location,
			Category: e.Metadata.Category,
		})
	}
	return out, nil
}
