package queries

import (
	"context"
	"strings"

	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"
)

const (
	defaultEventTopK = 2
	maxEventTopK     = 10
)

type EventQueries interface {
	Search(ctx context.Context, query string, topK int) (*readmodel.EventSearch, error)
}

type eventQueriesImpl struct {
	chatbot shared.ChatGateway
}

func NewEventQueries(chatbot shared.ChatGateway) EventQueries {
	return &eventQueriesImpl{chatbot: chatbot}
}

func (q *eventQueriesImpl) Search(ctx context.Context, query string, topK int) (*readmodel.EventSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.Mark(errs.New("query must not be empty"), errs.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = defaultEventTopK
	}
	return q.chatbot.SearchEvents(ctx, query, min(topK, maxEventTopK))
}
