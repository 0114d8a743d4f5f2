package response

import (
	"time"

	"stamp-rally/internal/domain/chat"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/readmodel"
)

type MessageResponse struct {
	ID        string    `json:"id"`
	Role      chat.Role `json:"role"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversationResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
}

type ExchangeResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
	Degraded  bool              `json:"degraded"`
}

type EventResponse struct {
	Content  string `json:"content"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Category string `json:"category"`
}

type EventSearchResponse struct {
	Events   []EventResponse `json:"events"`
	Response string          `json:"response"`
}

func FromConversation(c *commands.Conversation) ConversationResponse {
	return ConversationResponse{SessionID: c.SessionID, Messages: fromMessages(c.Messages)}
}

func FromExchange(e *commands.Exchange) ExchangeResponse {
	return ExchangeResponse{SessionID: e.SessionID, Messages: fromMessages(e.Appended), Degraded: e.Degraded}
}

func FromEventSearch(s *readmodel.EventSearch) EventSearchResponse {
	res := EventSearchResponse{Events: make([]EventResponse, 0, len(s.Events)), Response: s.Response}
	for _, e := range s.Events {
		res.Events = append(res.Events, EventResponse(e))
	}
	return res
}

func fromMessages(msgs []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			Image:     m.ImageName,
			Timestamp: m.Timestamp,
		})
	}
	return out
}
