package upstream

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Chatbot is the conversational service. It may live on a different host than the rest of the API.
type Chatbot struct {
	client *Client
}

func NewChatbot(client *Client) *Chatbot {
	return &Chatbot{client: client}
}

type ChatTextResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type ChatImageResponse struct {
	PredictedPlace string  `json:"predicted_place"`
	Confidence     float64 `json:"confidence"`
	Response       string  `json:"response"`
}

type Event struct {
	Content  string `json:"content"`
	Metadata struct {
		Date     string `json:"date,omitempty"`
		Location string `json:"location,omitempty"`
		Category string `json:"category,omitempty"`
	} `json:"metadata"`
}

type EventSearchResponse struct {
	Events   []Event `json:"events"`
	Response string  `json:"response"`
}

func (b *Chatbot) SendText(ctx context.Context, message, sessionID string) (*ChatTextResponse, error) {
	in := struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}{Message: message, SessionID: sessionID}

	var out ChatTextResponse
	if err := b.client.sendJSON(ctx, "chat.text", http.MethodPost, "/api/chat/text", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Chatbot) UploadImage(ctx context.Context, filename string, file io.Reader, sessionID string) (*ChatImageResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "chat.image", err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "chat.image", err: err}
	}
	if err := w.WriteField("session_id", sessionID); err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "chat.image", err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "chat.image", err: err}
	}

	var out ChatImageResponse
	req := request{
		op:          "chat.image",
		method:      http.MethodPost,
		path:        "/api/chat/image",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}
	if err := b.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Chatbot) ClearSession(ctx context.Context, sessionID string) error {
	return b.client.sendJSON(ctx, "chat.clear", http.MethodDelete, "/api/chat/session/"+url.PathEscape(sessionID), "", nil, nil)
}

func (b *Chatbot) SearchEvents(ctx context.Context, query string, topK int) (*EventSearchResponse, error) {
	in := struct {
		Query string `json:"query"`
		TopK  int    `json:"top_k"`
	}{Query: query, TopK: topK}

	var out EventSearchResponse
	if err := b.client.sendJSON(ctx, "events.search", http.MethodPost, "/api/events/search", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
