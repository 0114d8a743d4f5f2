package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"stamp-rally/internal/domain/chat"
	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/infra"
	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/internal/usecase/shared"
)

const (
	apologyText     = "Sorry, something went wrong while sending your message. Please try again."
	imageUploadText = "Uploaded an image."
)

type Conversation struct {
	SessionID string
	Messages  chat.History
}

// Exchange is the outcome of one user turn. Degraded is set when the chatbot could not be
// reached; the transcript then ends with an apology instead of an answer.
type Exchange struct {
	SessionID string
	Appended  []chat.Message
	Degraded  bool
}

type ImageMessage struct {
	Upload readmodel.ImageUpload
	// optional question sent along with the photo
	Text string
}

type ChatCommands interface {
	Open(ctx context.Context, sess session.Session) (*Conversation, error)
	SendText(ctx context.Context, sess session.Session, text string) (*Exchange, error)
	SendImage(ctx context.Context, sess session.Session, msg ImageMessage) (*Exchange, error)
	Reset(ctx context.Context, sess session.Session) (*Conversation, error)
}

type chatCommandsImpl struct {
	store   shared.KVStore
	chatbot shared.ChatGateway
	clock   clock.Clock
	logger  *slog.Logger
}

func NewChatCommands(store shared.KVStore, chatbot shared.ChatGateway, clk clock.Clock, logger *slog.Logger) ChatCommands {
	return &chatCommandsImpl{store: store, chatbot: chatbot, clock: clk, logger: logger}
}

// Open returns the session's conversation, starting one with a greeting if none exists.
func (c *chatCommandsImpl) Open(ctx context.Context, sess session.Session) (*Conversation, error) {
	sid, err := c.sessionID(ctx, sess)
	if err != nil {
		return nil, err
	}

	history := c.loadHistory(ctx, sess, sid)
	if len(history) == 0 {
		history = history.Append(chat.Greeting(c.clock.Now()))
		c.saveHistory(ctx, sess, sid, history)
	}
	return &Conversation{SessionID: sid, Messages: history}, nil
}

func (c *chatCommandsImpl) SendText(ctx context.Context, sess session.Session, raw string) (*Exchange, error) {
	text, err := chat.ValidateText(raw)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	conv, err := c.Open(ctx, sess)
	if err != nil {
		return nil, err
	}

	userMsg := chat.NewMessage(chat.RoleUser, text, c.clock.Now())

	var botMsg chat.Message
	degraded := false
	reply, err := c.chatbot.SendText(ctx, text, conv.SessionID)
	if err != nil {
		c.logger.Warn("Chatbot text request failed", slog.String("chat_session_id", conv.SessionID), slog.String("error", err.Error()))
		botMsg = chat.NewMessage(chat.RoleBot, apologyText, c.clock.Now())
		degraded = true
	} else {
		botMsg = chat.NewMessage(chat.RoleBot, reply, c.clock.Now())
	}

	return c.append(ctx, sess, conv, degraded, userMsg, botMsg), nil
}

// SendImage runs place recognition on the photo and, when a question came with it, asks the
// chatbot too. A failed question does not discard the recognition result.
func (c *chatCommandsImpl) SendImage(ctx context.Context, sess session.Session, msg ImageMessage) (*Exchange, error) {
	if msg.Upload.Content == nil || msg.Upload.Filename == "" {
		return nil, errs.Mark(errs.New("image file is required"), errs.ErrInvalidInput)
	}

	conv, err := c.Open(ctx, sess)
	if err != nil {
		return nil, err
	}

	question, _ := chat.ValidateText(msg.Text)
	userText := question
	if userText == "" {
		userText = imageUploadText
	}
	userMsg := chat.NewMessage(chat.RoleUser, userText, c.clock.Now())
	filename := msg.Upload.Filename
	userMsg.ImageName = &filename

	result, err := c.chatbot.RecognizeImage(ctx, msg.Upload, conv.SessionID)
	if err != nil {
		c.logger.Warn("Image recognition failed", slog.String("chat_session_id", conv.SessionID), slog.String("error", err.Error()))
		botMsg := chat.NewMessage(chat.RoleBot, apologyText, c.clock.Now())
		return c.append(ctx, sess, conv, true, userMsg, botMsg), nil
	}

	body := chat.RecognitionReply(result.PredictedPlace, result.Confidence, result.Response)
	if question != "" {
		if answer, err := c.chatbot.SendText(ctx, question, conv.SessionID); err == nil {
			body += "\n\n" + answer
		} else {
			c.logger.Warn("Chatbot follow-up question failed", slog.String("chat_session_id", conv.SessionID), slog.String("error", err.Error()))
		}
	}
	botMsg := chat.NewMessage(chat.RoleBot, body, c.clock.Now())
	return c.append(ctx, sess, conv, false, userMsg, botMsg), nil
}

// Reset ends the current conversation upstream (best effort), drops its history and starts
// a new one under a fresh id.
func (c *chatCommandsImpl) Reset(ctx context.Context, sess session.Session) (*Conversation, error) {
	old, err := c.storedSessionID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if old != "" {
		if err := c.chatbot.ClearSession(ctx, old); err != nil {
			c.logger.Warn("Failed to clear chatbot session", slog.String("chat_session_id", old), slog.String("error", err.Error()))
		}
		if err := c.store.Delete(ctx, sess.ChatMessagesKey(old)); err != nil {
			c.logger.Error("Failed to delete chat history", slog.String("chat_session_id", old), slog.String("error", err.Error()))
		}
	}

	sid := chat.NewSessionID(c.clock.Now())
	if err := c.store.Set(ctx, sess.ChatSessionKey(), []byte(sid)); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "store chat session id"), errs.ErrStorageFailed)
	}

	history := chat.History{}.Append(chat.Greeting(c.clock.Now()))
	c.saveHistory(ctx, sess, sid, history)
	return &Conversation{SessionID: sid, Messages: history}, nil
}

func (c *chatCommandsImpl) append(ctx context.Context, sess session.Session, conv *Conversation, degraded bool, msgs ...chat.Message) *Exchange {
	c.saveHistory(ctx, sess, conv.SessionID, conv.Messages.Append(msgs...))
	return &Exchange{SessionID: conv.SessionID, Appended: msgs, Degraded: degraded}
}

func (c *chatCommandsImpl) storedSessionID(ctx context.Context, sess session.Session) (string, error) {
	raw, err := c.store.Get(ctx, sess.ChatSessionKey())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil
		}
		return "", errs.Mark(errs.Wrap(err, "read chat session id"), errs.ErrStorageFailed)
	}
	return string(raw), nil
}

func (c *chatCommandsImpl) sessionID(ctx context.Context, sess session.Session) (string, error) {
	sid, err := c.storedSessionID(ctx, sess)
	if err != nil {
		return "", err
	}
	if sid != "" {
		return sid, nil
	}

	sid = chat.NewSessionID(c.clock.Now())
	if err := c.store.Set(ctx, sess.ChatSessionKey(), []byte(sid)); err != nil {
		return "", errs.Mark(errs.Wrap(err, "store chat session id"), errs.ErrStorageFailed)
	}
	return sid, nil
}

// loadHistory treats a missing or unreadable transcript as empty.
func (c *chatCommandsImpl) loadHistory(ctx context.Context, sess session.Session, sid string) chat.History {
	raw, err := c.store.Get(ctx, sess.ChatMessagesKey(sid))
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			c.logger.Error("Failed to read chat history", slog.String("chat_session_id", sid), slog.String("error", err.Error()))
		}
		return chat.History{}
	}

	var history chat.History
	if err := json.Unmarshal(raw, &history); err != nil {
		c.logger.Warn("Discarding corrupt chat history", slog.String("chat_session_id", sid), slog.String("error", err.Error()))
		return chat.History{}
	}
	return history
}

func (c *chatCommandsImpl) saveHistory(ctx context.Context, sess session.Session, sid string, history chat.History) {
	payload, err := json.Marshal(history)
	if err != nil {
		c.logger.Error("Failed to encode chat history", slog.String("error", err.Error()))
		return
	}
	if err := c.store.Set(ctx, sess.ChatMessagesKey(sid), payload); err != nil {
		c.logger.Error("Failed to save chat history", slog.String("chat_session_id", sid), slog.String("error", err.Error()))
	}
}
