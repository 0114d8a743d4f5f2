package api

import (
	"net/http"

	reqdto "stamp-rally/internal/handler/dto/request"
	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"
	"stamp-rally/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20

type ChatHandler struct {
	cmds      commands.ChatCommands
	events    queries.EventQueries
	cookieCfg config.CookieConfig
}

func NewChatHandler(cmds commands.ChatCommands, events queries.EventQueries, cfg config.Config) *ChatHandler {
	return &ChatHandler{cmds: cmds, events: events, cookieCfg: cfg.Cookie}
}

// @Summary Get conversation
// @Description Current chat transcript, starting a new one with a greeting when none exists
// @Tags chat
// @Produce json
// @Success 200 {object} resdto.ConversationResponse
// @Failure 500 {object} httperr.Response
// @Router /chat/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	conv, err := h.cmds.Open(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to load conversation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromConversation(conv))
}

// @Summary Send a text message
// @Description Appends the message and the chatbot's reply. When the chatbot is unreachable the
// @Description reply is an apology and degraded is true.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body reqdto.ChatTextRequest true "Message"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} httperr.Response
// @Router /chat/text [post]
func (h *ChatHandler) SendText(c *gin.Context) {
	var req reqdto.ChatTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	exchange, err := h.cmds.SendText(c.Request.Context(), middleware.GetSession(c), req.Message)
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchange(exchange))
}

// @Summary Send a photo
// @Description Runs place recognition on the photo; an optional message is asked alongside.
// @Tags chat
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo"
// @Param message formData string false "Question about the photo"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Router /chat/image [post]
func (h *ChatHandler) SendImage(c *gin.Context) {
	var form reqdto.ChatImageForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Image file is required", nil)
		return
	}
	if header.Size > maxImageBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, nil, "Image file is too large", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read image file", nil)
		return
	}
	defer file.Close()

	exchange, err := h.cmds.SendImage(c.Request.Context(), middleware.GetSession(c), commands.ImageMessage{
		Upload: readmodel.ImageUpload{Filename: header.Filename, Content: file},
		Text:   form.Message,
	})
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to send image")
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchange(exchange))
}

// @Summary Reset conversation
// @Description Ends the chatbot session and starts a new transcript
// @Tags chat
// @Produce json
// @Success 200 {object} resdto.ConversationResponse
// @Failure 500 {object} httperr.Response
// @Router /chat/session [delete]
func (h *ChatHandler) Reset(c *gin.Context) {
	conv, err := h.cmds.Reset(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to reset conversation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromConversation(conv))
}

// @Summary Search events
// @Description Semantic search over local events through the chatbot service
// @Tags chat
// @Accept json
// @Produce json
// @Param request body reqdto.EventSearchRequest true "Search request"
// @Success 200 {object} resdto.EventSearchResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /chat/events/search [post]
func (h *ChatHandler) SearchEvents(c *gin.Context) {
	var req reqdto.EventSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.events.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to search events")
		return
	}
	c.JSON(http.StatusOK, resdto.FromEventSearch(result))
}
