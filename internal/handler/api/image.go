package api

import (
	"net/http"
	"strconv"

	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	cmds      commands.ImageCommands
	q         queries.ImageQueries
	cookieCfg config.CookieConfig
}

func NewImageHandler(cmds commands.ImageCommands, q queries.ImageQueries, cfg config.Config) *ImageHandler {
	return &ImageHandler{cmds: cmds, q: q, cookieCfg: cfg.Cookie}
}

// @Summary List uploaded images
// @Tags images
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ImageResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /images [get]
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.q.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to load images")
		return
	}
	c.JSON(http.StatusOK, resdto.FromImages(images))
}

// @Summary Delete an uploaded image
// @Tags images
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid image ID", nil)
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to delete image")
		return
	}
	c.Status(http.StatusNoContent)
}
