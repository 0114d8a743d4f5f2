package api

import (
	"log/slog"
	"net/http"

	reqdto "stamp-rally/internal/handler/dto/request"
	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/handler/httperr"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	q         queries.UserQueries
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, q: q, cookieCfg: cfg.Cookie}
}

// @Summary Sign up
// @Description Create an account with the auth service
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignupRequest true "Signup request"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req reqdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	user, err := h.cmds.Signup(c.Request.Context(), req.ToInput())
	if err != nil {
		if errs.Is(err, commands.ErrInvalidSignup) {
			msg := errs.UserMessage(err)
			if msg == "" {
				msg = "Invalid signup data"
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
			return
		}
		httperr.AbortWithMappedError(c, err, "Signup failed")
		return
	}

	c.JSON(http.StatusCreated, resdto.FromUser(*user))
}

// @Summary Log in
// @Description Exchange credentials for an access token, also set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid username or password", nil)
			return
		}
		httperr.AbortWithMappedError(c, err, "Login failed")
		return
	}

	cookie.SetAccessToken(c, h.cookieCfg, result.AccessToken)
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Log out
// @Description Drop the session cookies and every stored key of the session
// @Tags auth
// @Success 204 "No Content"
// @Failure 500 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	cookie.ClearAll(c, h.cookieCfg)

	if err := h.cmds.Logout(c.Request.Context(), sess); err != nil {
		slog.Error("Logout could not clear stored session data", "guest_id", sess.GuestID, "error", err.Error())
		httperr.AbortWithMappedError(c, err, "Logout failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get the user behind the access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.q.Me(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		abortWithUsecaseError(c, h.cookieCfg, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, resdto.FromUser(*user))
}
