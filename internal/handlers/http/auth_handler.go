package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/handlers/dto"
	"github.com/arsuhinars/open-polls/internal/handlers/middleware"
	"github.com/arsuhinars/open-polls/internal/services"
)

// AuthHandler lida com o fluxo de login OAuth e com a sessão
type AuthHandler struct {
	authService *services.AuthService
	codec       *middleware.SessionTokenCodec
	cookieName  string
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(
	authService *services.AuthService,
	codec *middleware.SessionTokenCodec,
	cookieName string,
	logger ports.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// Login inicia o fluxo OAuth redirecionando para o provedor.
// O redirectPath volta pelo parâmetro state, assinado.
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := h.codec.IssueState(c.Query("redirectPath"))
	if err != nil {
		h.logger.Error("failed to issue oauth state", "error", err)
		dto.AbortWithError(c, http.StatusInternalServerError, errors.KindUnknownError)
		return
	}

	c.Redirect(http.StatusFound, h.authService.LoginURL(state))
}

// Callback conclui o fluxo OAuth: valida o state, troca o code por um
// token, atualiza o usuário e cria a sessão. Falhas redirecionam para a
// rota de erro do frontend, nunca para um corpo JSON.
func (h *AuthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("login refused by identity provider",
			"error", errParam,
			"description", c.Query("error_description"),
		)
		h.redirectError(c, errors.KindVkLoginError)
		return
	}

	redirectPath, err := h.codec.ParseState(c.Query("state"))
	if err != nil {
		h.logger.Warn("invalid oauth state", "error", err)
		h.redirectError(c, errors.KindVkLoginError)
		return
	}

	_, session, err := h.authService.Login(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Error("login failed", "error", err)
		h.redirectError(c, errors.KindOf(err))
		return
	}

	token, err := h.codec.Issue(session)
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		h.redirectError(c, errors.KindUnknownError)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetCookie(h.cookieName, token, maxAge, "/", "", false, true)

	if redirectPath == "" {
		redirectPath = "/"
	}
	c.Redirect(http.StatusFound, redirectPath)
}

// User retorna o perfil público do usuário autenticado
func (h *AuthHandler) User(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		dto.AbortWithError(c, http.StatusUnauthorized, errors.KindAuthorizationRequired)
		return
	}

	c.JSON(http.StatusOK, dto.AuthUserResponse{
		User:  dto.ToUserResponse(user),
		Photo: user.PhotoURL,
	})
}

// Logout destrói a sessão e expira o cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		dto.AbortWithError(c, http.StatusUnauthorized, errors.KindAuthorizationRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthHandler) redirectError(c *gin.Context, kind errors.ErrorKind) {
	c.Redirect(http.StatusFound, fmt.Sprintf("/#/handleError/%d", kind))
}
