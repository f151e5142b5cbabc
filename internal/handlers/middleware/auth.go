package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/handlers/dto"
	"github.com/arsuhinars/open-polls/internal/services"
)

const (
	// UserContextKey é a chave do usuário autenticado no contexto do Gin
	UserContextKey = "current_user"
	// SessionContextKey é a chave do id da sessão no contexto do Gin
	SessionContextKey = "session_id"
)

// AuthMiddleware resolve o cookie de sessão para o usuário atual.
// O usuário é sempre relido do banco: a sessão guarda apenas o id.
type AuthMiddleware struct {
	authService *services.AuthService
	codec       *SessionTokenCodec
	cookieName  string
	logger      ports.Logger
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(
	authService *services.AuthService,
	codec *SessionTokenCodec,
	cookieName string,
	logger ports.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		codec:       codec,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// Identify tenta autenticar a requisição pelo cookie de sessão e, em
// caso de sucesso, coloca o usuário no contexto. Nunca aborta:
// requisições anônimas seguem sem usuário.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(m.cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		sessionID, err := m.codec.Parse(raw)
		if err != nil {
			c.Next()
			return
		}

		user, err := m.authService.CurrentUser(c.Request.Context(), sessionID)
		if err != nil {
			if err != errors.ErrAuthorizationRequired {
				m.logger.Error("failed to resolve session", "error", err)
			}
			c.Next()
			return
		}

		c.Set(UserContextKey, user)
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// Required aborta com 401 quando a requisição não está autenticada.
// Deve ser registrado depois de Identify.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			dto.AbortWithError(c, http.StatusUnauthorized, errors.KindAuthorizationRequired)
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado da requisição, ou nil.
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}

	user, ok := value.(*entities.User)
	if !ok {
		return nil
	}
	return user
}

// SessionID retorna o id da sessão da requisição, ou vazio.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
