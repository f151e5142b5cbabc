package middleware

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
)

// stateTTL limita a validade do state emitido no início do fluxo OAuth.
const stateTTL = 10 * time.Minute

// SessionTokenCodec assina e verifica os tokens que circulam pelo
// browser: o cookie de sessão (carrega só o id da sessão; o conteúdo
// fica no Redis) e o state do OAuth (carrega o redirectPath de volta
// pelo provedor, dispensando estado no servidor).
type SessionTokenCodec struct {
	secret []byte
}

// NewSessionTokenCodec cria um novo codec com o secret da aplicação
func NewSessionTokenCodec(secret string) *SessionTokenCodec {
	return &SessionTokenCodec{secret: []byte(secret)}
}

// Issue emite o token do cookie de sessão
func (c *SessionTokenCodec) Issue(session *entities.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse verifica o token do cookie e retorna o id da sessão
func (c *SessionTokenCodec) Parse(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, c.keyFunc)
	if err != nil || !token.Valid {
		return "", errors.ErrAuthorizationRequired
	}

	return claims.Subject, nil
}

type stateClaims struct {
	RedirectPath string `json:"redirectPath"`
	jwt.RegisteredClaims
}

// IssueState emite o state do fluxo OAuth carregando o redirectPath
func (c *SessionTokenCodec) IssueState(redirectPath string) (string, error) {
	claims := stateClaims{
		RedirectPath: redirectPath,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// ParseState verifica o state e retorna o redirectPath
func (c *SessionTokenCodec) ParseState(raw string) (string, error) {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, c.keyFunc)
	if err != nil || !token.Valid {
		return "", errors.ErrIdentityProvider
	}

	return claims.RedirectPath, nil
}

func (c *SessionTokenCodec) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}
