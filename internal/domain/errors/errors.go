package errors

import (
	"errors"
	"net/http"
)

// ErrorKind é o código de erro enviado ao cliente no campo errorCode.
// Os valores fazem parte do contrato da API e não podem ser reordenados.
type ErrorKind int

const (
	KindUnknownError ErrorKind = iota
	KindVkLoginError
	KindAuthorizationRequired
	KindNotFoundError
	KindForbidden
)

// Business errors
var (
	ErrNotFound              = errors.New("entity not found")
	ErrForbidden             = errors.New("operation forbidden")
	ErrAuthorizationRequired = errors.New("authorization required")
	ErrUserInactive          = errors.New("user is not active")
	ErrIdentityProvider      = errors.New("identity provider request failed")
	ErrInvalidPayload        = errors.New("invalid payload")
)

// KindOf mapeia um erro de domínio para o ErrorKind correspondente.
// Erros desconhecidos viram KindUnknownError (catch-all).
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFoundError
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrAuthorizationRequired):
		return KindAuthorizationRequired
	case errors.Is(err, ErrIdentityProvider), errors.Is(err, ErrUserInactive):
		return KindVkLoginError
	default:
		return KindUnknownError
	}
}

// StatusOf mapeia um erro de domínio para o status HTTP correspondente.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAuthorizationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
