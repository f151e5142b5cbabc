package entities

import "time"

// Session representa uma sessão autenticada. Apenas o id do usuário e a
// expiração do token de acesso são persistidos; o perfil é relido do
// banco a cada requisição.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// IsExpired verifica se a sessão já expirou.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
