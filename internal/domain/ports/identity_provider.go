package ports

import (
	"context"
	"time"
)

// IdentityToken é o token de acesso emitido pelo provedor de identidade.
type IdentityToken struct {
	AccessToken    string
	ProviderUserID int64
	ExpiresAt      time.Time
}

// IdentityProfile contém os campos públicos do perfil do usuário no
// provedor de identidade.
type IdentityProfile struct {
	Name     string
	PhotoURL string
}

// IdentityProvider define a interface para o provedor de identidade
// externo (OAuth): troca do authorization code e leitura do perfil.
type IdentityProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*IdentityToken, error)
	FetchProfile(ctx context.Context, token *IdentityToken) (*IdentityProfile, error)
}
