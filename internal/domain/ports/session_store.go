package ports

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// SessionStore define a interface para persistência de sessões.
// Get retorna nil quando a sessão não existe ou já expirou.
type SessionStore interface {
	Create(ctx context.Context, session *entities.Session) error
	Get(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
}
