package repositories

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// PollRepository define a interface para persistência de enquetes.
// FindByPost retorna as enquetes na ordem de criação; com includeDeleted
// as enquetes com tombstone também são retornadas, pois a reconciliação
// posicional de um update precisa enxergar todos os slots existentes.
type PollRepository interface {
	Create(ctx context.Context, poll *entities.Poll) error
	FindByID(ctx context.Context, id uint) (*entities.Poll, error)
	FindByPost(ctx context.Context, postID uint, includeDeleted bool) ([]*entities.Poll, error)
	Update(ctx context.Context, poll *entities.Poll) error
	DeleteByPost(ctx context.Context, postID uint) error
}
