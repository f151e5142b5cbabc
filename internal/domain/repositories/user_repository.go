package repositories

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByVkID(ctx context.Context, vkID int64) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}
