package repositories

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id uint) (*entities.Post, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]*entities.Post, error)
	Update(ctx context.Context, post *entities.Post) error
	Delete(ctx context.Context, id uint) error
}
