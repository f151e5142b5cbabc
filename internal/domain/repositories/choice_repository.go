package repositories

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// OptionChoiceRepository define a interface para persistência de votos
type OptionChoiceRepository interface {
	Create(ctx context.Context, choice *entities.OptionChoice) error
	FindByPoll(ctx context.Context, pollID uint) ([]*entities.OptionChoice, error)
	FindByUserAndPoll(ctx context.Context, userID, pollID uint) ([]*entities.OptionChoice, error)
	DeleteByPoll(ctx context.Context, pollID uint) error
	DeleteByUserAndPolls(ctx context.Context, userID uint, pollIDs []uint) error
}
