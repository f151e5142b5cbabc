package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// OptionChoiceRepository implementa repositories.OptionChoiceRepository
type OptionChoiceRepository struct {
	db *gorm.DB
}

// NewOptionChoiceRepository cria um novo OptionChoiceRepository
func NewOptionChoiceRepository(db *gorm.DB) repositories.OptionChoiceRepository {
	return &OptionChoiceRepository{db: db}
}

func (r *OptionChoiceRepository) Create(ctx context.Context, choice *entities.OptionChoice) error {
	model := r.toModel(choice)

	db := r.getDB(ctx)
	return db.Create(model).Error
}

func (r *OptionChoiceRepository) FindByPoll(ctx context.Context, pollID uint) ([]*entities.OptionChoice, error) {
	var models []*OptionChoiceModel

	db := r.getDB(ctx)
	if err := db.Where("poll_id = ?", pollID).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

func (r *OptionChoiceRepository) FindByUserAndPoll(ctx context.Context, userID, pollID uint) ([]*entities.OptionChoice, error) {
	var models []*OptionChoiceModel

	db := r.getDB(ctx)
	if err := db.Where("user_id = ? AND poll_id = ?", userID, pollID).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

func (r *OptionChoiceRepository) DeleteByPoll(ctx context.Context, pollID uint) error {
	db := r.getDB(ctx)
	return db.Where("poll_id = ?", pollID).Delete(&OptionChoiceModel{}).Error
}

func (r *OptionChoiceRepository) DeleteByUserAndPolls(ctx context.Context, userID uint, pollIDs []uint) error {
	if len(pollIDs) == 0 {
		return nil
	}

	db := r.getDB(ctx)
	return db.Where("user_id = ? AND poll_id IN ?", userID, pollIDs).Delete(&OptionChoiceModel{}).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *OptionChoiceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *OptionChoiceRepository) toModel(choice *entities.OptionChoice) *OptionChoiceModel {
	return &OptionChoiceModel{
		UserID:      choice.UserID,
		PollID:      choice.PollID,
		OptionIndex: choice.OptionIndex,
	}
}

func (r *OptionChoiceRepository) toEntities(models []*OptionChoiceModel) []*entities.OptionChoice {
	choices := make([]*entities.OptionChoice, 0, len(models))
	for _, model := range models {
		choices = append(choices, &entities.OptionChoice{
			UserID:      model.UserID,
			PollID:      model.PollID,
			OptionIndex: model.OptionIndex,
		})
	}
	return choices
}
