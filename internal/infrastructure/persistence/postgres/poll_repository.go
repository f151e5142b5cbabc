package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// PollRepository implementa repositories.PollRepository
type PollRepository struct {
	db *gorm.DB
}

// NewPollRepository cria um novo PollRepository
func NewPollRepository(db *gorm.DB) repositories.PollRepository {
	return &PollRepository{db: db}
}

func (r *PollRepository) Create(ctx context.Context, poll *entities.Poll) error {
	model, err := r.toModel(poll)
	if err != nil {
		return err
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	poll.ID = model.ID
	return nil
}

func (r *PollRepository) FindByID(ctx context.Context, id uint) (*entities.Poll, error) {
	var model PollModel

	db := r.getDB(ctx)
	if err := db.Where("id = ? AND deleted_at IS NULL", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// FindByPost retorna as enquetes do post ordenadas por id (ordem de
// criação), base da reconciliação posicional dos updates.
func (r *PollRepository) FindByPost(ctx context.Context, postID uint, includeDeleted bool) ([]*entities.Poll, error) {
	var models []*PollModel

	db := r.getDB(ctx)
	query := db.Where("post_id = ?", postID)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	polls := make([]*entities.Poll, 0, len(models))
	for _, model := range models {
		poll, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}

	return polls, nil
}

// Update sobrescreve todos os campos da enquete, incluindo o tombstone:
// salvar uma entidade restaurada limpa o deleted_at no banco.
func (r *PollRepository) Update(ctx context.Context, poll *entities.Poll) error {
	model, err := r.toModel(poll)
	if err != nil {
		return err
	}

	db := r.getDB(ctx)
	return db.Model(&PollModel{}).Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":                     model.Name,
			"style":                    model.Style,
			"options":                  model.Options,
			"max_chosen_options_count": model.MaxChosenOptionsCount,
			"deleted_at":               model.DeletedAt,
		}).Error
}

func (r *PollRepository) DeleteByPost(ctx context.Context, postID uint) error {
	db := r.getDB(ctx)
	return db.Where("post_id = ?", postID).Delete(&PollModel{}).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *PollRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *PollRepository) toModel(poll *entities.Poll) (*PollModel, error) {
	options, err := json.Marshal(poll.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize poll options: %w", err)
	}

	var deletedAt *int64
	if poll.DeletedAt != nil {
		ts := poll.DeletedAt.Unix()
		deletedAt = &ts
	}

	return &PollModel{
		ID:                    poll.ID,
		PostID:                poll.PostID,
		Name:                  poll.Name,
		Style:                 poll.Style,
		Options:               string(options),
		MaxChosenOptionsCount: poll.MaxChosenOptionsCount,
		DeletedAt:             deletedAt,
	}, nil
}

func (r *PollRepository) toEntity(model *PollModel) (*entities.Poll, error) {
	var options []string
	if err := json.Unmarshal([]byte(model.Options), &options); err != nil {
		return nil, fmt.Errorf("failed to parse poll options: %w", err)
	}

	var deletedAt *time.Time
	if model.DeletedAt != nil {
		ts := time.Unix(*model.DeletedAt, 0)
		deletedAt = &ts
	}

	return &entities.Poll{
		ID:                    model.ID,
		PostID:                model.PostID,
		Name:                  model.Name,
		Style:                 model.Style,
		Options:               options,
		MaxChosenOptionsCount: model.MaxChosenOptionsCount,
		DeletedAt:             deletedAt,
	}, nil
}
