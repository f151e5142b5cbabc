package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.CreationDate = time.Unix(model.CreationDate, 0)
	post.EditingDate = time.Unix(model.EditingDate, 0)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*entities.Post, error) {
	var model PostModel

	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID uint) ([]*entities.Post, error) {
	var models []*PostModel

	db := r.getDB(ctx)
	if err := db.Where("author_id = ?", authorID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}

	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	db := r.getDB(ctx)
	// Updates com map para não perder zero values (IsPublished=false).
	// editing_date acompanha toda escrita, como um autoUpdateTime.
	return db.Model(&PostModel{}).Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":        model.Title,
			"is_published": model.IsPublished,
			"editing_date": time.Now().Unix(),
		}).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Delete(&PostModel{}, id).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *PostRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	var creationDate, editingDate int64
	if !post.CreationDate.IsZero() {
		creationDate = post.CreationDate.Unix()
	}
	if !post.EditingDate.IsZero() {
		editingDate = post.EditingDate.Unix()
	}

	return &PostModel{
		ID:           post.ID,
		Title:        post.Title,
		AuthorID:     post.AuthorID,
		IsPublished:  post.IsPublished,
		CreationDate: creationDate,
		EditingDate:  editingDate,
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	return &entities.Post{
		ID:           model.ID,
		Title:        model.Title,
		AuthorID:     model.AuthorID,
		IsPublished:  model.IsPublished,
		CreationDate: time.Unix(model.CreationDate, 0),
		EditingDate:  time.Unix(model.EditingDate, 0),
	}
}
