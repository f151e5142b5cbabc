package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.RegistrationDate = time.Unix(model.RegistrationDate, 0)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) FindByVkID(ctx context.Context, vkID int64) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("vk_id = ?", vkID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	return db.Save(model).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	// Zero value mantém o autoCreateTime do GORM funcionando na criação
	var registrationDate int64
	if !user.RegistrationDate.IsZero() {
		registrationDate = user.RegistrationDate.Unix()
	}

	return &UserModel{
		ID:               user.ID,
		VkID:             user.VkID,
		Name:             user.Name,
		PhotoURL:         user.PhotoURL,
		RegistrationDate: registrationDate,
		IsAdmin:          user.IsAdmin,
		IsActive:         user.IsActive,
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	return &entities.User{
		ID:               model.ID,
		VkID:             model.VkID,
		Name:             model.Name,
		PhotoURL:         model.PhotoURL,
		RegistrationDate: time.Unix(model.RegistrationDate, 0),
		IsAdmin:          model.IsAdmin,
		IsActive:         model.IsActive,
	}
}
