package dto

import (
	"time"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

// UserResponse representa os campos públicos de um usuário
type UserResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// AuthUserResponse é a resposta de GET /auth/user
type AuthUserResponse struct {
	User  UserResponse `json:"user"`
	Photo string       `json:"photo"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		RegistrationDate: user.RegistrationDate,
	}
}
