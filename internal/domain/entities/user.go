package entities

import (
	"errors"
	"time"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário autenticado via provedor de identidade externo.
// A identidade (VkID) é imutável após a criação; nome e foto são
// atualizados a cada login.
type User struct {
	ID               uint
	VkID             int64
	Name             string
	PhotoURL         string
	RegistrationDate time.Time
	IsAdmin          bool
	IsActive         bool
}

// RefreshProfile atualiza os campos de perfil que mudam a cada login.
func (u *User) RefreshProfile(name, photoURL string) {
	u.Name = name
	u.PhotoURL = photoURL
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.VkID == 0 {
		return errors.New("vk id is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	return nil
}
