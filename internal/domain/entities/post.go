package entities

import (
	"errors"
	"time"
)

// Post representa uma publicação contendo uma ou mais enquetes.
// A ordem das enquetes é a ordem de criação.
type Post struct {
	ID           uint
	Title        string
	AuthorID     uint
	IsPublished  bool
	CreationDate time.Time
	EditingDate  time.Time
}

// CanBeReadBy verifica se o usuário pode ler o post.
// Posts não publicados são visíveis apenas para o autor.
func (p *Post) CanBeReadBy(user *User) bool {
	if p.IsPublished {
		return true
	}
	return user != nil && user.ID == p.AuthorID
}

// IsOwnedBy verifica se o usuário é o autor do post.
func (p *Post) IsOwnedBy(user *User) bool {
	return user != nil && user.ID == p.AuthorID
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}

	if p.AuthorID == 0 {
		return errors.New("author is required")
	}

	return nil
}
