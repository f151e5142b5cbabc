package entities

import (
	"errors"
	"time"
)

// Poll representa uma enquete pertencente a um Post. Suporta soft delete:
// uma enquete removida de um payload de atualização é marcada com
// DeletedAt e pode ser restaurada por uma atualização posterior do
// mesmo slot.
type Poll struct {
	ID                    uint
	PostID                uint
	Name                  string
	Style                 int
	Options               []string
	MaxChosenOptionsCount int
	DeletedAt             *time.Time
}

// IsDeleted verifica se a enquete foi marcada como deletada (soft delete)
func (p *Poll) IsDeleted() bool {
	return p.DeletedAt != nil
}

// SoftDelete marca a enquete como deletada
func (p *Poll) SoftDelete() {
	now := time.Now()
	p.DeletedAt = &now
}

// Restore restaura uma enquete deletada
func (p *Poll) Restore() {
	p.DeletedAt = nil
}

// Validate valida regras de negócio da entidade Poll
func (p *Poll) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}

	if len(p.Options) == 0 {
		return errors.New("options must not be empty")
	}

	for _, option := range p.Options {
		if option == "" {
			return errors.New("option label must not be empty")
		}
	}

	if p.MaxChosenOptionsCount < 1 || p.MaxChosenOptionsCount > len(p.Options) {
		return errors.New("max chosen options count out of range")
	}

	return nil
}
