package entities

// OptionChoice registra a escolha de uma opção de uma enquete por um
// usuário. No máximo uma linha por tripla (usuário, enquete, índice).
type OptionChoice struct {
	UserID      uint
	PollID      uint
	OptionIndex int
}
