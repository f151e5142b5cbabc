package dto

import "github.com/arsuhinars/open-polls/internal/services"

// OptionChoice representa uma escolha (enquete, índice da opção) tanto
// em requisições quanto em respostas.
type OptionChoice struct {
	PollID      uint `json:"pollId"`
	OptionIndex int  `json:"optionIndex"`
}

// SubmitChoicesRequest representa a submissão do conjunto completo de
// escolhas do usuário para um post. Um slice vazio (não ausente) limpa
// os votos do usuário, por isso o ponteiro com required.
type SubmitChoicesRequest struct {
	PostID             uint            `json:"postId" binding:"required"`
	PostOptionsChoices *[]OptionChoice `json:"postOptionsChoices" binding:"required"`
}

// ChoicesResponse é a resposta de GET /api/post_options_choices
type ChoicesResponse struct {
	PostOptionsChoices []OptionChoice `json:"postOptionsChoices"`
}

// ToChoicePairs converte as escolhas da requisição para o serviço
func (r *SubmitChoicesRequest) ToChoicePairs() []services.ChoicePair {
	choices := *r.PostOptionsChoices
	pairs := make([]services.ChoicePair, len(choices))
	for i, choice := range choices {
		pairs[i] = services.ChoicePair{
			PollID:      choice.PollID,
			OptionIndex: choice.OptionIndex,
		}
	}
	return pairs
}

// ToOptionChoices converte os pares do serviço para a resposta
func ToOptionChoices(pairs []services.ChoicePair) []OptionChoice {
	choices := make([]OptionChoice, len(pairs))
	for i, pair := range pairs {
		choices[i] = OptionChoice{
			PollID:      pair.PollID,
			OptionIndex: pair.OptionIndex,
		}
	}
	return choices
}
