package services

import "github.com/arsuhinars/open-polls/internal/domain/entities"

// AggregateResults calcula, a partir das linhas brutas de votos de uma
// enquete, a contagem de votos por opção e o número de votantes
// distintos. Um usuário que escolheu três opções conta uma vez no total
// de votantes e três vezes nas contagens.
func AggregateResults(optionCount int, choices []*entities.OptionChoice) (results []int, answersCount int) {
	results = make([]int, optionCount)
	voters := make(map[uint]struct{})

	for _, choice := range choices {
		// Índices fora de [0, optionCount) violariam a invariante do
		// banco; linhas assim são ignoradas ao invés de derrubar a leitura.
		if choice.OptionIndex < 0 || choice.OptionIndex >= optionCount {
			continue
		}
		results[choice.OptionIndex]++
		voters[choice.UserID] = struct{}{}
	}

	return results, len(voters)
}
