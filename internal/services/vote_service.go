package services

import (
	"context"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// ChoicePair identifica uma escolha submetida: enquete + índice da opção
type ChoicePair struct {
	PollID      uint
	OptionIndex int
}

// VoteService contém a lógica de negócio para votos
type VoteService struct {
	postRepo   repositories.PostRepository
	pollRepo   repositories.PollRepository
	choiceRepo repositories.OptionChoiceRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewVoteService cria um novo VoteService
func NewVoteService(
	postRepo repositories.PostRepository,
	pollRepo repositories.PollRepository,
	choiceRepo repositories.OptionChoiceRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *VoteService {
	return &VoteService{
		postRepo:   postRepo,
		pollRepo:   pollRepo,
		choiceRepo: choiceRepo,
		uow:        uow,
		logger:     logger,
	}
}

// ListChoices retorna as escolhas do usuário em todas as enquetes do post.
func (s *VoteService) ListChoices(ctx context.Context, userID, postID uint) ([]ChoicePair, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrNotFound
	}

	polls, err := s.pollRepo.FindByPost(ctx, postID, false)
	if err != nil {
		return nil, err
	}

	result := make([]ChoicePair, 0)
	for _, poll := range polls {
		choices, err := s.choiceRepo.FindByUserAndPoll(ctx, userID, poll.ID)
		if err != nil {
			return nil, err
		}
		for _, choice := range choices {
			result = append(result, ChoicePair{
				PollID:      poll.ID,
				OptionIndex: choice.OptionIndex,
			})
		}
	}

	return result, nil
}

// SubmitChoices substitui o conjunto completo de escolhas do usuário nas
// enquetes do post, em uma única transação. As escolhas anteriores são
// removidas e as submetidas são inseridas após o filtro: enquete deve
// pertencer ao post, índice deve estar no intervalo da lista de opções e
// pares duplicados dentro da mesma submissão são suprimidos.
//
// O limite maxChosenOptionsCount de cada enquete não é verificado aqui;
// a validação do limite fica no cliente.
func (s *VoteService) SubmitChoices(ctx context.Context, userID, postID uint, choices []ChoicePair) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrNotFound
		}

		polls, err := s.pollRepo.FindByPost(txCtx, postID, false)
		if err != nil {
			return err
		}

		optionCounts := make(map[uint]int, len(polls))
		pollIDs := make([]uint, 0, len(polls))
		for _, poll := range polls {
			optionCounts[poll.ID] = len(poll.Options)
			pollIDs = append(pollIDs, poll.ID)
		}

		if err := s.choiceRepo.DeleteByUserAndPolls(txCtx, userID, pollIDs); err != nil {
			return err
		}

		accepted := make(map[uint]map[int]struct{})
		for _, choice := range choices {
			optionCount, ok := optionCounts[choice.PollID]
			if !ok {
				continue
			}
			if choice.OptionIndex < 0 || choice.OptionIndex >= optionCount {
				continue
			}
			if _, dup := accepted[choice.PollID][choice.OptionIndex]; dup {
				continue
			}

			if accepted[choice.PollID] == nil {
				accepted[choice.PollID] = make(map[int]struct{})
			}
			accepted[choice.PollID][choice.OptionIndex] = struct{}{}

			err := s.choiceRepo.Create(txCtx, &entities.OptionChoice{
				UserID:      userID,
				PollID:      choice.PollID,
				OptionIndex: choice.OptionIndex,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}
