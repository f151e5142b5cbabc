package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// PollInput representa os dados de uma enquete em um payload de
// criação/atualização de post. O payload não carrega ids de enquete:
// a correlação com as enquetes existentes é posicional.
type PollInput struct {
	Name                  string
	Style                 int
	Options               []string
	MaxChosenOptionsCount int
}

// PostInput representa os dados para criar ou atualizar um post
type PostInput struct {
	Title string
	Polls []PollInput
}

// AuthorView contém os campos públicos do autor de um post
type AuthorView struct {
	ID               uint
	Name             string
	RegistrationDate time.Time
}

// PollView representa uma enquete com os resultados agregados
type PollView struct {
	ID                    uint
	Name                  string
	Style                 int
	Options               []string
	Results               []int
	AnswersCount          int
	MaxChosenOptionsCount int
}

// PostView representa um post completo para leitura
type PostView struct {
	ID           uint
	Title        string
	Author       AuthorView
	IsPublished  bool
	CreationDate time.Time
	EditingDate  time.Time
	Polls        []PollView
}

// PostService contém a lógica de negócio para posts e enquetes
type PostService struct {
	postRepo   repositories.PostRepository
	pollRepo   repositories.PollRepository
	choiceRepo repositories.OptionChoiceRepository
	userRepo   repositories.UserRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	pollRepo repositories.PollRepository,
	choiceRepo repositories.OptionChoiceRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		pollRepo:   pollRepo,
		choiceRepo: choiceRepo,
		userRepo:   userRepo,
		uow:        uow,
		logger:     logger,
	}
}

// validateInput valida o payload antes de qualquer acesso ao banco.
// Falhas de validação nunca abrem transação.
func (s *PostService) validateInput(input *PostInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", errors.ErrInvalidPayload)
	}

	if len(input.Polls) == 0 {
		return fmt.Errorf("%w: polls must not be empty", errors.ErrInvalidPayload)
	}

	for i := range input.Polls {
		poll := entities.Poll{
			Name:                  input.Polls[i].Name,
			Style:                 input.Polls[i].Style,
			Options:               input.Polls[i].Options,
			MaxChosenOptionsCount: input.Polls[i].MaxChosenOptionsCount,
		}
		if err := poll.Validate(); err != nil {
			return fmt.Errorf("%w: poll %d: %s", errors.ErrInvalidPayload, i, err)
		}
	}

	return nil
}

// CreatePost cria um post com suas enquetes como uma unidade atômica.
// Retorna o id do novo post.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, input *PostInput) (uint, error) {
	if err := s.validateInput(input); err != nil {
		return 0, err
	}

	var postID uint

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post := &entities.Post{
			Title:    input.Title,
			AuthorID: authorID,
		}
		if err := s.postRepo.Create(txCtx, post); err != nil {
			return err
		}

		for i := range input.Polls {
			poll := &entities.Poll{
				PostID:                post.ID,
				Name:                  input.Polls[i].Name,
				Style:                 input.Polls[i].Style,
				Options:               input.Polls[i].Options,
				MaxChosenOptionsCount: input.Polls[i].MaxChosenOptionsCount,
			}
			if err := s.pollRepo.Create(txCtx, poll); err != nil {
				return err
			}
		}

		postID = post.ID
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create post", "author_id", authorID, "error", err)
		return 0, err
	}

	s.logger.Info("post created", "post_id", postID, "author_id", authorID)
	return postID, nil
}

// UpdatePost substitui título e lista de enquetes de um post em uma única
// transação. A reconciliação das enquetes é posicional: o slot i do
// payload sobrescreve o slot i das enquetes armazenadas (incluindo as
// com tombstone, restauradas antes da sobrescrita); slots além do
// payload são marcados como deletados. Sobrescrever um slot invalida
// todos os votos daquela enquete, pois os índices de opção podem ter
// mudado de significado.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, input *PostInput) error {
	if err := s.validateInput(input); err != nil {
		return err
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrNotFound
		}
		if post.AuthorID != userID {
			return errors.ErrForbidden
		}

		polls, err := s.pollRepo.FindByPost(txCtx, postID, true)
		if err != nil {
			return err
		}

		post.Title = input.Title
		post.EditingDate = time.Now()
		if err := s.postRepo.Update(txCtx, post); err != nil {
			return err
		}

		for i := range input.Polls {
			if i < len(polls) {
				if err := s.choiceRepo.DeleteByPoll(txCtx, polls[i].ID); err != nil {
					return err
				}

				polls[i].Restore()
				polls[i].Name = input.Polls[i].Name
				polls[i].Style = input.Polls[i].Style
				polls[i].Options = input.Polls[i].Options
				polls[i].MaxChosenOptionsCount = input.Polls[i].MaxChosenOptionsCount
				if err := s.pollRepo.Update(txCtx, polls[i]); err != nil {
					return err
				}
			} else {
				poll := &entities.Poll{
					PostID:                postID,
					Name:                  input.Polls[i].Name,
					Style:                 input.Polls[i].Style,
					Options:               input.Polls[i].Options,
					MaxChosenOptionsCount: input.Polls[i].MaxChosenOptionsCount,
				}
				if err := s.pollRepo.Create(txCtx, poll); err != nil {
					return err
				}
			}
		}

		for _, poll := range polls[min(len(input.Polls), len(polls)):] {
			if err := s.choiceRepo.DeleteByPoll(txCtx, poll.ID); err != nil {
				return err
			}
			if !poll.IsDeleted() {
				poll.SoftDelete()
				if err := s.pollRepo.Update(txCtx, poll); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// DeletePost remove um post com todas as suas enquetes e votos.
// A ordem da cascata é explícita: votos, depois enquetes, depois o post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrNotFound
		}
		if post.AuthorID != userID {
			return errors.ErrForbidden
		}

		polls, err := s.pollRepo.FindByPost(txCtx, postID, true)
		if err != nil {
			return err
		}

		for _, poll := range polls {
			if err := s.choiceRepo.DeleteByPoll(txCtx, poll.ID); err != nil {
				return err
			}
		}

		if err := s.pollRepo.DeleteByPost(txCtx, postID); err != nil {
			return err
		}

		return s.postRepo.Delete(txCtx, postID)
	})
}

// GetPost retorna um post com autor e resultados agregados. Posts não
// publicados são visíveis apenas para o autor. A leitura roda fora de
// transação e pode observar escritas concorrentes.
func (s *PostService) GetPost(ctx context.Context, requester *entities.User, postID uint) (*PostView, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrNotFound
	}
	if !post.CanBeReadBy(requester) {
		return nil, errors.ErrForbidden
	}

	author, err := s.userRepo.FindByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		s.logger.Error("post author missing in database", "post_id", postID, "author_id", post.AuthorID)
		return nil, fmt.Errorf("post %d: author %d not found", postID, post.AuthorID)
	}

	polls, err := s.pollRepo.FindByPost(ctx, postID, false)
	if err != nil {
		return nil, err
	}

	view := &PostView{
		ID:    post.ID,
		Title: post.Title,
		Author: AuthorView{
			ID:               author.ID,
			Name:             author.Name,
			RegistrationDate: author.RegistrationDate,
		},
		IsPublished:  post.IsPublished,
		CreationDate: post.CreationDate,
		EditingDate:  post.EditingDate,
		Polls:        make([]PollView, 0, len(polls)),
	}

	for _, poll := range polls {
		choices, err := s.choiceRepo.FindByPoll(ctx, poll.ID)
		if err != nil {
			return nil, err
		}

		results, answersCount := AggregateResults(len(poll.Options), choices)

		view.Polls = append(view.Polls, PollView{
			ID:                    poll.ID,
			Name:                  poll.Name,
			Style:                 poll.Style,
			Options:               poll.Options,
			Results:               results,
			AnswersCount:          answersCount,
			MaxChosenOptionsCount: poll.MaxChosenOptionsCount,
		})
	}

	return view, nil
}

// SetPublishingState altera a flag de publicação de um post.
// Apenas o autor pode alterar.
func (s *PostService) SetPublishingState(ctx context.Context, userID, postID uint, isPublished bool) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.postRepo.FindByID(txCtx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrNotFound
		}
		if post.AuthorID != userID {
			return errors.ErrForbidden
		}

		post.IsPublished = isPublished
		return s.postRepo.Update(txCtx, post)
	})
}

// ListPostsByAuthor retorna os posts do autor, sem enquetes.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint) ([]*entities.Post, error) {
	return s.postRepo.FindByAuthor(ctx, authorID)
}
