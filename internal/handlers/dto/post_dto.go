package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/services"
)

// PollRequest representa uma enquete em um payload de criação ou
// atualização de post. Não carrega id: a correlação com enquetes
// existentes é posicional.
type PollRequest struct {
	Name                  string   `json:"name" binding:"required,max=32"`
	Style                 int      `json:"style"`
	Options               []string `json:"options" binding:"required,min=1,dive,required,max=32"`
	MaxChosenOptionsCount int      `json:"maxChosenOptionsCount" binding:"required,min=1"`
}

// CreatePostRequest representa a requisição para criar um post
type CreatePostRequest struct {
	Title string        `json:"title" binding:"required,max=32"`
	Polls []PollRequest `json:"polls" binding:"required,min=1,dive"`
}

// UpdatePostRequest representa a requisição para atualizar um post.
// A lista de polls substitui integralmente a lista armazenada.
type UpdatePostRequest struct {
	ID    uint          `json:"id" binding:"required"`
	Title string        `json:"title" binding:"required,max=32"`
	Polls []PollRequest `json:"polls" binding:"required,min=1,dive"`
}

// RegisterValidations registra as validações estruturais no validator
// do gin. Deve ser chamado uma vez na inicialização.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(pollRequestStructLevel, PollRequest{})
	}
}

// pollRequestStructLevel valida a regra que as tags não alcançam:
// 1 <= maxChosenOptionsCount <= len(options)
func pollRequestStructLevel(sl validator.StructLevel) {
	poll := sl.Current().Interface().(PollRequest)
	if poll.MaxChosenOptionsCount > len(poll.Options) {
		sl.ReportError(poll.MaxChosenOptionsCount, "MaxChosenOptionsCount", "maxChosenOptionsCount", "lteoptions", "")
	}
}

func toPollInputs(polls []PollRequest) []services.PollInput {
	inputs := make([]services.PollInput, len(polls))
	for i, poll := range polls {
		inputs[i] = services.PollInput{
			Name:                  poll.Name,
			Style:                 poll.Style,
			Options:               poll.Options,
			MaxChosenOptionsCount: poll.MaxChosenOptionsCount,
		}
	}
	return inputs
}

// ToInput converte a requisição para o input do serviço
func (r *CreatePostRequest) ToInput() *services.PostInput {
	return &services.PostInput{
		Title: r.Title,
		Polls: toPollInputs(r.Polls),
	}
}

// ToInput converte a requisição para o input do serviço
func (r *UpdatePostRequest) ToInput() *services.PostInput {
	return &services.PostInput{
		Title: r.Title,
		Polls: toPollInputs(r.Polls),
	}
}

// PollResponse representa uma enquete com resultados agregados
type PollResponse struct {
	ID                    uint     `json:"id"`
	Name                  string   `json:"name"`
	Style                 int      `json:"style"`
	Options               []string `json:"options"`
	Results               []int    `json:"results"`
	AnswersCount          int      `json:"answersCount"`
	MaxChosenOptionsCount int      `json:"maxChosenOptionsCount"`
}

// PostResponse representa um post completo para leitura
type PostResponse struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Author       UserResponse   `json:"author"`
	IsPublished  bool           `json:"isPublished"`
	CreationDate time.Time      `json:"creationDate"`
	EditingDate  time.Time      `json:"editingDate"`
	Polls        []PollResponse `json:"polls"`
}

// ShortenedPostResponse representa um post sem enquetes, para listagens
type ShortenedPostResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	IsPublished  bool      `json:"isPublished"`
	CreationDate time.Time `json:"creationDate"`
	EditingDate  time.Time `json:"editingDate"`
}

// ToPostResponse converte a view do serviço para PostResponse
func ToPostResponse(view *services.PostView) PostResponse {
	polls := make([]PollResponse, len(view.Polls))
	for i, poll := range view.Polls {
		polls[i] = PollResponse{
			ID:                    poll.ID,
			Name:                  poll.Name,
			Style:                 poll.Style,
			Options:               poll.Options,
			Results:               poll.Results,
			AnswersCount:          poll.AnswersCount,
			MaxChosenOptionsCount: poll.MaxChosenOptionsCount,
		}
	}

	return PostResponse{
		ID:    view.ID,
		Title: view.Title,
		Author: UserResponse{
			ID:               view.Author.ID,
			Name:             view.Author.Name,
			RegistrationDate: view.Author.RegistrationDate,
		},
		IsPublished:  view.IsPublished,
		CreationDate: view.CreationDate,
		EditingDate:  view.EditingDate,
		Polls:        polls,
	}
}

// ToShortenedPostResponses converte posts para a listagem de my_posts
func ToShortenedPostResponses(posts []*entities.Post) []ShortenedPostResponse {
	responses := make([]ShortenedPostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ShortenedPostResponse{
			ID:           post.ID,
			Title:        post.Title,
			IsPublished:  post.IsPublished,
			CreationDate: post.CreationDate,
			EditingDate:  post.EditingDate,
		}
	}
	return responses
}
