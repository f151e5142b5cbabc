package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/arsuhinars/open-polls/internal/domain/errors"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs),
// estendido com o campo errorCode que o frontend usa para escolher a
// mensagem traduzida.
type ErrorResponse struct {
	problems.DefaultProblem
	ErrorCode errors.ErrorKind `json:"errorCode"`
}

// NewErrorResponse cria uma nova resposta de erro RFC 7807 com errorCode
func NewErrorResponse(c *gin.Context, status int, kind errors.ErrorKind) ErrorResponse {
	problem := problems.NewStatusProblem(status)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		DefaultProblem: *problem,
		ErrorCode:      kind,
	}
}

// AbortWithError escreve a resposta de erro e interrompe a cadeia de
// handlers.
func AbortWithError(c *gin.Context, status int, kind errors.ErrorKind) {
	c.AbortWithStatusJSON(status, NewErrorResponse(c, status, kind))
}

// AbortWithDomainError mapeia um erro de domínio para status HTTP e
// errorCode. NotFound tem precedência sobre Forbidden nos serviços, que
// verificam existência antes de posse.
func AbortWithDomainError(c *gin.Context, err error) {
	AbortWithError(c, errors.StatusOf(err), errors.KindOf(err))
}
