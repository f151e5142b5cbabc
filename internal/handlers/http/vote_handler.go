package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/handlers/dto"
	"github.com/arsuhinars/open-polls/internal/handlers/middleware"
	"github.com/arsuhinars/open-polls/internal/services"
)

// VoteHandler lida com requisições HTTP relacionadas a votos
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler cria um novo VoteHandler
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// GetChoices retorna as escolhas do usuário autenticado em todas as
// enquetes do post.
func (h *VoteHandler) GetChoices(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("post_id"), 10, 32)
	if err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	pairs, err := h.voteService.ListChoices(c.Request.Context(), user.ID, uint(postID))
	if err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChoicesResponse{
		PostOptionsChoices: dto.ToOptionChoices(pairs),
	})
}

// SubmitChoices substitui o conjunto de escolhas do usuário no post
func (h *VoteHandler) SubmitChoices(c *gin.Context) {
	var req dto.SubmitChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.voteService.SubmitChoices(c.Request.Context(), user.ID, req.PostID, req.ToChoicePairs()); err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
