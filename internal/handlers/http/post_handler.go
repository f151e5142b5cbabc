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

// PostHandler lida com requisições HTTP relacionadas a posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Get retorna um post com resultados agregados.
// Posts não publicados são visíveis apenas para o autor.
func (h *PostHandler) Get(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		dto.AbortWithError(c, http.StatusNotFound, errors.KindNotFoundError)
		return
	}

	postID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	view, err := h.postService.GetPost(c.Request.Context(), middleware.CurrentUser(c), uint(postID))
	if err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": dto.ToPostResponse(view)})
}

// Create cria um post com suas enquetes
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	postID, err := h.postService.CreatePost(c.Request.Context(), user.ID, req.ToInput())
	if err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"postId": postID})
}

// Update substitui título e enquetes de um post
func (h *PostHandler) Update(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.postService.UpdatePost(c.Request.Context(), user.ID, req.ID, req.ToInput()); err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// Delete remove um post com enquetes e votos
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.postService.DeletePost(c.Request.Context(), user.ID, uint(postID)); err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// SetPublishingState altera a flag de publicação de um post
func (h *PostHandler) SetPublishingState(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		dto.AbortWithError(c, http.StatusNotFound, errors.KindNotFoundError)
		return
	}

	postID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	var isPublished bool
	switch c.Query("is_published") {
	case "true":
		isPublished = true
	case "false":
		isPublished = false
	default:
		dto.AbortWithError(c, http.StatusBadRequest, errors.KindUnknownError)
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.postService.SetPublishingState(c.Request.Context(), user.ID, uint(postID), isPublished); err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// MyPosts lista os posts do usuário autenticado, sem enquetes
func (h *PostHandler) MyPosts(c *gin.Context) {
	user := middleware.CurrentUser(c)

	posts, err := h.postService.ListPostsByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		dto.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.ToShortenedPostResponses(posts)})
}
