package http

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
	"github.com/arsuhinars/open-polls/internal/handlers/dto"
	"github.com/arsuhinars/open-polls/internal/handlers/middleware"
	"github.com/arsuhinars/open-polls/internal/infrastructure/persistence/postgres"
	"github.com/arsuhinars/open-polls/internal/services"
)

// nopLogger implementa ports.Logger descartando tudo
type nopLogger struct{}

func (nopLogger) Info(string, ...any)        {}
func (nopLogger) Error(string, ...any)       {}
func (nopLogger) Debug(string, ...any)       {}
func (nopLogger) Warn(string, ...any)        {}
func (l nopLogger) With(...any) ports.Logger { return l }

type apiEnv struct {
	router *gin.Engine
	users  repositories.UserRepository
	polls  repositories.PollRepository
}

// newAPIEnv monta o router com os serviços reais sobre um sqlite em
// memória. A autenticação é substituída por um middleware de teste que
// resolve o header X-User-ID para o usuário do contexto.
func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users := postgres.NewUserRepository(db)
	posts := postgres.NewPostRepository(db)
	polls := postgres.NewPollRepository(db)
	choices := postgres.NewOptionChoiceRepository(db)
	uow := postgres.NewUnitOfWork(db)
	logger := nopLogger{}

	postService := services.NewPostService(posts, polls, choices, users, uow, logger)
	voteService := services.NewVoteService(posts, polls, choices, uow, logger)

	postHandler := NewPostHandler(postService)
	voteHandler := NewVoteHandler(voteService)

	identify := func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(header, 10, 32)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(c.Request.Context(), uint(id))
		if err == nil && user != nil {
			c.Set(middleware.UserContextKey, user)
		}
		c.Next()
	}

	required := func(c *gin.Context) {
		if middleware.CurrentUser(c) == nil {
			dto.AbortWithError(c, http.StatusUnauthorized, errors.KindAuthorizationRequired)
			return
		}
		c.Next()
	}

	router := gin.New()
	router.Use(identify)

	router.GET("/api/post/", postHandler.Get)

	authorized := router.Group("", required)
	authorized.POST("/api/post/", postHandler.Create)
	authorized.PUT("/api/post/", postHandler.Update)
	authorized.DELETE("/api/post/", postHandler.Delete)
	authorized.GET("/api/set_post_publishing_state/", postHandler.SetPublishingState)
	authorized.GET("/api/my_posts/", postHandler.MyPosts)
	authorized.GET("/api/post_options_choices", voteHandler.GetChoices)
	authorized.POST("/api/post_options_choices", voteHandler.SubmitChoices)

	return &apiEnv{
		router: router,
		users:  users,
		polls:  polls,
	}
}

func (e *apiEnv) createUser(t *testing.T, vkID int64, name string) *entities.User {
	t.Helper()

	user := &entities.User{VkID: vkID, Name: name, IsActive: true}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
