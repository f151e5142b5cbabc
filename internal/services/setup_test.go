package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
	"github.com/arsuhinars/open-polls/internal/infrastructure/persistence/postgres"
)

// nopLogger implementa ports.Logger descartando tudo
type nopLogger struct{}

func (nopLogger) Info(string, ...any)        {}
func (nopLogger) Error(string, ...any)       {}
func (nopLogger) Debug(string, ...any)       {}
func (nopLogger) Warn(string, ...any)        {}
func (l nopLogger) With(...any) ports.Logger { return l }

type testEnv struct {
	db      *gorm.DB
	users   repositories.UserRepository
	posts   repositories.PostRepository
	polls   repositories.PollRepository
	choices repositories.OptionChoiceRepository
	uow     ports.UnitOfWork
}

// newTestEnv sobe um banco sqlite em memória com o schema da aplicação
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// Uma única conexão para o :memory: não se fragmentar em vários bancos
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &testEnv{
		db:      db,
		users:   postgres.NewUserRepository(db),
		posts:   postgres.NewPostRepository(db),
		polls:   postgres.NewPollRepository(db),
		choices: postgres.NewOptionChoiceRepository(db),
		uow:     postgres.NewUnitOfWork(db),
	}
}

func (e *testEnv) postService() *PostService {
	return NewPostService(e.posts, e.polls, e.choices, e.users, e.uow, nopLogger{})
}

func (e *testEnv) voteService() *VoteService {
	return NewVoteService(e.posts, e.polls, e.choices, e.uow, nopLogger{})
}

func (e *testEnv) createUser(t *testing.T, vkID int64, name string) *entities.User {
	t.Helper()

	user := &entities.User{VkID: vkID, Name: name, IsActive: true}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func singlePollInput(title string, options ...string) *PostInput {
	return &PostInput{
		Title: title,
		Polls: []PollInput{
			{
				Name:                  "P1",
				Style:                 0,
				Options:               options,
				MaxChosenOptionsCount: 1,
			},
		},
	}
}
