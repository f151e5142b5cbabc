package postgres

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createPoll(t *testing.T, repo *PollRepository, postID uint, name string) *entities.Poll {
	t.Helper()

	poll := &entities.Poll{
		PostID:                postID,
		Name:                  name,
		Options:               []string{"a", "b"},
		MaxChosenOptionsCount: 1,
	}
	if err := repo.Create(context.Background(), poll); err != nil {
		t.Fatalf("failed to create poll: %v", err)
	}
	return poll
}

func TestPollRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FindByPost retorna em ordem de criação", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPollRepository(db).(*PollRepository)

		first := createPoll(t, repo, 1, "P1")
		second := createPoll(t, repo, 1, "P2")
		createPoll(t, repo, 2, "de outro post")

		polls, err := repo.FindByPost(ctx, 1, false)
		if err != nil {
			t.Fatalf("falha ao listar: %v", err)
		}
		if len(polls) != 2 {
			t.Fatalf("esperava 2 enquetes, obteve %d", len(polls))
		}
		if polls[0].ID != first.ID || polls[1].ID != second.ID {
			t.Errorf("esperava ordem [%d %d], obteve [%d %d]",
				first.ID, second.ID, polls[0].ID, polls[1].ID)
		}
	})

	t.Run("tombstone exclui da listagem padrão", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPollRepository(db).(*PollRepository)

		createPoll(t, repo, 1, "P1")
		dead := createPoll(t, repo, 1, "P2")

		dead.SoftDelete()
		if err := repo.Update(ctx, dead); err != nil {
			t.Fatalf("falha ao atualizar: %v", err)
		}

		live, _ := repo.FindByPost(ctx, 1, false)
		if len(live) != 1 {
			t.Errorf("esperava 1 enquete viva, obteve %d", len(live))
		}

		all, _ := repo.FindByPost(ctx, 1, true)
		if len(all) != 2 {
			t.Errorf("esperava 2 enquetes no total, obteve %d", len(all))
		}

		if poll, _ := repo.FindByID(ctx, dead.ID); poll != nil {
			t.Errorf("FindByID não deveria retornar enquete deletada")
		}
	})

	t.Run("restaurar persiste a limpeza do tombstone", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPollRepository(db).(*PollRepository)

		poll := createPoll(t, repo, 1, "P1")
		poll.SoftDelete()
		if err := repo.Update(ctx, poll); err != nil {
			t.Fatalf("falha ao deletar: %v", err)
		}

		poll.Restore()
		poll.Name = "P1 de volta"
		if err := repo.Update(ctx, poll); err != nil {
			t.Fatalf("falha ao restaurar: %v", err)
		}

		got, err := repo.FindByID(ctx, poll.ID)
		if err != nil {
			t.Fatalf("falha ao buscar: %v", err)
		}
		if got == nil {
			t.Fatal("esperava enquete restaurada visível")
		}
		if got.Name != "P1 de volta" || got.IsDeleted() {
			t.Errorf("esperava enquete restaurada com nome novo, obteve %+v", got)
		}
	})

	t.Run("opções sobrevivem à serialização", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPollRepository(db).(*PollRepository)

		poll := &entities.Poll{
			PostID:                1,
			Name:                  "P",
			Options:               []string{"açaí", `com "aspas"`, ""},
			MaxChosenOptionsCount: 1,
		}
		// A opção vazia não passa na validação da entidade, mas o
		// repositório não valida; aqui interessa só o round trip
		if err := repo.Create(ctx, poll); err != nil {
			t.Fatalf("falha ao criar: %v", err)
		}

		got, err := repo.FindByID(ctx, poll.ID)
		if err != nil || got == nil {
			t.Fatalf("falha ao buscar: %v", err)
		}
		if len(got.Options) != 3 || got.Options[0] != "açaí" || got.Options[1] != `com "aspas"` {
			t.Errorf("esperava opções preservadas, obteve %v", got.Options)
		}
	})

	t.Run("DeleteByPost remove as linhas de verdade", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewPollRepository(db).(*PollRepository)

		createPoll(t, repo, 1, "P1")
		createPoll(t, repo, 1, "P2")

		if err := repo.DeleteByPost(ctx, 1); err != nil {
			t.Fatalf("falha ao deletar: %v", err)
		}

		all, _ := repo.FindByPost(ctx, 1, true)
		if len(all) != 0 {
			t.Errorf("esperava nenhuma linha, obteve %d", len(all))
		}
	})
}

func TestOptionChoiceRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("índice composto rejeita voto duplicado", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewOptionChoiceRepository(db)

		choice := &entities.OptionChoice{UserID: 1, PollID: 1, OptionIndex: 0}
		if err := repo.Create(ctx, choice); err != nil {
			t.Fatalf("falha ao criar: %v", err)
		}

		dup := &entities.OptionChoice{UserID: 1, PollID: 1, OptionIndex: 0}
		if err := repo.Create(ctx, dup); err == nil {
			t.Error("esperava violação do índice único")
		}

		// Outro índice do mesmo usuário na mesma enquete é permitido
		other := &entities.OptionChoice{UserID: 1, PollID: 1, OptionIndex: 1}
		if err := repo.Create(ctx, other); err != nil {
			t.Errorf("esperava sucesso para outro índice: %v", err)
		}
	})

	t.Run("DeleteByUserAndPolls remove só do usuário", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewOptionChoiceRepository(db)

		for _, choice := range []entities.OptionChoice{
			{UserID: 1, PollID: 1, OptionIndex: 0},
			{UserID: 1, PollID: 2, OptionIndex: 0},
			{UserID: 2, PollID: 1, OptionIndex: 0},
		} {
			c := choice
			if err := repo.Create(ctx, &c); err != nil {
				t.Fatalf("falha ao criar: %v", err)
			}
		}

		if err := repo.DeleteByUserAndPolls(ctx, 1, []uint{1, 2}); err != nil {
			t.Fatalf("falha ao deletar: %v", err)
		}

		remaining, _ := repo.FindByPoll(ctx, 1)
		if len(remaining) != 1 || remaining[0].UserID != 2 {
			t.Errorf("esperava só o voto do usuário 2, obteve %v", remaining)
		}

		// Lista vazia de enquetes é um no-op
		if err := repo.DeleteByUserAndPolls(ctx, 2, nil); err != nil {
			t.Errorf("esperava no-op sem erro: %v", err)
		}
	})
}
