package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
)

const keyPrefix = "session:"

// RedisStore implementa ports.SessionStore sobre o Redis. A sessão
// expira junto com o token de acesso do provedor (TTL da chave), então
// sessões vencidas somem sozinhas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore cria um novo RedisStore a partir da URL do Redis
func NewRedisStore(url string) (ports.SessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient cria um RedisStore sobre um client existente
func NewRedisStoreWithClient(client *redis.Client) ports.SessionStore {
	return &RedisStore{client: client}
}

type sessionRecord struct {
	UserID    uint  `json:"userId"`
	ExpiresAt int64 `json:"expiresAt"`
}

func (s *RedisStore) Create(ctx context.Context, session *entities.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(sessionRecord{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt.Unix(),
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+session.ID, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	return &entities.Session{
		ID:        id,
		UserID:    record.UserID,
		ExpiresAt: time.Unix(record.ExpiresAt, 0),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
