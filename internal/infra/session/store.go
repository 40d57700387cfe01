package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

const keyPrefix = "wizard:session:"

// Store хранилище сессий визарда в Redis
// Сессии эфемерны: TTL страхует от незакрытых визардов, явное закрытие
// удаляет ключ немедленно
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище сессий
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create сохраняет новую сессию с TTL
func (s *Store) Create(ctx context.Context, sess *domain.WizardSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: marshal session: %v", ErrInternal, err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set session: %v", ErrInternal, err)
	}
	return nil
}

// Get возвращает сессию по ID
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.WizardSession, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	var sess domain.WizardSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: unmarshal session: %v", ErrInternal, err)
	}
	return &sess, nil
}

// SaveExisting сохраняет сессию только если ключ еще существует (SET XX)
// Результат асинхронного вызова, завершившегося после закрытия визарда,
// здесь отбрасывается: ключа уже нет, запись не происходит
func (s *Store) SaveExisting(ctx context.Context, sess *domain.WizardSession) error {
	sess.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: marshal session: %v", ErrInternal, err)
	}

	ok, err := s.client.SetXX(ctx, keyPrefix+sess.ID, payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: set session: %v", ErrInternal, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Delete удаляет сессию (закрытие визарда)
// Удаление отсутствующего ключа не считается ошибкой
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: del session: %v", ErrInternal, err)
	}
	return nil
}
