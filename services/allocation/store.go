// File: services/allocation/store.go
package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"caredesk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "allocSession:"

// sessionTTL bounds how long an untouched payment modal survives.
const sessionTTL = 30 * time.Minute

// SessionStore persists allocation sessions between operator interactions.
type SessionStore interface {
	Save(ctx context.Context, session *models.AllocationSession) error
	Get(ctx context.Context, sessionID string) (*models.AllocationSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in the session cache DB with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.AllocationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal payment session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store payment session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.AllocationSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	var session models.AllocationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse payment session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete payment session: %w", err)
	}
	return nil
}

// InMemorySessionStore is a map-backed store for tests.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.AllocationSession
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*models.AllocationSession)}
}

func (s *InMemorySessionStore) Save(_ context.Context, session *models.AllocationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.SessionID] = &clone
	return nil
}

func (s *InMemorySessionStore) Get(_ context.Context, sessionID string) (*models.AllocationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	clone := *session
	return &clone, nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
