// File: services/session/session.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const OperatorSessionPrefix = "opSession:"

// operatorSessionTTL is how long a signed-in receptionist stays signed in
// without re-authenticating.
const operatorSessionTTL = 12 * time.Hour

// OperatorSession is the per-operator state created at login: the upstream
// bearer token and the user-details blob the dashboard displays. Logout
// deletes it; nothing else is kept client-side.
type OperatorSession struct {
	SessionID     string          `json:"sessionId"`
	UpstreamToken string          `json:"upstreamToken"`
	User          json.RawMessage `json:"user,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Store persists operator sessions in the auth cache DB.
type Store struct {
	Client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{Client: client}
}

// Save writes the session under its fixed key with the session TTL.
func (s *Store) Save(ctx context.Context, sess OperatorSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal operator session: %w", err)
	}
	if err := s.Client.Set(ctx, OperatorSessionPrefix+sess.SessionID, data, operatorSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save operator session: %w", err)
	}
	return nil
}

// Get retrieves the session, refreshing its TTL on hit.
func (s *Store) Get(ctx context.Context, sessionID string) (*OperatorSession, error) {
	data, err := s.Client.Get(ctx, OperatorSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var sess OperatorSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operator session: %w", err)
	}
	_ = s.Client.Expire(ctx, OperatorSessionPrefix+sessionID, operatorSessionTTL).Err()
	return &sess, nil
}

// Delete removes the session (logout teardown).
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, OperatorSessionPrefix+sessionID).Err()
}
