package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lunora-app/lunora/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionMirror is a local, non-authoritative copy of remote session
// documents, keyed by session ID, used only to cut perceived read latency.
// Writers must hit the remote store first so the mirror is never ahead of it.
type SessionMirror interface {
	GetAll(ctx context.Context, userID string) ([]model.Session, error)
	Put(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, userID, sessionID string) error
	// Reconcile upserts every authoritative session and prunes mirror
	// entries whose IDs are absent from the authoritative list, so
	// cross-device deletions converge.
	Reconcile(ctx context.Context, userID string, authoritative []model.Session) error
}

type sessionMirror struct {
	redis  redis.UniversalClient
	prefix string
}

func NewSessionMirror(client redis.UniversalClient) SessionMirror {
	return &sessionMirror{redis: client, prefix: "lunora"}
}

func (m *sessionMirror) key(userID string) string {
	return fmt.Sprintf("%s:mirror:%s", m.prefix, userID)
}

func (m *sessionMirror) GetAll(ctx context.Context, userID string) ([]model.Session, error) {
	entries, err := m.redis.HGetAll(ctx, m.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("mirror hgetall: %w", err)
	}

	sessions := make([]model.Session, 0, len(entries))
	for id, payload := range entries {
		var s model.Session
		if err := json.Unmarshal([]byte(payload), &s); err != nil {
			// A corrupt entry is dropped rather than failing the read;
			// the next reconcile rewrites it from the remote store.
			log.Warn().Err(err).Str("userID", userID).Str("sessionID", id).Msg("Dropping corrupt mirror entry")
			if delErr := m.redis.HDel(ctx, m.key(userID), id).Err(); delErr != nil {
				log.Warn().Err(delErr).Str("userID", userID).Str("sessionID", id).Msg("Failed to prune corrupt mirror entry")
			}
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (m *sessionMirror) Put(ctx context.Context, session *model.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("mirror marshal session %s: %w", session.ID, err)
	}
	if err := m.redis.HSet(ctx, m.key(session.UserID), session.ID, payload).Err(); err != nil {
		return fmt.Errorf("mirror hset: %w", err)
	}
	return nil
}

func (m *sessionMirror) Delete(ctx context.Context, userID, sessionID string) error {
	if err := m.redis.HDel(ctx, m.key(userID), sessionID).Err(); err != nil {
		return fmt.Errorf("mirror hdel: %w", err)
	}
	return nil
}

func (m *sessionMirror) Reconcile(ctx context.Context, userID string, authoritative []model.Session) error {
	key := m.key(userID)

	existing, err := m.redis.HKeys(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("mirror hkeys: %w", err)
	}

	remoteIDs := make(map[string]bool, len(authoritative))
	pipe := m.redis.Pipeline()
	for i := range authoritative {
		s := &authoritative[i]
		remoteIDs[s.ID] = true
		payload, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("mirror marshal session %s: %w", s.ID, err)
		}
		pipe.HSet(ctx, key, s.ID, payload)
	}

	for _, id := range existing {
		if !remoteIDs[id] {
			pipe.HDel(ctx, key, id)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirror reconcile pipeline: %w", err)
	}
	return nil
}
