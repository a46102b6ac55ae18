// internal/cache/cache.go
//
// Redis-backed action log. Every accepted session mutation is appended as a
// record to a per-session list so an external historian can replay or audit
// games. The log is best-effort: a nil client or a failed push never affects
// the mutation itself.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActionRecord describes one accepted mutation on a session.
type ActionRecord struct {
	SessionID   uuid.UUID `json:"sessionId"`
	ActionIndex int64     `json:"actionIndex"`
	ActorID     uuid.UUID `json:"actorId"` // Nil for session-level events.
	ActionType  string    `json:"actionType"`
	Timestamp   int64     `json:"timestamp"` // Unix milliseconds.
}

// ActionLog appends ActionRecords to Redis lists keyed by session id.
type ActionLog struct {
	rdb *redis.Client
}

// NewActionLog wraps an initialized Redis client.
func NewActionLog(rdb *redis.Client) *ActionLog {
	return &ActionLog{rdb: rdb}
}

func actionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("game:actions:%s", sessionID)
}

// Record appends one action record to the session's list.
func (l *ActionLog) Record(ctx context.Context, rec ActionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := l.rdb.RPush(ctx, actionKey(rec.SessionID), data).Err(); err != nil {
		return fmt.Errorf("push action record: %w", err)
	}
	return nil
}
