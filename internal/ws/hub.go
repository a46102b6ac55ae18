// internal/ws/hub.go
//
// Broadcast fanout: tracks the live subscribers of each session and
// delivers serialized events to all of them concurrently. Delivery is
// best-effort: a failed send prunes that subscriber and never blocks or
// fails delivery to the others.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/game"
)

// defaultSendTimeout bounds a single event delivery to one subscriber.
const defaultSendTimeout = 5 * time.Second

// conn is the minimal connection surface the hub needs. Production wraps
// *websocket.Conn; tests inject failing fakes.
type conn interface {
	write(ctx context.Context, data []byte) error
	close(code websocket.StatusCode, reason string)
}

// wsConn adapts *websocket.Conn to the conn interface.
type wsConn struct {
	c *websocket.Conn
}

func (w *wsConn) write(ctx context.Context, data []byte) error {
	return w.c.Write(ctx, websocket.MessageText, data)
}

func (w *wsConn) close(code websocket.StatusCode, reason string) {
	_ = w.c.Close(code, reason)
}

// subscriber is one attached connection. writeMu serializes writes so
// events committed in order arrive in order on this connection.
type subscriber struct {
	playerID uuid.UUID
	conn     conn
	writeMu  sync.Mutex
}

// Hub maintains per-session, per-player subscriber sets.
type Hub struct {
	log         *logrus.Logger
	sendTimeout time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]map[uuid.UUID]*subscriber
}

// NewHub builds an empty hub.
func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		log:         log,
		sendTimeout: defaultSendTimeout,
		sessions:    make(map[uuid.UUID]map[uuid.UUID]*subscriber),
	}
}

// Attach registers a websocket connection as the player's subscription to
// the session, replacing any previous connection for that player.
func (h *Hub) Attach(sessionID, playerID uuid.UUID, c *websocket.Conn) {
	h.attach(sessionID, playerID, &wsConn{c: c})
}

func (h *Hub) attach(sessionID, playerID uuid.UUID, c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok {
		subs = make(map[uuid.UUID]*subscriber)
		h.sessions[sessionID] = subs
	}
	if prev, ok := subs[playerID]; ok {
		prev.conn.close(websocket.StatusPolicyViolation, "replaced by a newer connection")
	}
	subs[playerID] = &subscriber{playerID: playerID, conn: c}
	h.log.WithFields(logrus.Fields{"session": sessionID, "player": playerID}).Info("subscriber attached")
}

// Detach removes the player's subscription. Detaching an absent subscriber
// is a no-op, so repeated disconnects are idempotent.
func (h *Hub) Detach(sessionID, playerID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	if _, ok := subs[playerID]; !ok {
		return
	}
	delete(subs, playerID)
	if len(subs) == 0 {
		delete(h.sessions, sessionID)
	}
	h.log.WithFields(logrus.Fields{"session": sessionID, "player": playerID}).Info("subscriber detached")
}

// ConnectedPlayers returns the player ids currently subscribed to a session.
func (h *Hub) ConnectedPlayers(sessionID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs := h.sessions[sessionID]
	ids := make([]uuid.UUID, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	return ids
}

// Broadcast serializes the event once and submits one send task per
// subscriber, waits for all of them, then prunes every subscriber whose
// send failed. Per-subscriber order is preserved by the write mutex; order
// across subscribers is unspecified.
func (h *Hub) Broadcast(sessionID uuid.UUID, ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).WithField("session", sessionID).Error("marshaling event")
		return
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.sessions[sessionID]))
	for _, sub := range h.sessions[sessionID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	var (
		wg       sync.WaitGroup
		failedMu sync.Mutex
		failed   []*subscriber
	)
	for _, sub := range targets {
		wg.Add(1)
		go func(sub *subscriber) {
			defer wg.Done()
			sub.writeMu.Lock()
			defer sub.writeMu.Unlock()
			ctx, cancel := context.WithTimeout(context.Background(), h.sendTimeout)
			defer cancel()
			if err := sub.conn.write(ctx, data); err != nil {
				failedMu.Lock()
				failed = append(failed, sub)
				failedMu.Unlock()
			}
		}(sub)
	}
	wg.Wait()

	for _, sub := range failed {
		h.log.WithFields(logrus.Fields{
			"session": sessionID,
			"player":  sub.playerID,
			"event":   ev.Type,
		}).Warn("pruning subscriber after failed send")
		h.prune(sessionID, sub)
		sub.conn.close(websocket.StatusGoingAway, "send failed")
	}
}

// prune removes the exact failed subscriber, leaving any replacement
// connection the player attached in the meantime untouched.
func (h *Hub) prune(sessionID uuid.UUID, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok || subs[sub.playerID] != sub {
		return
	}
	delete(subs, sub.playerID)
	if len(subs) == 0 {
		delete(h.sessions, sessionID)
	}
}
