// internal/game/manager.go
package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/cache"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/catalog"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

// Store is the persistence boundary. Save is invoked after every accepted
// mutation; Load is consulted once on a registry miss. Load returns
// (nil, nil) when the session does not exist.
type Store interface {
	Save(ctx context.Context, s *models.GameSession) error
	Load(ctx context.Context, id uuid.UUID) (*models.GameSession, error)
}

// Recorder receives one ActionRecord per accepted mutation, best-effort.
type Recorder interface {
	Record(ctx context.Context, rec cache.ActionRecord) error
}

// Broadcaster fans one event out to every subscriber of a session.
type Broadcaster interface {
	Broadcast(sessionID uuid.UUID, ev Event)
}

// Manager owns the registry of live sessions and serializes mutating
// operations per session. It is created at process start and passed by
// reference; there is no ambient global registry.
type Manager struct {
	// Now and Seed are injection points for time and per-session deck
	// shuffling; tests override them for determinism.
	Now  func() time.Time
	Seed func() int64

	cat         *catalog.Catalog
	store       Store
	recorder    Recorder
	broadcaster Broadcaster
	log         *logrus.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// sessionEntry pairs a session with its two locks: mu serializes
// validate-then-apply, fanoutMu preserves commit order across broadcasts
// after mu has been released.
type sessionEntry struct {
	mu          sync.Mutex
	fanoutMu    sync.Mutex
	session     *models.GameSession
	actionIndex int64
}

// NewManager builds a session manager. store, recorder, and broadcaster may
// each be nil; the corresponding hook is then skipped.
func NewManager(cat *catalog.Catalog, store Store, recorder Recorder, broadcaster Broadcaster, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		Now:         time.Now,
		Seed:        func() int64 { return time.Now().UnixNano() },
		cat:         cat,
		store:       store,
		recorder:    recorder,
		broadcaster: broadcaster,
		log:         log,
		sessions:    make(map[uuid.UUID]*sessionEntry),
	}
}

// eventFn builds an event against the committed snapshot, so payload
// entities always match the game state they accompany.
type eventFn func(snap *models.GameSession) Event

// CreateSession builds a fresh session from the catalog: shuffled decks,
// four cards to the founder, five face-up cards, phase Waiting.
func (m *Manager) CreateSession(ctx context.Context, name, playerName string) (*models.GameSession, *models.Player, error) {
	rng := rand.New(rand.NewSource(m.Seed()))

	founder := &models.Player{
		ID:                 uuid.New(),
		Name:               playerName,
		Color:              models.PlayerColors[0],
		TrainCars:          models.StartingTrainCars,
		Hand:               []models.TrainCard{},
		DestinationTickets: []models.DestinationTicket{},
		ClaimedRoutes:      []string{},
	}
	s := &models.GameSession{
		ID:            uuid.New(),
		Name:          name,
		Players:       []*models.Player{founder},
		Phase:         models.PhaseWaiting,
		TrainCardDeck: m.cat.NewTrainDeck(rng),
		TicketDeck:    m.cat.NewTicketDeck(rng),
		AllRoutes:     m.cat.NewRoutes(),
		Cities:        m.cat.NewCities(),
		CreatedAt:     m.Now().UTC(),
		Settings:      map[string]any{},
	}
	dealTrainCards(s, founder, initialHandSize)
	refillFaceUp(s)

	entry := &sessionEntry{session: s, actionIndex: 1}
	m.mu.Lock()
	m.sessions[s.ID] = entry
	m.mu.Unlock()

	snap := s.Clone()
	m.persist(snap)
	m.record(s.ID, founder.ID, "create_session", 1)

	m.log.WithFields(logrus.Fields{"session": s.ID, "name": name}).Info("session created")
	return snap, snap.PlayerByID(founder.ID), nil
}

// JoinSession adds a player to a waiting session, assigns the lowest unused
// palette color, and deals an opening hand if the deck permits.
func (m *Manager) JoinSession(ctx context.Context, sessionID uuid.UUID, playerName string) (*models.Player, *models.GameSession, error) {
	playerID := uuid.New()
	snap, err := m.mutate(ctx, sessionID, playerID, "join_session", func(s *models.GameSession) ([]eventFn, error) {
		if len(s.Players) >= maxPlayers {
			return nil, newError(KindGameFull, "session %s already has %d players", s.ID, maxPlayers)
		}
		if s.Phase != models.PhaseWaiting {
			return nil, newError(KindAlreadyStarted, "session %s has already started", s.ID)
		}
		p := &models.Player{
			ID:                 playerID,
			Name:               playerName,
			Color:              nextPlayerColor(s),
			TrainCars:          models.StartingTrainCars,
			Hand:               []models.TrainCard{},
			DestinationTickets: []models.DestinationTicket{},
			ClaimedRoutes:      []string{},
		}
		dealTrainCards(s, p, initialHandSize)
		s.Players = append(s.Players, p)
		return []eventFn{func(snap *models.GameSession) Event {
			return Event{Type: EventPlayerJoined, Data: PlayerJoinedData{Player: snap.PlayerByID(playerID), Game: snap}}
		}}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return snap.PlayerByID(playerID), snap, nil
}

// StartSession freezes the player list, deals three destination tickets to
// every player, and hands the first turn to the founding player.
func (m *Manager) StartSession(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	return m.mutate(ctx, sessionID, playerID, "start_session", func(s *models.GameSession) ([]eventFn, error) {
		if len(s.Players) < 2 {
			return nil, newError(KindTooFewPlayers, "session %s needs at least 2 players to start", s.ID)
		}
		if s.Phase != models.PhaseWaiting {
			return nil, newError(KindAlreadyStarted, "session %s has already started", s.ID)
		}
		if _, ferr := requireParticipant(s, playerID); ferr != nil {
			return nil, ferr
		}

		s.Phase = models.PhaseInitialTickets
		now := m.Now().UTC()
		s.StartedAt = &now
		for _, p := range s.Players {
			dealTickets(s, p, initialTicketDeal)
		}
		first := s.Players[0]
		s.CurrentPlayerID = first.ID
		for _, p := range s.Players {
			p.IsCurrentTurn = p.ID == first.ID
		}
		return []eventFn{gameStateUpdate}, nil
	})
}

// DrawTrainCards moves the requested cards from the face-up pool or the
// deck into the acting player's hand, then refills the face-up pool.
func (m *Manager) DrawTrainCards(ctx context.Context, sessionID, playerID uuid.UUID, cardIDs []uuid.UUID) (*models.GameSession, error) {
	return m.mutate(ctx, sessionID, playerID, "draw_train_cards", func(s *models.GameSession) ([]eventFn, error) {
		if ferr := guardPhase(s, models.PhasePlaying); ferr != nil {
			return nil, ferr
		}
		p, ferr := requireParticipant(s, playerID)
		if ferr != nil {
			return nil, ferr
		}
		if ferr := requireTurn(s, playerID); ferr != nil {
			return nil, ferr
		}
		drawn, ferr := drawFromPiles(s, cardIDs)
		if ferr != nil {
			return nil, ferr
		}
		p.Hand = append(p.Hand, drawn...)
		refillFaceUp(s)
		return []eventFn{gameStateUpdate}, nil
	})
}

// ClaimRoute validates and applies a route claim. If the claim drops the
// player's train-car supply to the endgame threshold the session finishes
// and final scores are computed for every player.
func (m *Manager) ClaimRoute(ctx context.Context, sessionID, playerID uuid.UUID, routeID string, cardIDs []uuid.UUID) (*models.GameSession, error) {
	return m.mutate(ctx, sessionID, playerID, "claim_route", func(s *models.GameSession) ([]eventFn, error) {
		if ferr := guardPhase(s, models.PhasePlaying); ferr != nil {
			return nil, ferr
		}
		p, ferr := requireParticipant(s, playerID)
		if ferr != nil {
			return nil, ferr
		}
		if ferr := requireTurn(s, playerID); ferr != nil {
			return nil, ferr
		}
		route := s.RouteByID(routeID)
		if route == nil || route.ClaimedBy != nil {
			return nil, newError(KindRouteNotFound, "route %s is not available", routeID)
		}
		if ferr := validateClaim(p, route, cardIDs); ferr != nil {
			return nil, ferr
		}

		removeFromHand(p, cardIDs)
		p.ClaimedRoutes = append(p.ClaimedRoutes, route.ID)
		p.Score += route.Points
		p.TrainCars -= route.Length
		owner := p.ID
		route.ClaimedBy = &owner

		events := []eventFn{func(snap *models.GameSession) Event {
			return Event{Type: EventRouteClaimed, Data: RouteClaimedData{
				Route:  snap.RouteByID(routeID),
				Player: snap.PlayerByID(playerID),
				Game:   snap,
			}}
		}}

		if p.TrainCars <= endgameTrainCars {
			s.Phase = models.PhaseFinished
			now := m.Now().UTC()
			s.FinishedAt = &now
			s.CurrentPlayerID = uuid.Nil
			for _, pl := range s.Players {
				pl.IsCurrentTurn = false
			}
			applyFinalScores(s)
			events = append(events, func(snap *models.GameSession) Event {
				return Event{Type: EventGameEnded, Data: GameEndedData{
					Game:   snap,
					Winner: winner(snap),
					Scores: scoreboard(snap),
				}}
			})
		}
		return events, nil
	})
}

// DrawDestinationTickets moves the requested tickets from the deck into the
// acting player's ticket set. The first ticket draw of the session moves the
// whole session from InitialTickets to Playing.
func (m *Manager) DrawDestinationTickets(ctx context.Context, sessionID, playerID uuid.UUID, ticketIDs []uuid.UUID) (*models.GameSession, error) {
	return m.mutate(ctx, sessionID, playerID, "draw_destination_tickets", func(s *models.GameSession) ([]eventFn, error) {
		if ferr := guardPhase(s, models.PhaseInitialTickets, models.PhasePlaying); ferr != nil {
			return nil, ferr
		}
		p, ferr := requireParticipant(s, playerID)
		if ferr != nil {
			return nil, ferr
		}
		if ferr := requireTurn(s, playerID); ferr != nil {
			return nil, ferr
		}
		taken, ferr := takeTickets(s, ticketIDs)
		if ferr != nil {
			return nil, ferr
		}
		p.DestinationTickets = append(p.DestinationTickets, taken...)
		if s.Phase == models.PhaseInitialTickets {
			s.Phase = models.PhasePlaying
		}
		return []eventFn{gameStateUpdate}, nil
	})
}

// EndTurn hands the turn to the next player in fixed order, cyclically.
func (m *Manager) EndTurn(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	return m.mutate(ctx, sessionID, playerID, "end_turn", func(s *models.GameSession) ([]eventFn, error) {
		if ferr := guardPhase(s, models.PhaseInitialTickets, models.PhasePlaying); ferr != nil {
			return nil, ferr
		}
		if _, ferr := requireParticipant(s, playerID); ferr != nil {
			return nil, ferr
		}
		if ferr := requireTurn(s, playerID); ferr != nil {
			return nil, ferr
		}
		advanceTurn(s)
		return []eventFn{func(snap *models.GameSession) Event {
			return Event{Type: EventTurnChanged, Data: TurnChangedData{CurrentPlayer: snap.CurrentPlayer(), Game: snap}}
		}}, nil
	})
}

// GetSession returns a snapshot of the session, consulting the store once
// on a registry miss and caching the result.
func (m *Manager) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	entry, err := m.entry(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Clone(), nil
}

// ListSessions returns snapshots of every session currently in the registry.
func (m *Manager) ListSessions(ctx context.Context) []*models.GameSession {
	m.mu.RLock()
	entries := make([]*sessionEntry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	out := make([]*models.GameSession, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.session.Clone())
		e.mu.Unlock()
	}
	return out
}

// HandleDisconnect notifies the session's remaining subscribers that a
// player's connection dropped. It mutates nothing; unknown sessions are a
// no-op.
func (m *Manager) HandleDisconnect(ctx context.Context, sessionID, playerID uuid.UUID) {
	entry, err := m.entry(ctx, sessionID)
	if err != nil {
		return
	}
	entry.mu.Lock()
	snap := entry.session.Clone()
	entry.fanoutMu.Lock()
	entry.mu.Unlock()
	m.broadcast(sessionID, Event{Type: EventPlayerLeft, Data: PlayerLeftData{PlayerID: playerID, Game: snap}})
	entry.fanoutMu.Unlock()
}

// gameStateUpdate is the eventFn for operations whose only delta is the
// snapshot itself.
func gameStateUpdate(snap *models.GameSession) Event {
	return Event{Type: EventGameStateUpdate, Data: GameStateUpdateData{Game: snap}}
}

// mutate runs fn under the session's state lock. fn validates strictly
// before mutating; on failure the session is untouched and no broadcast
// fires. On success the committed snapshot is persisted, recorded, and
// broadcast in commit order.
func (m *Manager) mutate(ctx context.Context, sessionID, actorID uuid.UUID, actionType string, fn func(*models.GameSession) ([]eventFn, error)) (*models.GameSession, error) {
	entry, err := m.entry(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	events, err := fn(entry.session)
	if err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	entry.actionIndex++
	idx := entry.actionIndex
	snap := entry.session.Clone()

	// Taking fanoutMu before releasing the state lock pins this commit's
	// position in the broadcast order.
	entry.fanoutMu.Lock()
	entry.mu.Unlock()

	m.persist(snap)
	m.record(sessionID, actorID, actionType, idx)
	for _, ef := range events {
		m.broadcast(sessionID, ef(snap))
	}
	entry.fanoutMu.Unlock()
	return snap, nil
}

// entry resolves a session entry, falling back to the store once on a miss.
func (m *Manager) entry(ctx context.Context, sessionID uuid.UUID) (*sessionEntry, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return entry, nil
	}

	if m.store != nil {
		loaded, err := m.store.Load(ctx, sessionID)
		if err != nil {
			m.log.WithError(err).WithField("session", sessionID).Error("loading session from store")
		} else if loaded != nil {
			m.mu.Lock()
			// Another caller may have loaded it while we were reading.
			if existing, ok := m.sessions[sessionID]; ok {
				m.mu.Unlock()
				return existing, nil
			}
			entry = &sessionEntry{session: loaded}
			m.sessions[sessionID] = entry
			m.mu.Unlock()
			return entry, nil
		}
	}
	return nil, newError(KindNotFound, "session %s not found", sessionID)
}

// persist saves a snapshot asynchronously. The mutation's success never
// depends on persistence; failures are logged.
func (m *Manager) persist(snap *models.GameSession) {
	if m.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.store.Save(ctx, snap); err != nil {
			m.log.WithError(err).WithField("session", snap.ID).Error("saving session")
		}
	}()
}

// record publishes an action record asynchronously, best-effort.
func (m *Manager) record(sessionID, actorID uuid.UUID, actionType string, idx int64) {
	if m.recorder == nil {
		return
	}
	rec := cache.ActionRecord{
		SessionID:   sessionID,
		ActionIndex: idx,
		ActorID:     actorID,
		ActionType:  actionType,
		Timestamp:   m.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.recorder.Record(ctx, rec); err != nil {
			m.log.WithError(err).WithField("session", sessionID).Error("recording action")
		}
	}()
}

func (m *Manager) broadcast(sessionID uuid.UUID, ev Event) {
	if m.broadcaster == nil {
		return
	}
	m.broadcaster.Broadcast(sessionID, ev)
}
