// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

// EventType tags a session event on the wire.
type EventType string

// The closed set of session events. Payloads always carry the full session
// snapshot plus the delta-relevant entity, so subscribers can resynchronize
// from any single event.
const (
	EventPlayerJoined    EventType = "playerJoined"
	EventGameStateUpdate EventType = "gameStateUpdate"
	EventRouteClaimed    EventType = "routeClaimed"
	EventTurnChanged     EventType = "turnChanged"
	EventPlayerLeft      EventType = "playerLeft"
	EventGameEnded       EventType = "gameEnded"
)

// Event is the envelope delivered to every subscriber of a session.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// EventData is implemented by exactly one payload struct per EventType.
type EventData interface {
	isEventData()
}

// PlayerJoinedData announces a new participant.
type PlayerJoinedData struct {
	Player *models.Player      `json:"player"`
	Game   *models.GameSession `json:"game"`
}

// GameStateUpdateData carries a bare snapshot (start, card draws, ticket draws).
type GameStateUpdateData struct {
	Game *models.GameSession `json:"game"`
}

// RouteClaimedData announces a successful route claim.
type RouteClaimedData struct {
	Route  *models.Route       `json:"route"`
	Player *models.Player      `json:"player"`
	Game   *models.GameSession `json:"game"`
}

// TurnChangedData announces the next player in turn order.
type TurnChangedData struct {
	CurrentPlayer *models.Player      `json:"currentPlayer"`
	Game          *models.GameSession `json:"game"`
}

// PlayerLeftData announces a subscriber disconnect.
type PlayerLeftData struct {
	PlayerID uuid.UUID           `json:"playerId"`
	Game     *models.GameSession `json:"game"`
}

// GameEndedData announces the terminal transition with final scores.
type GameEndedData struct {
	Game   *models.GameSession `json:"game"`
	Winner *models.Player      `json:"winner"`
	Scores map[string]int      `json:"scores"`
}

func (PlayerJoinedData) isEventData()    {}
func (GameStateUpdateData) isEventData() {}
func (RouteClaimedData) isEventData()    {}
func (TurnChangedData) isEventData()     {}
func (PlayerLeftData) isEventData()      {}
func (GameEndedData) isEventData()       {}
