// internal/models/models.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GamePhase is the lifecycle phase of a session.
type GamePhase string

// Session lifecycle phases. Waiting accepts joins; InitialTickets is the
// pre-play destination-ticket deal; Finished is terminal.
const (
	PhaseWaiting        GamePhase = "waiting"
	PhaseInitialTickets GamePhase = "initialTickets"
	PhasePlaying        GamePhase = "playing"
	PhaseFinished       GamePhase = "finished"
)

// Color is a train-card or route color.
type Color string

// The eight card colors, plus gray (neutral routes, never on cards) and
// wild (locomotives, never on routes).
const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorWhite  Color = "white"
	ColorBlack  Color = "black"
	ColorGray   Color = "gray"
	ColorWild   Color = "wild"
)

// PlayerColors is the ordered palette assigned to players as they join.
var PlayerColors = []string{"red", "blue", "green", "yellow", "black"}

// StartingTrainCars is each player's train-car supply at session creation.
const StartingTrainCars = 45

// City is an immutable catalog entry referenced by id everywhere else.
type City struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Region string  `json:"region"`
}

// TrainCard is a single card instance. Cards are fungible except for color
// and locomotive status; the id exists so clients can request exact cards.
type TrainCard struct {
	ID           uuid.UUID `json:"id"`
	Color        Color     `json:"color"`
	IsLocomotive bool      `json:"isLocomotive"`
}

// DestinationTicket is a scored connectivity goal between two cities,
// resolved only at game end.
type DestinationTicket struct {
	ID         uuid.UUID `json:"id"`
	FromCityID string    `json:"fromCityId"`
	ToCityID   string    `json:"toCityId"`
	Points     int       `json:"points"`
	Penalty    int       `json:"penalty"`
}

// Route is an edge between two cities claimable by exactly one player.
type Route struct {
	ID            string     `json:"id"`
	FromCityID    string     `json:"fromCityId"`
	ToCityID      string     `json:"toCityId"`
	Length        int        `json:"length"`
	Color         Color      `json:"color"`
	Points        int        `json:"points"`
	IsDoubleRoute bool       `json:"isDoubleRoute"`
	DoubleRouteID string     `json:"doubleRouteId,omitempty"`
	ClaimedBy     *uuid.UUID `json:"claimedBy,omitempty"`
}

// Player is one participant in a session. ClaimedRoutes holds route ids;
// the route objects themselves live in the session's AllRoutes.
type Player struct {
	ID                 uuid.UUID           `json:"id"`
	Name               string              `json:"name"`
	Color              string              `json:"color"`
	TrainCars          int                 `json:"trainCars"`
	Hand               []TrainCard         `json:"hand"`
	DestinationTickets []DestinationTicket `json:"destinationTickets"`
	ClaimedRoutes      []string            `json:"claimedRoutes"`
	Score              int                 `json:"score"`
	IsCurrentTurn      bool                `json:"isCurrentTurn"`
}

// HasCard reports whether the player's hand contains the card id.
func (p *Player) HasCard(id uuid.UUID) bool {
	for _, c := range p.Hand {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CardByID returns the hand card with the given id, or nil.
func (p *Player) CardByID(id uuid.UUID) *TrainCard {
	for i := range p.Hand {
		if p.Hand[i].ID == id {
			return &p.Hand[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	cp := *p
	cp.Hand = append([]TrainCard(nil), p.Hand...)
	cp.DestinationTickets = append([]DestinationTicket(nil), p.DestinationTickets...)
	cp.ClaimedRoutes = append([]string(nil), p.ClaimedRoutes...)
	return &cp
}

// GameSession is the authoritative in-memory state of one game. It is owned
// exclusively by the session manager; everything handed to callers or the
// fanout is a Clone.
type GameSession struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Players         []*Player           `json:"players"`
	CurrentPlayerID uuid.UUID           `json:"currentPlayerId"`
	Phase           GamePhase           `json:"phase"`
	TrainCardDeck   []TrainCard         `json:"trainCardDeck"`
	FaceUpCards     []TrainCard         `json:"faceUpCards"`
	TicketDeck      []DestinationTicket `json:"destinationTicketDeck"`
	AllRoutes       []*Route            `json:"allRoutes"`
	Cities          []City              `json:"cities"`
	CreatedAt       time.Time           `json:"createdAt"`
	StartedAt       *time.Time          `json:"startedAt,omitempty"`
	FinishedAt      *time.Time          `json:"finishedAt,omitempty"`
	Settings        map[string]any      `json:"gameSettings"`
	FinalScored     bool                `json:"finalScored"`
}

// MarshalJSON emits availableRoutes alongside the stored fields so clients
// can always resynchronize from a snapshot without deriving claim state.
func (s *GameSession) MarshalJSON() ([]byte, error) {
	type alias GameSession
	return json.Marshal(struct {
		*alias
		AvailableRoutes []*Route `json:"availableRoutes"`
	}{(*alias)(s), s.AvailableRoutes()})
}

// UnmarshalJSON accepts snapshots produced by MarshalJSON; availableRoutes
// is derived and therefore ignored on the way in.
func (s *GameSession) UnmarshalJSON(data []byte) error {
	type alias GameSession
	return json.Unmarshal(data, (*alias)(s))
}

// PlayerByID returns the session player with the given id, or nil.
func (s *GameSession) PlayerByID(id uuid.UUID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasPlayer reports whether the id belongs to a session participant.
func (s *GameSession) HasPlayer(id uuid.UUID) bool {
	return s.PlayerByID(id) != nil
}

// CurrentPlayer returns the player whose turn it is, or nil outside of
// active play.
func (s *GameSession) CurrentPlayer() *Player {
	if s.CurrentPlayerID == uuid.Nil {
		return nil
	}
	return s.PlayerByID(s.CurrentPlayerID)
}

// RouteByID returns the route with the given id, claimed or not, or nil.
func (s *GameSession) RouteByID(id string) *Route {
	for _, r := range s.AllRoutes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// AvailableRoutes returns the routes not yet claimed by any player.
func (s *GameSession) AvailableRoutes() []*Route {
	avail := make([]*Route, 0, len(s.AllRoutes))
	for _, r := range s.AllRoutes {
		if r.ClaimedBy == nil {
			avail = append(avail, r)
		}
	}
	return avail
}

// Clone returns a deep copy of the session, safe to hand outside the
// manager's lock.
func (s *GameSession) Clone() *GameSession {
	cp := *s
	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.Clone()
	}
	cp.TrainCardDeck = append([]TrainCard(nil), s.TrainCardDeck...)
	cp.FaceUpCards = append([]TrainCard(nil), s.FaceUpCards...)
	cp.TicketDeck = append([]DestinationTicket(nil), s.TicketDeck...)
	cp.AllRoutes = make([]*Route, len(s.AllRoutes))
	for i, r := range s.AllRoutes {
		rc := *r
		if r.ClaimedBy != nil {
			owner := *r.ClaimedBy
			rc.ClaimedBy = &owner
		}
		cp.AllRoutes[i] = &rc
	}
	cp.Cities = append([]City(nil), s.Cities...)
	if s.StartedAt != nil {
		t := *s.StartedAt
		cp.StartedAt = &t
	}
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		cp.FinishedAt = &t
	}
	if s.Settings != nil {
		cp.Settings = make(map[string]any, len(s.Settings))
		for k, v := range s.Settings {
			cp.Settings[k] = v
		}
	}
	return &cp
}
