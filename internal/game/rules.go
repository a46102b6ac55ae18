// internal/game/rules.go
//
// Stateless decision functions consumed by the session manager. Every
// function either inspects a session snapshot and returns a typed failure,
// or applies a mutation whose validation has already succeeded. No I/O,
// deterministic given inputs.
package game

import (
	"github.com/google/uuid"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

// initialHandSize is the number of train cards dealt to each player on
// create/join.
const initialHandSize = 4

// faceUpSize is the target size of the face-up pool.
const faceUpSize = 5

// initialTicketDeal is the number of destination tickets dealt per player at
// session start.
const initialTicketDeal = 3

// maxPlayers is the session capacity.
const maxPlayers = 5

// endgameTrainCars is the supply threshold at or below which a claim ends
// the game.
const endgameTrainCars = 2

// guardPhase fails with WrongPhase unless the session is in one of the
// allowed phases.
func guardPhase(s *models.GameSession, allowed ...models.GamePhase) *Error {
	for _, ph := range allowed {
		if s.Phase == ph {
			return nil
		}
	}
	return newError(KindWrongPhase, "operation not allowed while session is %s", s.Phase)
}

// requireParticipant fails with NotAParticipant unless playerID belongs to
// the session.
func requireParticipant(s *models.GameSession, playerID uuid.UUID) (*models.Player, *Error) {
	p := s.PlayerByID(playerID)
	if p == nil {
		return nil, newError(KindNotAParticipant, "player %s is not part of session %s", playerID, s.ID)
	}
	return p, nil
}

// requireTurn fails with NotYourTurn unless playerID is the acting player.
func requireTurn(s *models.GameSession, playerID uuid.UUID) *Error {
	if s.CurrentPlayerID != playerID {
		return newError(KindNotYourTurn, "it is not player %s's turn", playerID)
	}
	return nil
}

// validateClaim checks a route-claim payment: exact card count, every card
// in the player's hand, and colors compatible with the route. Gray routes
// accept any single color; locomotives are wild everywhere.
func validateClaim(p *models.Player, route *models.Route, cardIDs []uuid.UUID) *Error {
	if len(cardIDs) != route.Length {
		return newError(KindInvalidClaim, "route %s needs exactly %d cards, got %d", route.ID, route.Length, len(cardIDs))
	}

	cards := make([]models.TrainCard, 0, len(cardIDs))
	seen := make(map[uuid.UUID]bool, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return newError(KindInvalidClaim, "card %s submitted twice", id)
		}
		seen[id] = true
		card := p.CardByID(id)
		if card == nil {
			return newError(KindInvalidClaim, "card %s is not in player %s's hand", id, p.ID)
		}
		cards = append(cards, *card)
	}

	if route.Color == models.ColorGray {
		// All non-locomotive cards must share one color.
		var common models.Color
		for _, c := range cards {
			if c.IsLocomotive {
				continue
			}
			if common == "" {
				common = c.Color
			} else if c.Color != common {
				return newError(KindInvalidClaim, "gray route %s requires cards of a single color", route.ID)
			}
		}
		return nil
	}

	for _, c := range cards {
		if !c.IsLocomotive && c.Color != route.Color {
			return newError(KindInvalidClaim, "card %s does not match route color %s", c.ID, route.Color)
		}
	}
	return nil
}

// removeFromHand removes the identified cards from the player's hand.
// Callers must have validated membership already.
func removeFromHand(p *models.Player, cardIDs []uuid.UUID) {
	for _, id := range cardIDs {
		for i, c := range p.Hand {
			if c.ID == id {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				break
			}
		}
	}
}

// drawFromPiles moves the requested cards out of the face-up pool or the
// deck, preferring the face-up instance. Fails with CardUnavailable before
// touching anything if any id is absent from both.
func drawFromPiles(s *models.GameSession, cardIDs []uuid.UUID) ([]models.TrainCard, *Error) {
	available := make(map[uuid.UUID]bool, len(s.FaceUpCards)+len(s.TrainCardDeck))
	for _, c := range s.FaceUpCards {
		available[c.ID] = true
	}
	for _, c := range s.TrainCardDeck {
		available[c.ID] = true
	}
	for _, id := range cardIDs {
		if !available[id] {
			return nil, newError(KindCardUnavailable, "card %s is not available to draw", id)
		}
	}

	drawn := make([]models.TrainCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		if card, ok := takeCard(&s.FaceUpCards, id); ok {
			drawn = append(drawn, card)
			continue
		}
		if card, ok := takeCard(&s.TrainCardDeck, id); ok {
			drawn = append(drawn, card)
		}
	}
	return drawn, nil
}

// takeCard removes and returns the card with the given id from the pile.
func takeCard(pile *[]models.TrainCard, id uuid.UUID) (models.TrainCard, bool) {
	for i, c := range *pile {
		if c.ID == id {
			*pile = append((*pile)[:i], (*pile)[i+1:]...)
			return c, true
		}
	}
	return models.TrainCard{}, false
}

// refillFaceUp tops the face-up pool back up to five cards from the deck.
// When the deck runs dry the pool shrinks gracefully; there is no discard
// pile to reshuffle.
func refillFaceUp(s *models.GameSession) {
	for len(s.FaceUpCards) < faceUpSize && len(s.TrainCardDeck) > 0 {
		s.FaceUpCards = append(s.FaceUpCards, s.TrainCardDeck[0])
		s.TrainCardDeck = s.TrainCardDeck[1:]
	}
}

// dealTrainCards moves up to n cards from the top of the deck into the
// player's hand. A short deck deals fewer, silently.
func dealTrainCards(s *models.GameSession, p *models.Player, n int) {
	if n > len(s.TrainCardDeck) {
		n = len(s.TrainCardDeck)
	}
	p.Hand = append(p.Hand, s.TrainCardDeck[:n]...)
	s.TrainCardDeck = s.TrainCardDeck[n:]
}

// dealTickets moves up to n tickets from the top of the deck into the
// player's ticket set. A short deck deals fewer, silently.
func dealTickets(s *models.GameSession, p *models.Player, n int) {
	if n > len(s.TicketDeck) {
		n = len(s.TicketDeck)
	}
	p.DestinationTickets = append(p.DestinationTickets, s.TicketDeck[:n]...)
	s.TicketDeck = s.TicketDeck[n:]
}

// takeTickets moves the requested tickets out of the ticket deck. Fails
// with TicketUnavailable before touching anything if any id is absent.
func takeTickets(s *models.GameSession, ticketIDs []uuid.UUID) ([]models.DestinationTicket, *Error) {
	inDeck := make(map[uuid.UUID]bool, len(s.TicketDeck))
	for _, t := range s.TicketDeck {
		inDeck[t.ID] = true
	}
	for _, id := range ticketIDs {
		if !inDeck[id] {
			return nil, newError(KindTicketUnavailable, "ticket %s is not available to draw", id)
		}
	}

	taken := make([]models.DestinationTicket, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		for i, t := range s.TicketDeck {
			if t.ID == id {
				taken = append(taken, t)
				s.TicketDeck = append(s.TicketDeck[:i], s.TicketDeck[i+1:]...)
				break
			}
		}
	}
	return taken, nil
}

// advanceTurn moves the current-turn marker to the next player in the fixed
// turn order, cyclically, and returns the new current player.
func advanceTurn(s *models.GameSession) *models.Player {
	next := 0
	for i, p := range s.Players {
		if p.ID == s.CurrentPlayerID {
			next = (i + 1) % len(s.Players)
			break
		}
	}
	s.CurrentPlayerID = s.Players[next].ID
	for _, p := range s.Players {
		p.IsCurrentTurn = p.ID == s.CurrentPlayerID
	}
	return s.Players[next]
}

// nextPlayerColor returns the lowest palette color not used by any player.
func nextPlayerColor(s *models.GameSession) string {
	used := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		used[p.Color] = true
	}
	for _, c := range models.PlayerColors {
		if !used[c] {
			return c
		}
	}
	// Session capacity equals the palette size, so this is unreachable
	// while the GameFull guard holds.
	return models.PlayerColors[0]
}
