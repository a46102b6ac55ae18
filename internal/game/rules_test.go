// internal/game/rules_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

func card(color models.Color) models.TrainCard {
	return models.TrainCard{ID: uuid.New(), Color: color}
}

func locomotive() models.TrainCard {
	return models.TrainCard{ID: uuid.New(), Color: models.ColorWild, IsLocomotive: true}
}

func ids(cards ...models.TrainCard) []uuid.UUID {
	out := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestValidateClaim(t *testing.T) {
	red1, red2, red3 := card(models.ColorRed), card(models.ColorRed), card(models.ColorRed)
	blue := card(models.ColorBlue)
	loco := locomotive()
	p := &models.Player{
		ID:   uuid.New(),
		Hand: []models.TrainCard{red1, red2, red3, blue, loco},
	}
	redRoute := &models.Route{ID: "r", Length: 3, Color: models.ColorRed}
	grayRoute := &models.Route{ID: "g", Length: 2, Color: models.ColorGray}

	tests := []struct {
		name    string
		route   *models.Route
		cardIDs []uuid.UUID
		wantErr bool
	}{
		{"exact matching payment", redRoute, ids(red1, red2, red3), false},
		{"locomotive substitutes", redRoute, ids(red1, red2, loco), false},
		{"underpayment", redRoute, ids(red1, red2), true},
		{"overpayment", redRoute, []uuid.UUID{red1.ID, red2.ID, red3.ID, blue.ID}, true},
		{"wrong color", redRoute, ids(red1, red2, blue), true},
		{"card not in hand", redRoute, []uuid.UUID{red1.ID, red2.ID, uuid.New()}, true},
		{"same card twice", redRoute, []uuid.UUID{red1.ID, red1.ID, red2.ID}, true},
		{"gray single color", grayRoute, ids(red1, red2), false},
		{"gray color plus locomotive", grayRoute, ids(blue, loco), false},
		{"gray all locomotives", grayRoute, ids(loco, loco), true}, // duplicate id, still rejected
		{"gray mixed colors", grayRoute, ids(red1, blue), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateClaim(p, tt.route, tt.cardIDs)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, KindInvalidClaim, err.Kind)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestDrawFromPilesPrefersFaceUp(t *testing.T) {
	faceUp := card(models.ColorRed)
	deckCard := card(models.ColorBlue)
	s := &models.GameSession{
		FaceUpCards:   []models.TrainCard{faceUp},
		TrainCardDeck: []models.TrainCard{deckCard},
	}

	drawn, err := drawFromPiles(s, []uuid.UUID{faceUp.ID, deckCard.ID})
	require.Nil(t, err)
	require.Len(t, drawn, 2)
	assert.Empty(t, s.FaceUpCards)
	assert.Empty(t, s.TrainCardDeck)
}

func TestDrawFromPilesRejectsUnknownCardUntouched(t *testing.T) {
	faceUp := card(models.ColorRed)
	s := &models.GameSession{FaceUpCards: []models.TrainCard{faceUp}}

	_, err := drawFromPiles(s, []uuid.UUID{faceUp.ID, uuid.New()})
	require.NotNil(t, err)
	assert.Equal(t, KindCardUnavailable, err.Kind)
	assert.Len(t, s.FaceUpCards, 1, "failed validation must not mutate piles")
}

func TestRefillFaceUpArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		faceUp     int
		deck       int
		wantFaceUp int
		wantDeck   int
	}{
		{"full refill", 2, 10, 5, 7},
		{"deck shorter than gap", 1, 2, 3, 0},
		{"empty deck shrinks gracefully", 3, 0, 3, 0},
		{"already full", 5, 4, 5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &models.GameSession{}
			for i := 0; i < tt.faceUp; i++ {
				s.FaceUpCards = append(s.FaceUpCards, card(models.ColorRed))
			}
			for i := 0; i < tt.deck; i++ {
				s.TrainCardDeck = append(s.TrainCardDeck, card(models.ColorBlue))
			}
			refillFaceUp(s)
			assert.Len(t, s.FaceUpCards, tt.wantFaceUp)
			assert.Len(t, s.TrainCardDeck, tt.wantDeck)
		})
	}
}

func TestDealTrainCardsShortDeck(t *testing.T) {
	s := &models.GameSession{TrainCardDeck: []models.TrainCard{card(models.ColorRed), card(models.ColorBlue)}}
	p := &models.Player{ID: uuid.New()}

	dealTrainCards(s, p, 4)
	assert.Len(t, p.Hand, 2, "short deck deals fewer, silently")
	assert.Empty(t, s.TrainCardDeck)
}

func TestTakeTicketsValidatesFirst(t *testing.T) {
	t1 := models.DestinationTicket{ID: uuid.New(), FromCityID: "a", ToCityID: "b"}
	t2 := models.DestinationTicket{ID: uuid.New(), FromCityID: "b", ToCityID: "c"}
	s := &models.GameSession{TicketDeck: []models.DestinationTicket{t1, t2}}

	_, err := takeTickets(s, []uuid.UUID{t1.ID, uuid.New()})
	require.NotNil(t, err)
	assert.Equal(t, KindTicketUnavailable, err.Kind)
	assert.Len(t, s.TicketDeck, 2)

	taken, err := takeTickets(s, []uuid.UUID{t2.ID})
	require.Nil(t, err)
	require.Len(t, taken, 1)
	assert.Equal(t, t2.ID, taken[0].ID)
	require.Len(t, s.TicketDeck, 1)
	assert.Equal(t, t1.ID, s.TicketDeck[0].ID)
}

func TestAdvanceTurnCycles(t *testing.T) {
	var players []*models.Player
	for i := 0; i < 3; i++ {
		players = append(players, &models.Player{ID: uuid.New()})
	}
	s := &models.GameSession{Players: players, CurrentPlayerID: players[0].ID}
	players[0].IsCurrentTurn = true

	order := []uuid.UUID{players[1].ID, players[2].ID, players[0].ID}
	for _, want := range order {
		next := advanceTurn(s)
		assert.Equal(t, want, next.ID)
		assert.Equal(t, want, s.CurrentPlayerID)
		current := 0
		for _, p := range s.Players {
			if p.IsCurrentTurn {
				current++
			}
		}
		assert.Equal(t, 1, current, "exactly one player holds the turn")
	}
}

func TestNextPlayerColorFollowsPalette(t *testing.T) {
	s := &models.GameSession{}
	for i, want := range models.PlayerColors {
		got := nextPlayerColor(s)
		assert.Equalf(t, want, got, "player %d", i+1)
		s.Players = append(s.Players, &models.Player{ID: uuid.New(), Color: got})
	}
}
