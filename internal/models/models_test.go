// internal/models/models_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *GameSession {
	p1 := &Player{
		ID:            uuid.New(),
		Name:          "Ann",
		Color:         "red",
		TrainCars:     StartingTrainCars,
		Hand:          []TrainCard{{ID: uuid.New(), Color: ColorRed}},
		ClaimedRoutes: []string{"a-b"},
		IsCurrentTurn: true,
	}
	owner := p1.ID
	return &GameSession{
		ID:              uuid.New(),
		Name:            "Alpha",
		Players:         []*Player{p1},
		CurrentPlayerID: p1.ID,
		Phase:           PhasePlaying,
		TrainCardDeck:   []TrainCard{{ID: uuid.New(), Color: ColorBlue}},
		FaceUpCards:     []TrainCard{{ID: uuid.New(), Color: ColorGreen}},
		AllRoutes: []*Route{
			{ID: "a-b", FromCityID: "a", ToCityID: "b", Length: 2, Color: ColorRed, Points: 2, ClaimedBy: &owner},
			{ID: "b-c", FromCityID: "b", ToCityID: "c", Length: 1, Color: ColorGray, Points: 1},
		},
		Cities:    []City{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}},
		CreatedAt: time.Now().UTC(),
		Settings:  map[string]any{"variant": "standard"},
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := sampleSession()
	cp := s.Clone()

	cp.Players[0].Hand[0].Color = ColorBlack
	cp.Players[0].Score = 99
	cp.AllRoutes[1].ClaimedBy = &cp.Players[0].ID
	cp.TrainCardDeck[0].Color = ColorPink
	cp.Settings["variant"] = "mutated"

	assert.Equal(t, ColorRed, s.Players[0].Hand[0].Color)
	assert.Zero(t, s.Players[0].Score)
	assert.Nil(t, s.AllRoutes[1].ClaimedBy)
	assert.Equal(t, ColorBlue, s.TrainCardDeck[0].Color)
	assert.Equal(t, "standard", s.Settings["variant"])
}

func TestAvailableRoutesExcludesClaimed(t *testing.T) {
	s := sampleSession()
	avail := s.AvailableRoutes()
	require.Len(t, avail, 1)
	assert.Equal(t, "b-c", avail[0].ID)
}

func TestMarshalEmitsAvailableRoutes(t *testing.T) {
	s := sampleSession()
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "availableRoutes")
	require.Contains(t, decoded, "allRoutes")

	var avail []Route
	require.NoError(t, json.Unmarshal(decoded["availableRoutes"], &avail))
	require.Len(t, avail, 1)
	assert.Equal(t, "b-c", avail[0].ID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := sampleSession()
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var loaded GameSession
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, s.Phase, loaded.Phase)
	require.Len(t, loaded.AllRoutes, 2)
	require.NotNil(t, loaded.AllRoutes[0].ClaimedBy)
	assert.Equal(t, s.Players[0].ID, *loaded.AllRoutes[0].ClaimedBy)
	assert.Len(t, loaded.AvailableRoutes(), 1, "availability derives from claim state after reload")
}

func TestPlayerLookups(t *testing.T) {
	s := sampleSession()
	p := s.Players[0]

	assert.True(t, s.HasPlayer(p.ID))
	assert.False(t, s.HasPlayer(uuid.New()))
	assert.Equal(t, p, s.CurrentPlayer())
	assert.True(t, p.HasCard(p.Hand[0].ID))
	assert.Nil(t, p.CardByID(uuid.New()))
	assert.Nil(t, s.RouteByID("nope"))
}
