// internal/catalog/catalog_test.go
package catalog

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestTrainDeckComposition(t *testing.T) {
	cat := Default()
	deck := cat.NewTrainDeck(rand.New(rand.NewSource(1)))

	require.Len(t, deck, 110, "standard deck is 8x12 colors + 14 locomotives")

	locomotives := 0
	perColor := map[models.Color]int{}
	seen := map[string]bool{}
	for _, c := range deck {
		require.False(t, seen[c.ID.String()], "card ids must be unique")
		seen[c.ID.String()] = true
		if c.IsLocomotive {
			locomotives++
			assert.Equal(t, models.ColorWild, c.Color)
		} else {
			perColor[c.Color]++
		}
	}
	assert.Equal(t, 14, locomotives)
	for color, n := range perColor {
		assert.Equalf(t, 12, n, "color %s", color)
	}
}

func TestNewRoutesAreIndependentCopies(t *testing.T) {
	cat := Default()
	a := cat.NewRoutes()
	b := cat.NewRoutes()

	owner := uuid.New()
	a[0].ClaimedBy = &owner

	assert.Nil(t, b[0].ClaimedBy, "claim state must not leak between sessions")
	for _, r := range a {
		assert.Equal(t, PointsForLength(r.Length), r.Points)
	}
}

func TestTicketDeckMintsFreshIDs(t *testing.T) {
	cat := Default()
	a := cat.NewTicketDeck(rand.New(rand.NewSource(7)))
	b := cat.NewTicketDeck(rand.New(rand.NewSource(7)))

	require.Len(t, a, len(cat.Tickets))
	ids := map[string]bool{}
	for _, tk := range a {
		ids[tk.ID.String()] = true
	}
	for _, tk := range b {
		assert.False(t, ids[tk.ID.String()], "ticket ids must be session-scoped")
	}
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"unknown route city", func(c *Catalog) { c.Routes[0].FromCityID = "atlantis" }},
		{"route length out of range", func(c *Catalog) { c.Routes[0].Length = 7 }},
		{"duplicate city id", func(c *Catalog) { c.Cities[1].ID = c.Cities[0].ID }},
		{"asymmetric double link", func(c *Catalog) {
			for i := range c.Routes {
				if c.Routes[i].IsDoubleRoute {
					c.Routes[i].DoubleRouteID = c.Routes[0].ID
					return
				}
			}
		}},
		{"ticket to unknown city", func(c *Catalog) { c.Tickets[0].ToCityID = "atlantis" }},
		{"self-connecting ticket", func(c *Catalog) { c.Tickets[0].ToCityID = c.Tickets[0].FromCityID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Default()
			// Default() shares backing arrays; rebuild mutable copies.
			cat.Cities = append([]models.City(nil), cat.Cities...)
			cat.Routes = append([]RouteDef(nil), cat.Routes...)
			cat.Tickets = append([]TicketDef(nil), cat.Tickets...)
			tt.mutate(cat)
			assert.Error(t, cat.Validate())
		})
	}
}
