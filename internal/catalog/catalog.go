// internal/catalog/catalog.go
//
// The content catalog holds the immutable static tables a session is built
// from: cities, routes, train-card composition, and destination tickets.
// Sessions never share catalog-derived state; every accessor returns fresh
// deep copies so per-session claim state cannot leak across sessions.
package catalog

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"
)

// RouteDef describes one claimable route between two cities.
type RouteDef struct {
	ID            string
	FromCityID    string
	ToCityID      string
	Length        int
	Color         models.Color
	IsDoubleRoute bool
	DoubleRouteID string
}

// CardDef describes one color's share of the train-card deck.
type CardDef struct {
	Color        models.Color
	Count        int
	IsLocomotive bool
}

// TicketDef describes one destination ticket.
type TicketDef struct {
	FromCityID string
	ToCityID   string
	Points     int
	Penalty    int
}

// Catalog is the full immutable content set. Loaded once at process start.
type Catalog struct {
	Cities  []models.City
	Routes  []RouteDef
	Cards   []CardDef
	Tickets []TicketDef
}

// routePoints maps route length to the points awarded on claim.
var routePoints = map[int]int{1: 1, 2: 2, 3: 4, 4: 7, 5: 10, 6: 15}

// PointsForLength returns the points a route of the given length awards.
func PointsForLength(length int) int {
	return routePoints[length]
}

// Validate checks the referential integrity of the catalog. A failure here
// is fatal at startup; it is never part of the per-request error taxonomy.
func (c *Catalog) Validate() error {
	if len(c.Cities) == 0 {
		return fmt.Errorf("catalog: no cities defined")
	}
	cities := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		if city.ID == "" {
			return fmt.Errorf("catalog: city %q has empty id", city.Name)
		}
		if cities[city.ID] {
			return fmt.Errorf("catalog: duplicate city id %q", city.ID)
		}
		cities[city.ID] = true
	}

	routes := make(map[string]RouteDef, len(c.Routes))
	for _, r := range c.Routes {
		if r.ID == "" {
			return fmt.Errorf("catalog: route between %q and %q has empty id", r.FromCityID, r.ToCityID)
		}
		if _, dup := routes[r.ID]; dup {
			return fmt.Errorf("catalog: duplicate route id %q", r.ID)
		}
		if !cities[r.FromCityID] || !cities[r.ToCityID] {
			return fmt.Errorf("catalog: route %q references unknown city", r.ID)
		}
		if r.Length < 1 || r.Length > 6 {
			return fmt.Errorf("catalog: route %q has length %d outside 1..6", r.ID, r.Length)
		}
		if r.Color == models.ColorWild {
			return fmt.Errorf("catalog: route %q cannot be wild-colored", r.ID)
		}
		routes[r.ID] = r
	}
	for _, r := range c.Routes {
		if !r.IsDoubleRoute {
			continue
		}
		twin, ok := routes[r.DoubleRouteID]
		if !ok {
			return fmt.Errorf("catalog: route %q links missing twin %q", r.ID, r.DoubleRouteID)
		}
		if twin.DoubleRouteID != r.ID {
			return fmt.Errorf("catalog: double route link %q <-> %q is not symmetric", r.ID, r.DoubleRouteID)
		}
	}

	for i, card := range c.Cards {
		if card.Count <= 0 {
			return fmt.Errorf("catalog: card composition entry %d has count %d", i, card.Count)
		}
	}
	for i, t := range c.Tickets {
		if !cities[t.FromCityID] || !cities[t.ToCityID] {
			return fmt.Errorf("catalog: ticket %d references unknown city", i)
		}
		if t.FromCityID == t.ToCityID {
			return fmt.Errorf("catalog: ticket %d connects %q to itself", i, t.FromCityID)
		}
	}
	return nil
}

// NewCities returns a fresh copy of the city table.
func (c *Catalog) NewCities() []models.City {
	return append([]models.City(nil), c.Cities...)
}

// NewRoutes instantiates the route table for a new session, all unclaimed.
func (c *Catalog) NewRoutes() []*models.Route {
	routes := make([]*models.Route, len(c.Routes))
	for i, def := range c.Routes {
		routes[i] = &models.Route{
			ID:            def.ID,
			FromCityID:    def.FromCityID,
			ToCityID:      def.ToCityID,
			Length:        def.Length,
			Color:         def.Color,
			Points:        PointsForLength(def.Length),
			IsDoubleRoute: def.IsDoubleRoute,
			DoubleRouteID: def.DoubleRouteID,
		}
	}
	return routes
}

// NewTrainDeck builds and shuffles a full train-card deck with freshly
// minted card ids.
func (c *Catalog) NewTrainDeck(rng *rand.Rand) []models.TrainCard {
	var deck []models.TrainCard
	for _, def := range c.Cards {
		for i := 0; i < def.Count; i++ {
			deck = append(deck, models.TrainCard{
				ID:           uuid.New(),
				Color:        def.Color,
				IsLocomotive: def.IsLocomotive,
			})
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// NewTicketDeck builds and shuffles a destination-ticket deck with freshly
// minted ticket ids.
func (c *Catalog) NewTicketDeck(rng *rand.Rand) []models.DestinationTicket {
	deck := make([]models.DestinationTicket, len(c.Tickets))
	for i, def := range c.Tickets {
		deck[i] = models.DestinationTicket{
			ID:         uuid.New(),
			FromCityID: def.FromCityID,
			ToCityID:   def.ToCityID,
			Points:     def.Points,
			Penalty:    def.Penalty,
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
