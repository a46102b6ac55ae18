// internal/game/connectivity.go
package game

import "github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"

// unionFind is a disjoint-set over city ids with path compression.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	root, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if root == x {
		return x
	}
	r := u.find(root)
	u.parent[x] = r
	return r
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (u *unionFind) connected(a, b string) bool {
	return u.find(a) == u.find(b)
}

// playerNetwork builds the disjoint-set induced by one player's claimed
// routes. Route ids that no longer resolve are skipped.
func playerNetwork(s *models.GameSession, p *models.Player) *unionFind {
	uf := newUnionFind()
	for _, routeID := range p.ClaimedRoutes {
		r := s.RouteByID(routeID)
		if r == nil {
			continue
		}
		uf.union(r.FromCityID, r.ToCityID)
	}
	return uf
}

// Connected reports whether the player's claimed routes join the two
// cities. Only this player's routes count; other players' claims do not
// extend the network.
func Connected(s *models.GameSession, p *models.Player, fromCityID, toCityID string) bool {
	return playerNetwork(s, p).connected(fromCityID, toCityID)
}
