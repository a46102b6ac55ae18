// internal/game/scoring.go
package game

import "github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/models"

// applyFinalScores resolves every player's destination tickets against their
// claimed-route network: points added when the endpoints connect, penalty
// deducted when they do not. Runs once per session; re-invocation is a no-op.
func applyFinalScores(s *models.GameSession) {
	if s.FinalScored {
		return
	}
	for _, p := range s.Players {
		network := playerNetwork(s, p)
		for _, t := range p.DestinationTickets {
			if network.connected(t.FromCityID, t.ToCityID) {
				p.Score += t.Points
			} else {
				p.Score -= t.Penalty
			}
		}
	}
	s.FinalScored = true
}

// winner returns the highest-scoring player, ties broken by turn order.
// Nil for an empty session.
func winner(s *models.GameSession) *models.Player {
	var best *models.Player
	for _, p := range s.Players {
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	return best
}

// scoreboard maps player id to final score for the game-ended payload.
func scoreboard(s *models.GameSession) map[string]int {
	scores := make(map[string]int, len(s.Players))
	for _, p := range s.Players {
		scores[p.ID.String()] = p.Score
	}
	return scores
}
