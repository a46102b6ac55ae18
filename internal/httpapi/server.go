// internal/httpapi/server.go
//
// Request/response boundary: REST endpoints for every session operation and
// the websocket attach endpoint for the real-time event stream. Responses
// use the {success, data, error} envelope the clients already speak.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/game"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/ws"
)

// Server wires the session manager and the fanout hub to HTTP.
type Server struct {
	manager *game.Manager
	hub     *ws.Hub
	log     *logrus.Logger
}

// New builds the HTTP boundary.
func New(manager *game.Manager, hub *ws.Hub, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{manager: manager, hub: hub, log: log}
}

// Routes returns the full handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	mux.HandleFunc("POST /api/games/{id}/start", s.handleStartGame)
	mux.HandleFunc("POST /api/games/{id}/draw-cards", s.handleDrawCards)
	mux.HandleFunc("POST /api/games/{id}/claim-route", s.handleClaimRoute)
	mux.HandleFunc("POST /api/games/{id}/draw-tickets", s.handleDrawTickets)
	mux.HandleFunc("POST /api/games/{id}/end-turn", s.handleEndTurn)
	mux.HandleFunc("GET /api/games/{id}/ws", s.handleWebSocket)
	return allowAllCORS(mux)
}

// allowAllCORS mirrors the permissive CORS policy of the reference backend.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// envelope is the uniform response body.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createGameRequest struct {
	Name       string `json:"name"`
	PlayerName string `json:"playerName"`
}

type joinGameRequest struct {
	PlayerName string `json:"playerName"`
}

type startGameRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
}

type drawCardsRequest struct {
	PlayerID uuid.UUID   `json:"playerId"`
	CardIDs  []uuid.UUID `json:"cardIds"`
}

type claimRouteRequest struct {
	PlayerID uuid.UUID   `json:"playerId"`
	RouteID  string      `json:"routeId"`
	CardIDs  []uuid.UUID `json:"cardIds"`
}

type drawTicketsRequest struct {
	PlayerID  uuid.UUID   `json:"playerId"`
	TicketIDs []uuid.UUID `json:"ticketIds"`
}

type endTurnRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Ticket to Ride API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, founder, err := s.manager.CreateSession(r.Context(), req.Name, req.PlayerName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{
		"gameId":   snap.ID,
		"playerId": founder.ID,
		"game":     snap,
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, map[string]any{"games": s.manager.ListSessions(r.Context())})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := s.manager.GetSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req joinGameRequest
	if !s.decode(w, r, &req) {
		return
	}
	player, snap, err := s.manager.JoinSession(r.Context(), id, req.PlayerName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"playerId": player.ID, "game": snap})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req startGameRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.manager.StartSession(r.Context(), id, req.PlayerID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

func (s *Server) handleDrawCards(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req drawCardsRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.manager.DrawTrainCards(r.Context(), id, req.PlayerID, req.CardIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

func (s *Server) handleClaimRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req claimRouteRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.manager.ClaimRoute(r.Context(), id, req.PlayerID, req.RouteID, req.CardIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

func (s *Server) handleDrawTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req drawTicketsRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.manager.DrawDestinationTickets(r.Context(), id, req.PlayerID, req.TicketIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req endTurnRequest
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.manager.EndTurn(r.Context(), id, req.PlayerID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{"game": snap})
}

// handleWebSocket attaches a subscriber to the session's event stream. The
// connection stays open until the client goes away; incoming frames are
// drained and ignored.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	playerID, err := uuid.Parse(r.URL.Query().Get("playerId"))
	if err != nil {
		s.writeBadRequest(w, "playerId query parameter must be a valid id")
		return
	}
	snap, err := s.manager.GetSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !snap.HasPlayer(playerID) {
		s.writeError(w, &game.Error{Kind: game.KindNotAParticipant, Message: "player is not part of this session"})
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	s.hub.Attach(sessionID, playerID, c)

	ctx := r.Context()
	for {
		if _, _, err := c.Read(ctx); err != nil {
			break
		}
	}

	s.hub.Detach(sessionID, playerID)
	s.manager.HandleDisconnect(ctx, sessionID, playerID)
	c.Close(websocket.StatusNormalClosure, "")
}

// sessionID parses the {id} path segment; malformed ids surface as NotFound
// since no such session can exist.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &game.Error{Kind: game.KindNotFound, Message: "session not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeBadRequest(w, "malformed request body")
		return false
	}
	return true
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Code: "badRequest", Message: msg},
	})
}

// writeError maps game error kinds onto HTTP statuses: NotFound to 404,
// every other rule violation to 400.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := game.KindOf(err)
	if kind == "" {
		s.log.WithError(err).Error("internal error")
		writeJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Error:   &errorBody{Code: "internal", Message: "internal server error"},
		})
		return
	}
	status := http.StatusBadRequest
	if kind == game.KindNotFound {
		status = http.StatusNotFound
	}
	msg := err.Error()
	var ge *game.Error
	if errors.As(err, &ge) {
		msg = ge.Message
	}
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &errorBody{Code: string(kind), Message: msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
