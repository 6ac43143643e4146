// Package web serves the browser renderer: card and deck catalogs, a small REST API over
// the session manager and a websocket bridge for hot-seat play.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/log"
	"github.com/peterkuimelis/ccgx/internal/session"
	"github.com/peterkuimelis/ccgx/internal/view"
)

//go:embed static
var staticFiles embed.FS

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// NewGameRequest is the body of POST /api/games.
type NewGameRequest struct {
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Deck1   int    `json:"deck1,omitempty"`
	Deck2   int    `json:"deck2,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
}

// Server is the ccgx web UI server.
type Server struct {
	games  *session.Manager
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(games *session.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		games:  games,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	s.mux.HandleFunc("GET /api/games/{id}/history", s.handleHistory)
	s.mux.HandleFunc("POST /api/games/{id}/commands", s.handleCommand)

	// Hot-seat websocket
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// --- Catalog ---

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []view.CardView
	for _, c := range game.Catalog() {
		cards = append(cards, view.TemplateView(c))
	}
	for _, def := range s.games.Decks().Cards {
		c, err := def.Template()
		if err != nil {
			continue
		}
		cards = append(cards, view.TemplateView(c))
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df := s.games.Decks()
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
		}
		for _, c := range d.Cards {
			di.Cards = append(di.Cards, c.Name)
			di.Size += c.Count
		}
		decks = append(decks, di)
	}
	writeJSON(w, http.StatusOK, decks)
}

// --- Games ---

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"games": s.games.List()})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	g, err := s.games.Create(session.NewGameRequest{
		Player1: req.Player1,
		Player2: req.Player2,
		Deck1:   req.Deck1,
		Deck2:   req.Deck2,
		Seed:    req.Seed,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, session.ErrTooManyGames) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, snapshot(g, "state", nil, g.Events()))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshot(g, "state", nil, g.Events()))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.lookup(w, r); !ok {
		return
	}
	s.games.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.History())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var cmd game.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid command: %v", err))
		return
	}
	res, events := g.Apply(cmd)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, snapshot(g, "result", &res, events))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Game, bool) {
	g, err := s.games.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return g, true
}

// --- WebSocket ---

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := &wsSession{server: s}
	s.logger.Debug("websocket connected", zap.String("remote", r.RemoteAddr))

	for {
		var msg view.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				s.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
		reply := conn.handle(msg)
		if err := wsjson.Write(ctx, wsConn, reply); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

// wsSession is one browser connection, bound to at most one game at a time.
type wsSession struct {
	server *Server
	game   *session.Game
}

func (c *wsSession) handle(msg view.ClientMessage) view.ServerMessage {
	switch msg.Type {
	case "new_game":
		g, err := c.server.games.Create(session.NewGameRequest{Deck1: msg.Deck1, Deck2: msg.Deck2})
		if err != nil {
			return errorMessage(err.Error())
		}
		c.game = g
		return snapshot(g, "state", nil, g.Events())

	case "join":
		g, err := c.server.games.Get(msg.GameID)
		if err != nil {
			return errorMessage(err.Error())
		}
		c.game = g
		return snapshot(g, "state", nil, g.Events())
	}

	if c.game == nil {
		return errorMessage("no game: send new_game or join first")
	}

	switch msg.Type {
	case "state":
		return snapshot(c.game, "state", nil, c.game.Events())

	case "command":
		if msg.Command == nil {
			return errorMessage("command message without a command")
		}
		res, events := c.game.Apply(*msg.Command)
		return snapshot(c.game, "result", &res, events)

	case "action":
		res, events, err := c.game.ApplyAction(msg.Index)
		if err != nil {
			return errorMessage(err.Error())
		}
		return snapshot(c.game, "result", &res, events)
	}

	return errorMessage(fmt.Sprintf("unknown message type %q", msg.Type))
}

// --- Responses ---

// snapshot shows the board from the acting player's side, which is what a hot-seat screen wants.
func snapshot(g *session.Game, typ string, res *game.Result, events []log.GameEvent) view.ServerMessage {
	st, actions := g.Snapshot(game.NoPlayer)
	return view.ServerMessage{
		Type:    typ,
		GameID:  g.ID,
		State:   st,
		Result:  res,
		Events:  view.EventViews(events),
		Actions: actions,
	}
}

func errorMessage(msg string) view.ServerMessage {
	return view.ServerMessage{Type: "error", Error: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorMessage(msg))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("web server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
