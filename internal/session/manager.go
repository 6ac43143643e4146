// Package session keeps the live games of a process and serializes commands per game.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/config"
	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/log"
	"github.com/peterkuimelis/ccgx/internal/view"
)

var (
	ErrNotFound      = errors.New("game not found")
	ErrTooManyGames  = errors.New("too many active games")
	ErrInvalidAction = errors.New("invalid action index")
)

// Options configures a Manager.
type Options struct {
	Decks *game.DeckFile

	Player1Name string
	Player2Name string
	Deck1       int // 1-indexed default deck numbers
	Deck2       int

	DrawOnTurnStart bool
	OpeningHand     int // player 1's opening hand; player 2 draws one more. 0 for engine defaults.
	Seed            int64
	NoShuffle       bool

	MaxGames    int
	IdleTimeout time.Duration
}

// OptionsFromConfig maps loaded configuration onto manager options.
func OptionsFromConfig(cfg *config.Config, decks *game.DeckFile) Options {
	return Options{
		Decks:           decks,
		Player1Name:     cfg.Game.Player1Name,
		Player2Name:     cfg.Game.Player2Name,
		Deck1:           cfg.Decks.Player1,
		Deck2:           cfg.Decks.Player2,
		DrawOnTurnStart: cfg.Game.DrawOnTurnStart,
		OpeningHand:     cfg.Game.OpeningHand,
		Seed:            cfg.Game.Seed,
		NoShuffle:       cfg.Game.NoShuffle,
		MaxGames:        cfg.Session.MaxGames,
		IdleTimeout:     cfg.Session.IdleTimeout,
	}
}

// NewGameRequest overrides the manager defaults for one game. Zero values keep the defaults.
type NewGameRequest struct {
	Player1 string
	Player2 string
	Deck1   int
	Deck2   int
	Seed    int64
}

// Manager manages active games.
type Manager struct {
	opts   Options
	games  map[string]*Game
	mu     sync.RWMutex
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a new game manager. A nil deck file means the built-in decks.
func NewManager(opts Options, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Decks == nil {
		df, err := game.DefaultDeckFile()
		if err != nil {
			return nil, fmt.Errorf("load built-in decks: %w", err)
		}
		opts.Decks = df
	}
	if opts.Deck1 == 0 {
		opts.Deck1 = 1
	}
	if opts.Deck2 == 0 {
		opts.Deck2 = min(2, len(opts.Decks.Decks))
	}
	if opts.Player1Name == "" {
		opts.Player1Name = "Player 1"
	}
	if opts.Player2Name == "" {
		opts.Player2Name = "Player 2"
	}
	return &Manager{
		opts:   opts,
		games:  make(map[string]*Game),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Decks returns the deck file games are built from.
func (m *Manager) Decks() *game.DeckFile {
	return m.opts.Decks
}

// Create builds a new game from req and opens player 1's first turn.
func (m *Manager) Create(req NewGameRequest) (*Game, error) {
	deck1, deck2 := m.opts.Deck1, m.opts.Deck2
	if req.Deck1 != 0 {
		deck1 = req.Deck1
	}
	if req.Deck2 != 0 {
		deck2 = req.Deck2
	}
	name1, cards1, err := m.opts.Decks.DeckByNumber(deck1)
	if err != nil {
		return nil, fmt.Errorf("player 1 deck: %w", err)
	}
	name2, cards2, err := m.opts.Decks.DeckByNumber(deck2)
	if err != nil {
		return nil, fmt.Errorf("player 2 deck: %w", err)
	}

	p1, p2 := m.opts.Player1Name, m.opts.Player2Name
	if req.Player1 != "" {
		p1 = req.Player1
	}
	if req.Player2 != "" {
		p2 = req.Player2
	}
	seed := m.opts.Seed
	if req.Seed != 0 {
		seed = req.Seed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opts.MaxGames > 0 && len(m.games) >= m.opts.MaxGames {
		return nil, fmt.Errorf("%w (limit %d)", ErrTooManyGames, m.opts.MaxGames)
	}

	id := uuid.NewString()
	events := log.NewZapLogger(m.logger.With(zap.String("game_id", id)))
	cfg := game.EngineConfig{
		Player1:         p1,
		Player2:         p2,
		Deck1:           cards1,
		Deck2:           cards2,
		Logger:          events,
		Seed:            seed,
		NoShuffle:       m.opts.NoShuffle,
		DrawOnTurnStart: m.opts.DrawOnTurnStart,
	}
	if n := m.opts.OpeningHand; n > 0 {
		cfg.OpeningHand1, cfg.OpeningHand2 = n, n+1
	}

	engine := game.NewEngine(cfg)
	engine.StartTurn()

	now := m.now()
	g := &Game{
		ID:        id,
		Deck1:     name1,
		Deck2:     name2,
		CreatedAt: now,
		engine:    engine,
		events:    events,
		lastUsed:  now,
		now:       m.now,
	}
	m.games[id] = g

	m.logger.Info("game created",
		zap.String("game_id", id),
		zap.String("player1", p1),
		zap.String("player2", p2),
		zap.String("deck1", name1),
		zap.String("deck2", name2),
	)
	return g, nil
}

// Get retrieves a game by ID.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g, nil
}

// Remove drops a game. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; ok {
		delete(m.games, id)
		m.logger.Info("game removed", zap.String("game_id", id))
	}
}

// List returns the ids of all active games, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of active games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// ReapIdle removes games that have not been used for longer than the idle timeout
// and returns how many were removed.
func (m *Manager) ReapIdle() int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.opts.IdleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for id, g := range m.games {
		if g.LastUsed().Before(cutoff) {
			delete(m.games, id)
			reaped++
			m.logger.Info("idle game reaped", zap.String("game_id", id))
		}
	}
	return reaped
}

// Run reaps idle games every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.ReapIdle(); n > 0 {
				m.logger.Debug("reaper pass", zap.Int("reaped", n), zap.Int("active", m.Count()))
			}
		}
	}
}

// --- Game ---

// Game is one live match. All access to its engine goes through the game's mutex.
type Game struct {
	ID        string
	Deck1     string
	Deck2     string
	CreatedAt time.Time

	mu       sync.Mutex
	engine   *game.Engine
	events   *log.ZapLogger
	seen     int // last event sequence handed out by Apply or Events
	lastUsed time.Time
	now      func() time.Time
}

// Do runs fn with exclusive access to the engine.
func (g *Game) Do(fn func(e *game.Engine)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastUsed = g.now()
	fn(g.engine)
}

// Apply runs cmd and returns its result with the events it produced. A successful
// command is followed by a win check, so a lethal blow ends the game.
func (g *Game) Apply(cmd game.Command) (game.Result, []log.GameEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apply(cmd)
}

// ApplyAction runs the i-th (0-based) legal command. The list is resolved under the same
// lock as the command, so it can't go stale between the lookup and the apply.
func (g *Game) ApplyAction(i int) (game.Result, []log.GameEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cmds := g.engine.LegalCommands()
	if i < 0 || i >= len(cmds) {
		return game.Result{}, nil, fmt.Errorf("%w: %d (have %d)", ErrInvalidAction, i, len(cmds))
	}
	res, events := g.apply(cmds[i])
	return res, events, nil
}

func (g *Game) apply(cmd game.Command) (game.Result, []log.GameEvent) {
	g.lastUsed = g.now()
	res := g.engine.Apply(cmd)
	if res.Success && cmd.Type != game.CmdCheckWin {
		g.engine.CheckWinCondition()
	}
	return res, g.drain()
}

// Events returns the events logged since the last Apply or Events call.
func (g *Game) Events() []log.GameEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.drain()
}

func (g *Game) drain() []log.GameEvent {
	events := g.events.Since(g.seen)
	if n := len(events); n > 0 {
		g.seen = events[n-1].Seq
	}
	return events
}

// State returns the board from perspective's point of view. NoPlayer means the player to act.
func (g *Game) State(perspective game.PlayerID) *view.StateView {
	g.mu.Lock()
	defer g.mu.Unlock()
	if perspective == game.NoPlayer {
		perspective = g.engine.State.CurrentID()
	}
	return view.BuildStateView(g.engine.State, perspective)
}

// Snapshot returns the board and the legal actions read under one lock.
func (g *Game) Snapshot(perspective game.PlayerID) (*view.StateView, []view.ActionView) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if perspective == game.NoPlayer {
		perspective = g.engine.State.CurrentID()
	}
	return view.BuildStateView(g.engine.State, perspective), view.ActionViews(g.engine.LegalCommands())
}

// Actions returns the numbered legal commands for the player to act.
func (g *Game) Actions() []view.ActionView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return view.ActionViews(g.engine.LegalCommands())
}

// History returns a copy of the action log.
func (g *Game) History() []game.HistoryRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]game.HistoryRecord(nil), g.engine.State.History...)
}

// Summary describes the outcome so far.
func (g *Game) Summary() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Summary()
}

// LastUsed returns when the game last handled a command.
func (g *Game) LastUsed() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastUsed
}
