package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/ccgx/internal/log"
)

const (
	OpeningHandFirst  = 3
	OpeningHandSecond = 4
)

// EngineConfig holds configuration for creating a new match.
type EngineConfig struct {
	Player1 string
	Player2 string
	Deck1   []*Card // Player 1's deck (card templates), drawn in slice order when NoShuffle is set
	Deck2   []*Card // Player 2's deck
	Logger  log.EventLogger
	Seed    int64 // RNG seed (0 for random)

	NoShuffle bool // skip deck shuffle (for deterministic tests)

	// Opening hand sizes; zero means OpeningHandFirst/OpeningHandSecond. Ignored for empty decks.
	OpeningHand1 int
	OpeningHand2 int

	// DrawOnTurnStart makes every StartTurn draw a card for the new current player.
	DrawOnTurnStart bool
}

// Engine is the single owner of a Game. Every command validates its preconditions,
// mutates the game, appends a history record and reports a Result. Nothing is mutated
// when a command fails.
//
// An Engine is not safe for concurrent use; see internal/session for serialized access.
type Engine struct {
	State  *Game
	Logger log.EventLogger

	drawOnTurnStart bool
}

// NewEngine creates a game from cfg: decks are built (and shuffled unless disabled)
// and opening hands dealt. Player1 is to act with one mana crystal.
func NewEngine(cfg EngineConfig) *Engine {
	g := CreateGame(cfg.Player1, cfg.Player2)
	e := ForGame(g, cfg.Logger)
	e.drawOnTurnStart = cfg.DrawOnTurnStart

	buildDeck(g, g.Player1, cfg.Deck1)
	buildDeck(g, g.Player2, cfg.Deck2)

	if !cfg.NoShuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		g.Player1.ShuffleDeck(rng)
		g.Player2.ShuffleDeck(rng)
	}

	deal(g.Player1, cfg.OpeningHand1, OpeningHandFirst)
	deal(g.Player2, cfg.OpeningHand2, OpeningHandSecond)

	return e
}

// ForGame wraps an existing game. A nil logger records events in memory.
func ForGame(g *Game, logger log.EventLogger) *Engine {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Engine{State: g, Logger: logger}
}

// SetDrawOnTurnStart toggles drawing a card at the start of every turn after the opening one.
func (e *Engine) SetDrawOnTurnStart(on bool) {
	e.drawOnTurnStart = on
}

// buildDeck creates instances so that cards[0] ends up on top of the deck.
func buildDeck(g *Game, p *Player, cards []*Card) {
	for i := len(cards) - 1; i >= 0; i-- {
		ci := g.CreateCardInstance(cards[i], p.ID)
		p.Deck = append(p.Deck, ci)
	}
}

func deal(p *Player, n, def int) {
	if len(p.Deck) == 0 {
		return
	}
	if n == 0 {
		n = def
	}
	for i := 0; i < n && len(p.Deck) > 0; i++ {
		p.DrawCard()
	}
}

// --- Turn state machine ---

// StartTurn hands control to the next player and refreshes its resources.
//
// On the very first call of a fresh game (no EndTurn yet) it opens player1's first turn
// in place; creation already granted that turn's mana crystal. Every other call switches
// the current player, grows its mana (player2's first turn is granted 2 directly, later
// turns +1 up to MaxMana), refills it, clears the hero power flag and wakes its minions.
// TurnNumber increments when control returns to player1.
func (e *Engine) StartTurn() Result {
	g := e.State
	if g.GameOver {
		return reject(KindGameOver, "Game is over")
	}

	opening := !g.started && !g.TurnEnded
	g.started = true
	g.TurnEnded = false

	if !opening {
		g.current = g.current.Other()
		if g.current == Player1 {
			g.TurnNumber++
		}
	}

	p := g.CurrentPlayer()
	if !opening {
		if p.ID == Player2 && !g.player2Started {
			p.MaxMana = 2
		} else {
			p.MaxMana = min(p.MaxMana+1, MaxMana)
		}
	}
	if p.ID == Player2 {
		g.player2Started = true
	}
	p.CurrentMana = p.MaxMana
	p.UsedHeroPower = false
	p.Hero.AttackedThisTurn = false
	for _, m := range p.Battlefield {
		m.CanAttack = true
	}

	g.record(HistoryRecord{Action: ActionStartTurn, Player: p.ID})
	e.log(log.NewTurnEvent(g.TurnNumber, int(p.ID), p.MaxMana))

	if e.drawOnTurnStart && !opening {
		e.draw(p)
		e.sweepDead()
	}

	return succeed("Turn %d: %s to act with %d mana", g.TurnNumber, p.Name, p.CurrentMana)
}

// EndTurn closes the acting player's turn. Control does not move until StartTurn.
func (e *Engine) EndTurn() Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()
	g.TurnEnded = true
	g.record(HistoryRecord{Action: ActionEndTurn, Player: p.ID})
	e.log(log.NewEndTurnEvent(g.TurnNumber, int(p.ID)))
	return succeed("%s ends the turn", p.Name)
}

// DrawCard draws the top card of the current player's deck. Drawing from an empty deck
// deals increasing fatigue damage to the hero instead.
func (e *Engine) DrawCard() Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	p := e.State.CurrentPlayer()
	card := e.draw(p)
	e.sweepDead()
	if card == nil {
		return succeed("%s takes %d fatigue damage", p.Name, p.Fatigue)
	}
	if card.Zone == ZoneGraveyard {
		return succeed("%s's hand is full, %s is burned", p.Name, card.Name())
	}
	return succeed("%s draws %s", p.Name, card.Name())
}

func (e *Engine) draw(p *Player) *CardInstance {
	g := e.State
	card := p.DrawCard()
	rec := HistoryRecord{Action: ActionDrawCard, Player: p.ID}
	switch {
	case card == nil:
		p.Fatigue++
		rec.Damage = p.Fatigue
		e.log(log.NewFatigueEvent(g.TurnNumber, int(p.ID), p.Fatigue))
		e.damageHero(p, p.Fatigue)
	case card.Zone == ZoneGraveyard:
		rec.Card, rec.CardID = card.Name(), card.ID
		e.log(log.NewBurnEvent(g.TurnNumber, int(p.ID), card.Name()))
	default:
		rec.Card, rec.CardID = card.Name(), card.ID
		e.log(log.NewDrawEvent(g.TurnNumber, int(p.ID), card.Name()))
	}
	g.record(rec)
	return card
}

// --- Win condition ---

// CheckWinCondition ends the game if a hero has fallen. It is never invoked implicitly.
// The survivor wins; if both heroes are at or below zero the game is a draw.
// Returns whether the game is over. Calls after the game ended are no-ops.
func (e *Engine) CheckWinCondition() bool {
	g := e.State
	if g.GameOver {
		return true
	}

	p1Dead := g.Player1.Hero.Health <= 0
	p2Dead := g.Player2.Hero.Health <= 0

	switch {
	case p1Dead && p2Dead:
		g.Draw = true
		g.Winner = NoPlayer
		e.log(log.NewTieEvent(g.TurnNumber))
	case p1Dead:
		g.Winner = Player2
		e.log(log.NewWinEvent(g.TurnNumber, int(Player2), fmt.Sprintf("%s's hero was destroyed", g.Player1.Name)))
	case p2Dead:
		g.Winner = Player1
		e.log(log.NewWinEvent(g.TurnNumber, int(Player1), fmt.Sprintf("%s's hero was destroyed", g.Player2.Name)))
	default:
		return false
	}

	g.GameOver = true
	g.record(HistoryRecord{Action: ActionGameOver, Player: g.current, Winner: g.Winner})
	return true
}

// Summary describes the game outcome in one line.
func (e *Engine) Summary() string {
	g := e.State
	switch {
	case !g.GameOver:
		return "Game in progress"
	case g.Draw:
		return "Draw: both heroes fell"
	default:
		return fmt.Sprintf("%s wins", g.Player(g.Winner).Name)
	}
}

// --- Shared helpers ---

// precheck rejects commands against a finished game or a closed turn.
func (e *Engine) precheck() (Result, bool) {
	g := e.State
	if g.GameOver {
		return reject(KindGameOver, "Game is over"), false
	}
	if g.TurnEnded {
		return reject(KindTurnEnded, "%s has already ended the turn", g.CurrentPlayer().Name), false
	}
	return Result{}, true
}

func (e *Engine) damageHero(p *Player, amount int) {
	if amount <= 0 {
		return
	}
	h := p.Hero
	old := h.Health
	h.Health -= amount
	e.log(log.NewDamageEvent(e.State.TurnNumber, int(p.ID), h.Name+" (hero)", amount, old, h.Health))
}

func (e *Engine) damageMinion(m *CardInstance, amount int) {
	if amount <= 0 {
		return
	}
	old := m.Health
	if m.takeDamage(amount) {
		e.log(log.NewShieldBrokenEvent(e.State.TurnNumber, int(m.Owner), m.Name()))
		return
	}
	e.log(log.NewDamageEvent(e.State.TurnNumber, int(m.Owner), m.Name(), amount, old, m.Health))
}

func (e *Engine) damageTarget(t Target, amount int) {
	if t.Kind == TargetHero {
		e.damageHero(e.State.Player(t.Player), amount)
		return
	}
	e.damageMinion(t.Minion, amount)
}

// sweepDead moves dead minions and broken weapons to their graveyards. It runs at the end
// of every command that can deal damage, so no command returns with a dead card in play.
// Health values are left as they were (possibly negative).
func (e *Engine) sweepDead() {
	g := e.State
	for _, p := range [2]*Player{g.Player1, g.Player2} {
		alive := p.Battlefield[:0]
		var dead []*CardInstance
		for _, m := range p.Battlefield {
			if m.IsDead() {
				dead = append(dead, m)
			} else {
				alive = append(alive, m)
			}
		}
		p.Battlefield = alive
		for _, m := range dead {
			p.SendToGraveyard(m)
			e.log(log.NewMinionDiedEvent(g.TurnNumber, int(p.ID), m.Name()))
		}

		if w := p.Weapon; w != nil && w.IsDead() {
			p.Weapon = nil
			p.SendToGraveyard(w)
			e.log(log.NewWeaponBrokenEvent(g.TurnNumber, int(p.ID), w.Name()))
		}
	}
}

// log emits a game event through the logger.
func (e *Engine) log(event log.GameEvent) {
	e.Logger.Log(event)
}
