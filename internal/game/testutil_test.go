package game

import (
	"strings"
	"testing"

	"github.com/peterkuimelis/ccgx/internal/log"
)

// --- Card helpers ---

func vanillaMinion(name string, cost, atk, hp int) *Card {
	return &Card{Name: name, Cost: cost, CardType: CardTypeMinion, Attack: atk, Health: hp}
}

func tauntMinion(name string, cost, atk, hp int) *Card {
	c := vanillaMinion(name, cost, atk, hp)
	c.Taunt = true
	return c
}

func shieldMinion(name string, cost, atk, hp int) *Card {
	c := vanillaMinion(name, cost, atk, hp)
	c.DivineShield = true
	return c
}

func damageSpell(name string, cost, damage int) *Card {
	return &Card{Name: name, Cost: cost, CardType: CardTypeSpell, Damage: damage, NeedsTarget: true}
}

func testWeapon(name string, cost, atk, durability int) *Card {
	return &Card{Name: name, Cost: cost, CardType: CardTypeWeapon, Attack: atk, Health: durability}
}

func fillerDeck(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = vanillaMinion("Filler", 1, 1, 1)
	}
	return cards
}

// --- Engine helpers ---

// newTestEngine returns an engine for a fresh game with empty decks and a memory logger.
func newTestEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{Player1: "Alice", Player2: "Bob", Logger: logger, NoShuffle: true})
	return e, logger
}

// startedEngine returns a fresh engine whose first turn has been opened.
func startedEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	e, logger := newTestEngine(t)
	mustSucceed(t, e.StartTurn())
	return e, logger
}

// summon puts a minion straight onto a player's battlefield, ready to attack.
func summon(e *Engine, id PlayerID, card *Card) *CardInstance {
	ci := e.State.CreateCardInstance(card, id)
	e.State.Player(id).PlaceMinion(ci)
	ci.CanAttack = true
	return ci
}

// equip gives a player a weapon without paying for it.
func equip(e *Engine, id PlayerID, card *Card) *CardInstance {
	ci := e.State.CreateCardInstance(card, id)
	ci.Zone = ZoneWeapon
	e.State.Player(id).Weapon = ci
	return ci
}

// passTurn ends the current turn and starts the next one.
func passTurn(t *testing.T, e *Engine) {
	t.Helper()
	mustSucceed(t, e.EndTurn())
	mustSucceed(t, e.StartTurn())
}

func mustSucceed(t *testing.T, res Result) {
	t.Helper()
	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Error)
	}
}

func mustFail(t *testing.T, res Result, kind ErrorKind, contains string) {
	t.Helper()
	if res.Success {
		t.Fatalf("expected failure (%s), got success: %s", kind, res.Message)
	}
	if res.Kind != kind {
		t.Errorf("expected kind %q, got %q (%s)", kind, res.Kind, res.Error)
	}
	if contains != "" && !strings.Contains(strings.ToLower(res.Error), strings.ToLower(contains)) {
		t.Errorf("expected error containing %q, got %q", contains, res.Error)
	}
}

func cardNames(cards []*CardInstance) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name()
	}
	return names
}
