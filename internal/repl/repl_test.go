package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/log"
	"github.com/peterkuimelis/ccgx/internal/view"
)

func raiderDeck(n int) []*game.Card {
	cards := make([]*game.Card, n)
	for i := range cards {
		cards[i] = game.BogRaider()
	}
	return cards
}

// newTestREPL builds a game where both players hold three Bog Raiders, so player 1's
// opening actions are three plays followed by end turn.
func newTestREPL(t *testing.T, input string) (*REPL, *game.Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	e := game.NewEngine(game.EngineConfig{
		Player1:      "Alice",
		Player2:      "Bob",
		Deck1:        raiderDeck(10),
		Deck2:        raiderDeck(10),
		NoShuffle:    true,
		OpeningHand2: 3,
		Logger:       log.NewTextLogger(&out),
	})
	require.True(t, e.StartTurn().Success)
	return New(e, strings.NewReader(input), &out), e, &out
}

func TestRunRendersBoardAndQuits(t *testing.T) {
	r, _, out := newTestREPL(t, "q\n")
	require.NoError(t, r.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "OPPONENT Bob (HP: 30/30)")
	assert.Contains(t, s, "YOU Alice (HP: 30/30)  Mana: 1/1  Hand: 3")
	assert.Contains(t, s, "Hand: [Bog Raider (1) 1/2]")
	assert.Contains(t, s, "4) End turn")
	assert.Contains(t, s, "Bye.")
}

func TestHotSeatHandover(t *testing.T) {
	r, e, out := newTestREPL(t, "4\n1\nq\n")
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, game.Player2, e.State.CurrentID())
	s := out.String()
	assert.Contains(t, s, "Alice has ended the turn | pass to Bob")
	assert.Contains(t, s, "YOU Bob (HP: 30/30)  Mana: 2/2")
	assert.Contains(t, s, "T1  P2 | === Turn 1 (P2, 2 mana) ===", "engine events are printed")
}

func TestPlayAction(t *testing.T) {
	r, e, out := newTestREPL(t, "1\nq\n")
	require.NoError(t, r.Run(context.Background()))

	require.Len(t, e.State.Player1.Battlefield, 1)
	assert.Contains(t, out.String(), "[Bog Raider 1/2 #")
	assert.Contains(t, out.String(), " z]", "fresh minions are marked as unable to attack")
}

func TestInvalidInput(t *testing.T) {
	r, e, out := newTestREPL(t, "abc\n9\n\nq\n")
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 3, strings.Count(out.String(), "Enter a number between 1 and 4"))
	assert.Empty(t, e.State.Player1.Battlefield)
}

func TestHistoryCommand(t *testing.T) {
	r, _, out := newTestREPL(t, "1\nhistory\nq\n")
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), `"action":"play_card"`)
}

func TestEOFEndsRun(t *testing.T) {
	r, _, _ := newTestREPL(t, "")
	assert.NoError(t, r.Run(context.Background()))

	r, e, _ := newTestREPL(t, "1")
	assert.NoError(t, r.Run(context.Background()))
	assert.Len(t, e.State.Player1.Battlefield, 1, "a final line without newline still counts")
}

func TestGameOver(t *testing.T) {
	r, e, out := newTestREPL(t, "")
	e.State.Player2.Hero.Health = 0
	require.True(t, e.CheckWinCondition())

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "GAME OVER")
	assert.Contains(t, out.String(), "Alice wins")
}

func TestLethalSpellEndsGame(t *testing.T) {
	var out bytes.Buffer
	bolts := make([]*game.Card, 10)
	for i := range bolts {
		bolts[i] = game.Firebolt()
	}
	e := game.NewEngine(game.EngineConfig{
		Player1:   "Alice",
		Player2:   "Bob",
		Deck1:     bolts,
		Deck2:     raiderDeck(10),
		NoShuffle: true,
		Logger:    log.NewTextLogger(&out),
	})
	require.True(t, e.StartTurn().Success)
	e.State.Player2.Hero.Health = 2

	// Action 1 is the first Firebolt aimed at the enemy hero; the rest of the input is never read.
	r := New(e, strings.NewReader(strings.Repeat("1\n", 5)), &out)
	require.NoError(t, r.Run(context.Background()))

	assert.True(t, e.State.GameOver)
	assert.Equal(t, game.Player1, e.State.Winner)
	assert.Equal(t, 0, e.State.Player2.Hero.Health)
	assert.Equal(t, 1, strings.Count(out.String(), "> "), "the game ends after the first command")
	assert.Contains(t, out.String(), "GAME OVER")
	assert.Contains(t, out.String(), "Alice wins")
}

func TestDeadHeroEndsGameBeforePrompt(t *testing.T) {
	r, e, out := newTestREPL(t, strings.Repeat("1\n", 20))
	e.State.Player2.Hero.Health = 0

	require.NoError(t, r.Run(context.Background()))
	assert.True(t, e.State.GameOver)
	assert.Empty(t, e.State.Player1.Battlefield)
	assert.NotContains(t, out.String(), "> ")
	assert.Contains(t, out.String(), "Alice wins")
}

func TestContextCancelled(t *testing.T) {
	r, _, _ := newTestREPL(t, "q\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestFormatMinion(t *testing.T) {
	m := view.CardView{ID: 7, Name: "Temple Guardian", Attack: 3, Health: 3, Taunt: true, DivineShield: true}
	assert.Equal(t, "[Temple Guardian 3/3 #7 TSz]", formatMinion(m, true))
	assert.Equal(t, "[Temple Guardian 3/3 #7 TS]", formatMinion(m, false))

	m = view.CardView{ID: 2, Name: "Wisp Sentry", Health: 1, CanAttack: true}
	assert.Equal(t, "[Wisp Sentry 0/1 #2]", formatMinion(m, true))
	assert.Equal(t, "(empty)", formatBoard(nil, true))
}
