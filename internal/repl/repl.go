// Package repl is the local hot-seat terminal front end: both players share one terminal
// and pick numbered actions in turn.
package repl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/view"
)

// REPL drives one engine from line-based input.
type REPL struct {
	engine *game.Engine
	in     *bufio.Reader
	out    io.Writer
}

// New creates a REPL over e. Engine events are printed by whatever logger e was built
// with, typically a log.TextLogger writing to out.
func New(e *game.Engine, in io.Reader, out io.Writer) *REPL {
	return &REPL{engine: e, in: bufio.NewReader(in), out: out}
}

// Run plays until the game ends, the input is exhausted, the user quits or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := r.engine.State
		if r.engine.CheckWinCondition() {
			r.renderGameOver()
			return nil
		}

		r.renderState(view.BuildStateView(g, g.CurrentID()))
		actions := view.ActionViews(r.engine.LegalCommands())
		r.renderActions(actions)

		cmd, err := r.readCommand(actions)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if cmd == nil {
			fmt.Fprintln(r.out, "Bye.")
			return nil
		}

		res := r.engine.Apply(*cmd)
		if !res.Success {
			fmt.Fprintf(r.out, "✗ %s\n", res.Error)
		}
	}
}

// readCommand prompts until the user picks an action. A nil command means quit.
func (r *REPL) readCommand(actions []view.ActionView) (*game.Command, error) {
	for {
		fmt.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return nil, err
		}

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return nil, nil
		case "h", "help", "?":
			r.renderHelp()
			continue
		case "history":
			r.renderHistory()
			continue
		case "s", "state":
			g := r.engine.State
			r.renderState(view.BuildStateView(g, g.CurrentID()))
			r.renderActions(actions)
			continue
		}

		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(actions) {
			fmt.Fprintf(r.out, "Enter a number between 1 and %d (or 'help')\n", len(actions))
			if err != nil {
				return nil, err
			}
			continue
		}
		cmd := actions[n-1].Command
		return &cmd, nil
	}
}

// --- Rendering ---

func (r *REPL) renderState(sv *view.StateView) {
	w := r.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT %s (HP: %d/%d)  Mana: %d/%d  Hand: %d  Deck: %d  Graveyard: %d\n",
		opp.Name, opp.HP, opp.MaxHP, opp.Mana, opp.MaxMana, opp.HandCount, opp.DeckCount, opp.GraveyardCount)
	if opp.Weapon != nil {
		fmt.Fprintf(w, "║  Weapon:  %s\n", formatWeapon(*opp.Weapon))
	}
	fmt.Fprintf(w, "║  Board:   %s\n", formatBoard(opp.Battlefield, false))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Board:   %s\n", formatBoard(you.Battlefield, true))
	if you.Weapon != nil {
		fmt.Fprintf(w, "║  Weapon:  %s\n", formatWeapon(*you.Weapon))
	}
	fmt.Fprintf(w, "║  YOU %s (HP: %d/%d)  Mana: %d/%d  Hand: %d  Deck: %d  Graveyard: %d\n",
		you.Name, you.HP, you.MaxHP, you.Mana, you.MaxMana, you.HandCount, you.DeckCount, you.GraveyardCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, you.Name)
	switch {
	case sv.TurnEnded:
		turnInfo += fmt.Sprintf(" has ended the turn | pass to %s", opp.Name)
	case you.UsedHeroPower:
		turnInfo += " to act | hero power used"
	default:
		turnInfo += " to act"
	}
	fmt.Fprintln(w, turnInfo)

	if !sv.TurnEnded && len(you.Hand) > 0 {
		fmt.Fprint(w, "\nHand: ")
		for _, c := range you.Hand {
			fmt.Fprintf(w, "%s  ", formatHandCard(c))
		}
		fmt.Fprintln(w)
	}
}

func (r *REPL) renderActions(actions []view.ActionView) {
	fmt.Fprintln(r.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(r.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (r *REPL) renderHelp() {
	fmt.Fprintln(r.out, "Enter an action number to play it.")
	fmt.Fprintln(r.out, "  state    redraw the board")
	fmt.Fprintln(r.out, "  history  print the action history as JSON lines")
	fmt.Fprintln(r.out, "  quit     leave the game")
}

func (r *REPL) renderHistory() {
	enc := json.NewEncoder(r.out)
	for _, rec := range r.engine.State.History {
		enc.Encode(rec)
	}
}

func (r *REPL) renderGameOver() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	fmt.Fprintln(r.out, "          GAME OVER")
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	fmt.Fprintln(r.out, r.engine.Summary())
	fmt.Fprintln(r.out, "═══════════════════════════════════")
}

func formatBoard(minions []view.CardView, isOwner bool) string {
	if len(minions) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(minions))
	for i, m := range minions {
		parts[i] = formatMinion(m, isOwner)
	}
	return strings.Join(parts, " ")
}

// formatMinion renders "[Name atk/hp #id]" with T for taunt, S for divine shield and,
// on the owner's side, z for a minion that cannot attack yet.
func formatMinion(m view.CardView, isOwner bool) string {
	var flags string
	if m.Taunt {
		flags += "T"
	}
	if m.DivineShield {
		flags += "S"
	}
	if isOwner && !m.CanAttack {
		flags += "z"
	}
	if flags != "" {
		flags = " " + flags
	}
	return fmt.Sprintf("[%s %d/%d #%d%s]", m.Name, m.Attack, m.Health, m.ID, flags)
}

func formatWeapon(w view.CardView) string {
	return fmt.Sprintf("[%s %d/%d]", w.Name, w.Attack, w.Health)
}

func formatHandCard(c view.CardView) string {
	switch c.Type {
	case "Minion":
		return fmt.Sprintf("[%s (%d) %d/%d]", c.Name, c.Cost, c.Attack, c.Health)
	case "Spell":
		return fmt.Sprintf("[%s (%d) %d dmg]", c.Name, c.Cost, c.Damage)
	case "Weapon":
		return fmt.Sprintf("[%s (%d) %d/%d]", c.Name, c.Cost, c.Attack, c.Health)
	}
	return fmt.Sprintf("[%s (%d)]", c.Name, c.Cost)
}
