package mcp

import (
	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/session"
	"github.com/peterkuimelis/ccgx/internal/view"
)

// maxAutopilotSteps bounds a single autopilot turn.
const maxAutopilotSteps = 64

// Autopilot plays the seat opposite the MCP caller. It only ever picks from the
// legal command list, so every choice it makes succeeds.
type Autopilot struct {
	player game.PlayerID
}

// NewAutopilot creates an autopilot for the given player.
func NewAutopilot(player game.PlayerID) *Autopilot {
	return &Autopilot{player: player}
}

// Choose returns the index of the action to take. The order of preference is: develop the
// board, burn the enemy with spells, attack the enemy hero, trade into taunts, swing with
// the hero, hero power, end turn.
func (a *Autopilot) Choose(st *view.StateView, actions []view.ActionView) int {
	enemy := make(map[int]bool, len(st.Opponent.Battlefield))
	for _, m := range st.Opponent.Battlefield {
		enemy[m.ID] = true
	}
	hostile := func(ref *game.TargetRef) bool {
		if ref == nil {
			return false
		}
		if ref.Kind == "hero" {
			return ref.Player != a.player
		}
		return enemy[ref.CardID]
	}

	best, bestScore := len(actions)-1, -1
	for i, act := range actions {
		score := -1
		cmd := act.Command
		switch cmd.Type {
		case game.CmdPlayCard:
			switch {
			case cmd.Target == nil:
				score = 60
			case hostile(cmd.Target) && cmd.Target.Kind == "minion":
				score = 50
			case hostile(cmd.Target):
				score = 40
			}
		case game.CmdAttack:
			if cmd.Target != nil && cmd.Target.Kind == "hero" {
				score = 30
			} else {
				score = 20
			}
		case game.CmdHeroAttack:
			score = 15
		case game.CmdUseHeroPower:
			score = 10
		case game.CmdEndTurn, game.CmdStartTurn:
			score = 0
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// PlayTurn starts the autopilot's turn unless it is already open, plays it out and hands
// the turn back, returning every event produced along the way.
func (a *Autopilot) PlayTurn(g *session.Game) []view.EventView {
	var events []view.EventView
	apply := func(cmd game.Command) game.Result {
		res, evs := g.Apply(cmd)
		events = append(events, view.EventViews(evs)...)
		return res
	}

	apply(game.Command{Type: game.CmdCheckWin})
	if st := g.State(a.player); st.GameOver {
		return events
	} else if !st.IsYourTurn || st.TurnEnded {
		apply(game.Command{Type: game.CmdStartTurn})
	}
	for step := 0; step < maxAutopilotSteps; step++ {
		// A hero may already be dead from damage dealt outside this loop.
		apply(game.Command{Type: game.CmdCheckWin})
		st, actions := g.Snapshot(a.player)
		if st.GameOver || !st.IsYourTurn || st.TurnEnded || len(actions) == 0 {
			break
		}
		cmd := actions[a.Choose(st, actions)].Command
		if !apply(cmd).Success || cmd.Type == game.CmdEndTurn {
			break
		}
	}

	st := g.State(a.player)
	if st.GameOver {
		return events
	}
	if !st.TurnEnded {
		apply(game.Command{Type: game.CmdEndTurn})
	}
	apply(game.Command{Type: game.CmdStartTurn})
	return events
}
