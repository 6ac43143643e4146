package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/session"
	"github.com/peterkuimelis/ccgx/internal/view"
)

// Opponent modes for new_game.
const (
	OpponentBot  = "bot"  // the autopilot plays the other seat
	OpponentSelf = "self" // the caller plays both seats
)

// seat records which side of a game the MCP caller plays.
type seat struct {
	player game.PlayerID
	bot    *Autopilot // nil when the caller plays both seats
}

// perspective returns the player whose hand is revealed in state views.
func (s seat) perspective() game.PlayerID {
	if s.bot == nil {
		return game.NoPlayer
	}
	return s.player
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string            `json:"game_id"`
	Seat     int               `json:"seat,omitempty"`
	Result   *game.Result      `json:"result,omitempty"`
	Events   []view.EventView  `json:"events"`
	State    *view.StateView   `json:"state,omitempty"`
	Actions  []view.ActionView `json:"actions,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner,omitempty"`
	Draw     bool              `json:"draw,omitempty"`
	Summary  string            `json:"summary,omitempty"`
}

// buildResponse assembles the envelope for g after a command.
func buildResponse(g *session.Game, s seat, res *game.Result, events []view.EventView) *ToolResponse {
	st := g.State(s.perspective())
	resp := &ToolResponse{
		GameID:   g.ID,
		Seat:     int(s.player),
		Result:   res,
		Events:   events,
		State:    st,
		GameOver: st.GameOver,
		Winner:   st.Winner,
		Draw:     st.Draw,
		Summary:  g.Summary(),
	}
	if !st.GameOver && (s.bot == nil || st.IsYourTurn) {
		resp.Actions = g.Actions()
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []view.EventView{}
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
