package game

// History action names.
const (
	ActionStartTurn    = "start_turn"
	ActionEndTurn      = "end_turn"
	ActionDrawCard     = "draw_card"
	ActionPlayCard     = "play_card"
	ActionUseHeroPower = "use_hero_power"
	ActionAttack       = "attack"
	ActionHeroAttack   = "hero_attack"
	ActionGameOver     = "game_over"
)

// HistoryRecord is one entry of a game's append-only action log.
// Action, Player and Turn are always set; the rest depend on the action.
type HistoryRecord struct {
	Turn   int      `json:"turn"`
	Action string   `json:"action"`
	Player PlayerID `json:"player"`

	Card     string `json:"card,omitempty"`
	CardID   int    `json:"card_id,omitempty"`
	CardType string `json:"card_type,omitempty"`
	Cost     int    `json:"cost,omitempty"`

	Target      string `json:"target,omitempty"`
	Damage      int    `json:"damage,omitempty"`
	DamageTaken int    `json:"damage_taken,omitempty"`

	Winner PlayerID `json:"winner,omitempty"`
}

func (g *Game) record(rec HistoryRecord) {
	rec.Turn = g.TurnNumber
	g.History = append(g.History, rec)
}

// LastRecord returns the most recent history record, or a zero record if none.
func (g *Game) LastRecord() HistoryRecord {
	if len(g.History) == 0 {
		return HistoryRecord{}
	}
	return g.History[len(g.History)-1]
}

// RecordsOf returns all history records with the given action name.
func (g *Game) RecordsOf(action string) []HistoryRecord {
	var result []HistoryRecord
	for _, r := range g.History {
		if r.Action == action {
			result = append(result, r)
		}
	}
	return result
}
