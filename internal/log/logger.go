package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns the events logged after the given sequence number.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	for i, e := range l.events {
		if e.Seq > seq {
			return l.events[i:]
		}
	}
	return nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	if p == 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", p)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %s | %s", e.Turn, playerName(e.Player), e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player int, mana int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Amount:  mana,
		Details: fmt.Sprintf("=== Turn %d (%s, %d mana) ===", turn, playerName(player), mana),
	}
}

func NewEndTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends the turn", playerName(player)),
	}
}

func NewDrawEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewBurnEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventBurn,
		Card:    cardName,
		Details: fmt.Sprintf("%s's hand is full, %s is burned", playerName(player), cardName),
	}
}

func NewFatigueEvent(turn int, player int, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventFatigue,
		Amount:  damage,
		Details: fmt.Sprintf("%s's deck is empty: %d fatigue damage", playerName(player), damage),
	}
}

func NewPlayMinionEvent(turn int, player int, cardName string, atk, hp int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlayMinion,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (%d/%d)", playerName(player), cardName, atk, hp),
	}
}

func NewCastSpellEvent(turn int, player int, cardName string, target string) GameEvent {
	details := fmt.Sprintf("%s casts %s", playerName(player), cardName)
	if target != "" {
		details += " → " + target
	}
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCastSpell,
		Card:    cardName,
		Details: details,
	}
}

func NewEquipWeaponEvent(turn int, player int, cardName string, atk, durability int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventEquipWeapon,
		Card:    cardName,
		Details: fmt.Sprintf("%s equips %s (%d/%d)", playerName(player), cardName, atk, durability),
	}
}

func NewHeroPowerEvent(turn int, player int, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventHeroPower,
		Amount:  cost,
		Details: fmt.Sprintf("%s uses the hero power (%d mana)", playerName(player), cost),
	}
}

func NewAttackDeclareEvent(turn int, player int, attacker string, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks: %s → %s", playerName(player), attacker, defender),
	}
}

func NewDamageEvent(turn int, player int, target string, amount int, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDamage,
		Card:    target,
		Amount:  amount,
		Details: fmt.Sprintf("%s takes %d damage (%d → %d)", target, amount, oldHP, newHP),
	}
}

func NewShieldBrokenEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventShieldBroken,
		Card:    cardName,
		Details: fmt.Sprintf("%s's divine shield absorbs the damage", cardName),
	}
}

func NewMinionDiedEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventMinionDied,
		Card:    cardName,
		Details: fmt.Sprintf("%s dies and goes to %s's graveyard", cardName, playerName(player)),
	}
}

func NewWeaponBrokenEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventWeaponBroken,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s breaks", playerName(player), cardName),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewTieEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTie,
		Details: "Draw: both heroes fell at the same time",
	}
}
