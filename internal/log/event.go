package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventEndTurn
	EventDraw
	EventBurn // drawn into a full hand
	EventFatigue
	EventPlayMinion
	EventCastSpell
	EventEquipWeapon
	EventHeroPower
	EventAttackDeclare
	EventDamage
	EventShieldBroken
	EventMinionDied
	EventWeaponBroken
	EventWin
	EventTie
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventEndTurn:
		return "EndTurn"
	case EventDraw:
		return "Draw"
	case EventBurn:
		return "Burn"
	case EventFatigue:
		return "Fatigue"
	case EventPlayMinion:
		return "PlayMinion"
	case EventCastSpell:
		return "CastSpell"
	case EventEquipWeapon:
		return "EquipWeapon"
	case EventHeroPower:
		return "HeroPower"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDamage:
		return "Damage"
	case EventShieldBroken:
		return "ShieldBroken"
	case EventMinionDied:
		return "MinionDied"
	case EventWeaponBroken:
		return "WeaponBroken"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // full-round counter (1-based)
	Player  int       // acting player (1 or 2, 0 for none)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Amount  int       // damage, mana or durability involved (if applicable)
	Details string    // human-readable detail string
}
