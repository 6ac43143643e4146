package game

import "fmt"

// --- Enums ---

type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// Other returns the opposing player id.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

type CardType int

const (
	CardTypeMinion CardType = iota
	CardTypeSpell
	CardTypeWeapon
	CardTypeHeroPower
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeMinion:
		return "Minion"
	case CardTypeSpell:
		return "Spell"
	case CardTypeWeapon:
		return "Weapon"
	case CardTypeHeroPower:
		return "HeroPower"
	default:
		return "Unknown"
	}
}

// ParseCardType maps a card type name (as written by String, or its snake_case form) to a CardType.
func ParseCardType(s string) (CardType, error) {
	switch s {
	case "Minion", "minion":
		return CardTypeMinion, nil
	case "Spell", "spell":
		return CardTypeSpell, nil
	case "Weapon", "weapon":
		return CardTypeWeapon, nil
	case "HeroPower", "hero_power":
		return CardTypeHeroPower, nil
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneBattlefield
	ZoneWeapon
	ZoneGraveyard
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneBattlefield:
		return "Battlefield"
	case ZoneWeapon:
		return "Weapon"
	case ZoneGraveyard:
		return "Graveyard"
	default:
		return "Unknown"
	}
}

// --- Card definition (static template) ---

type Card struct {
	Name         string
	Description  string
	Cost         int
	CardType     CardType
	Attack       int
	Health       int // durability for weapons
	Taunt        bool
	DivineShield bool
	Damage       int  // spells only: amount dealt on resolution
	NeedsTarget  bool // spells only
}

func (c *Card) String() string {
	return c.Name
}

// --- CardInstance (runtime card in deck/hand/battlefield/graveyard) ---

type CardInstance struct {
	Card  *Card
	ID    int // unique instance ID within a game
	Owner PlayerID
	Zone  ZoneType

	Attack       int
	Health       int
	CanAttack    bool
	Taunt        bool
	DivineShield bool
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	switch ci.Card.CardType {
	case CardTypeMinion:
		return fmt.Sprintf("%s#%d (%d/%d)", ci.Card.Name, ci.ID, ci.Attack, ci.Health)
	case CardTypeWeapon:
		return fmt.Sprintf("%s#%d (%d/%d dur)", ci.Card.Name, ci.ID, ci.Attack, ci.Health)
	default:
		return fmt.Sprintf("%s#%d", ci.Card.Name, ci.ID)
	}
}

// Name returns the template name.
func (ci *CardInstance) Name() string {
	return ci.Card.Name
}

// Cost returns the mana cost of the underlying template.
func (ci *CardInstance) Cost() int {
	return ci.Card.Cost
}

// Type returns the template card type.
func (ci *CardInstance) Type() CardType {
	return ci.Card.CardType
}

// IsDead reports whether the instance has been reduced to zero or less health (or durability).
func (ci *CardInstance) IsDead() bool {
	return ci.Health <= 0
}

// takeDamage applies amount to the instance. A divine shield absorbs the hit and is cleared.
// Health is never clamped here; removal is handled by the death sweep.
func (ci *CardInstance) takeDamage(amount int) (absorbed bool) {
	if amount <= 0 {
		return false
	}
	if ci.DivineShield {
		ci.DivineShield = false
		return true
	}
	ci.Health -= amount
	return false
}

// --- Targets ---

type TargetKind int

const (
	TargetHero TargetKind = iota
	TargetMinion
)

func (k TargetKind) String() string {
	if k == TargetHero {
		return "hero"
	}
	return "minion"
}

// Target is either a hero (identified by its player) or a minion instance.
type Target struct {
	Kind   TargetKind
	Player PlayerID      // hero targets
	Minion *CardInstance // minion targets
}

// HeroTarget targets the hero of the given player.
func HeroTarget(p PlayerID) Target {
	return Target{Kind: TargetHero, Player: p}
}

// MinionTarget targets a minion instance.
func MinionTarget(ci *CardInstance) Target {
	return Target{Kind: TargetMinion, Minion: ci}
}

func (t Target) String() string {
	if t.Kind == TargetHero {
		return fmt.Sprintf("%s hero", t.Player)
	}
	if t.Minion == nil {
		return "(no minion)"
	}
	return fmt.Sprintf("%s#%d", t.Minion.Card.Name, t.Minion.ID)
}
