package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Wisp Sentry":     WispSentry,
	"Bog Raider":      BogRaider,
	"Shieldbearer":    Shieldbearer,
	"River Stalker":   RiverStalker,
	"Silver Squire":   SilverSquire,
	"Iron Warden":     IronWarden,
	"Chillwind Brute": ChillwindBrute,
	"Temple Guardian": TempleGuardian,
	"Boulder Ogre":    BoulderOgre,
	"Frostfang Drake": FrostfangDrake,
	"Spark":           Spark,
	"Firebolt":        Firebolt,
	"Arcane Blast":    ArcaneBlast,
	"Flame Lance":     FlameLance,
	"Meteor Shard":    MeteorShard,
	"Wild Pyre":       WildPyre,
	"Rusty Dagger":    RustyDagger,
	"Knight's Blade":  KnightsBlade,
	"Storm Axe":       StormAxe,
	"Arcane Shot":     ArcaneShot,
}

// LookupCard looks up a card by name and returns a new template.
func LookupCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("card not found in registry: %q", name)
	}
	return ctor(), nil
}

// catalogNames returns the registered card names in alphabetical order.
func catalogNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns a fresh template of every registered card, sorted by cost then name.
func Catalog() []*Card {
	cards := make([]*Card, 0, len(CardRegistry))
	for _, name := range catalogNames() {
		cards = append(cards, CardRegistry[name]())
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Cost < cards[j].Cost
	})
	return cards
}

// --- Minions ---

func minion(name, desc string, cost, atk, hp int) *Card {
	return &Card{Name: name, Description: desc, Cost: cost, CardType: CardTypeMinion, Attack: atk, Health: hp}
}

// WispSentry: 0 mana 1/1.
func WispSentry() *Card {
	return minion("Wisp Sentry", "", 0, 1, 1)
}

// BogRaider: 1 mana 1/2.
func BogRaider() *Card {
	return minion("Bog Raider", "", 1, 1, 2)
}

// Shieldbearer: 1 mana 0/4 Taunt.
func Shieldbearer() *Card {
	c := minion("Shieldbearer", "Taunt.", 1, 0, 4)
	c.Taunt = true
	return c
}

// RiverStalker: 2 mana 3/2.
func RiverStalker() *Card {
	return minion("River Stalker", "", 2, 3, 2)
}

// SilverSquire: 1 mana 1/1 Divine Shield.
func SilverSquire() *Card {
	c := minion("Silver Squire", "Divine Shield.", 1, 1, 1)
	c.DivineShield = true
	return c
}

// IronWarden: 3 mana 2/4 Taunt.
func IronWarden() *Card {
	c := minion("Iron Warden", "Taunt.", 3, 2, 4)
	c.Taunt = true
	return c
}

// ChillwindBrute: 4 mana 4/5.
func ChillwindBrute() *Card {
	return minion("Chillwind Brute", "", 4, 4, 5)
}

// TempleGuardian: 4 mana 3/3 Taunt, Divine Shield.
func TempleGuardian() *Card {
	c := minion("Temple Guardian", "Taunt. Divine Shield.", 4, 3, 3)
	c.Taunt = true
	c.DivineShield = true
	return c
}

// BoulderOgre: 6 mana 6/7.
func BoulderOgre() *Card {
	return minion("Boulder Ogre", "", 6, 6, 7)
}

// FrostfangDrake: 8 mana 8/8 Taunt.
func FrostfangDrake() *Card {
	c := minion("Frostfang Drake", "Taunt.", 8, 8, 8)
	c.Taunt = true
	return c
}

// --- Spells ---

func spell(name string, cost, damage int, needsTarget bool) *Card {
	desc := fmt.Sprintf("Deal %d damage.", damage)
	return &Card{Name: name, Description: desc, Cost: cost, CardType: CardTypeSpell, Damage: damage, NeedsTarget: needsTarget}
}

// Spark: 0 mana, deal 1 damage.
func Spark() *Card {
	return spell("Spark", 0, 1, true)
}

// Firebolt: 1 mana, deal 2 damage.
func Firebolt() *Card {
	return spell("Firebolt", 1, 2, true)
}

// ArcaneBlast: 2 mana, deal 3 damage.
func ArcaneBlast() *Card {
	return spell("Arcane Blast", 2, 3, true)
}

// FlameLance: 5 mana, deal 8 damage to a minion or hero.
func FlameLance() *Card {
	return spell("Flame Lance", 5, 8, true)
}

// MeteorShard: 4 mana, deal 5 damage.
func MeteorShard() *Card {
	return spell("Meteor Shard", 4, 5, true)
}

// WildPyre: 2 mana, deal 2 damage if aimed; may be cast without a target.
func WildPyre() *Card {
	c := spell("Wild Pyre", 2, 2, false)
	c.Description = "Deal 2 damage to a chosen target, if any."
	return c
}

// --- Weapons ---

func weapon(name string, cost, atk, durability int) *Card {
	desc := fmt.Sprintf("%d attack, %d durability.", atk, durability)
	return &Card{Name: name, Description: desc, Cost: cost, CardType: CardTypeWeapon, Attack: atk, Health: durability}
}

// RustyDagger: 1 mana 1/2 weapon.
func RustyDagger() *Card {
	return weapon("Rusty Dagger", 1, 1, 2)
}

// KnightsBlade: 3 mana 3/2 weapon.
func KnightsBlade() *Card {
	return weapon("Knight's Blade", 3, 3, 2)
}

// StormAxe: 5 mana 5/2 weapon.
func StormAxe() *Card {
	return weapon("Storm Axe", 5, 5, 2)
}

// --- Hero powers ---

// ArcaneShot is the basic hero power as a card. It exists for catalogs and renderers;
// the engine's UseHeroPower does not need it, and it cannot be played from hand.
func ArcaneShot() *Card {
	return &Card{
		Name:        "Arcane Shot",
		Description: fmt.Sprintf("Hero Power: deal %d damage to the enemy hero.", HeroPowerDamage),
		Cost:        HeroPowerCost,
		CardType:    CardTypeHeroPower,
		Damage:      HeroPowerDamage,
	}
}
