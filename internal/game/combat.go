package game

import (
	"fmt"

	"github.com/peterkuimelis/ccgx/internal/log"
)

// AttackWithMinion attacks target with one of the current player's minions.
//
// Attacking a hero damages only the hero. Attacking a minion is simultaneous: each side
// takes the other's attack. Either way the attacker is exhausted for the turn. While the
// opponent controls a taunt minion, only taunt minions can be attacked.
func (e *Engine) AttackWithMinion(attacker *CardInstance, target Target) Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()
	opp := g.Opponent()

	if attacker == nil || !p.OnBattlefield(attacker) {
		return reject(KindCannotAttack, "Attacker is not on %s's battlefield", p.Name)
	}
	if !attacker.CanAttack {
		return reject(KindCannotAttack, "%s cannot attack this turn", attacker.Name())
	}
	if attacker.Attack <= 0 {
		return reject(KindCannotAttack, "%s has no attack", attacker.Name())
	}
	if res, ok := e.validateAttackTarget(opp, target); !ok {
		return res
	}

	e.log(log.NewAttackDeclareEvent(g.TurnNumber, int(p.ID), attacker.Name(), target.String()))
	attacker.CanAttack = false

	rec := HistoryRecord{
		Action: ActionAttack,
		Player: p.ID,
		Card:   attacker.Name(),
		CardID: attacker.ID,
		Target: target.String(),
		Damage: attacker.Attack,
	}

	switch target.Kind {
	case TargetHero:
		e.damageHero(opp, attacker.Attack)
	case TargetMinion:
		defender := target.Minion
		dealt, back := attacker.Attack, defender.Attack
		rec.DamageTaken = back
		e.damageMinion(defender, dealt)
		e.damageMinion(attacker, back)
	}

	g.record(rec)
	e.sweepDead()
	return succeed("%s attacked %s", attacker.Name(), target.String())
}

// AttackWithHero attacks with the current player's hero using its equipped weapon.
// The hero attacks at most once per turn, minions strike back at the hero, and the
// weapon loses one durability per attack.
func (e *Engine) AttackWithHero(target Target) Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()
	opp := g.Opponent()

	w := p.Weapon
	if w == nil {
		return reject(KindNoWeapon, "%s has no weapon equipped", p.Name)
	}
	if p.Hero.AttackedThisTurn {
		return reject(KindCannotAttack, "%s's hero already attacked this turn", p.Name)
	}
	if w.Attack <= 0 {
		return reject(KindCannotAttack, "%s has no attack", w.Name())
	}
	if res, ok := e.validateAttackTarget(opp, target); !ok {
		return res
	}

	heroName := fmt.Sprintf("%s (%s)", p.Hero.Name, w.Name())
	e.log(log.NewAttackDeclareEvent(g.TurnNumber, int(p.ID), heroName, target.String()))
	p.Hero.AttackedThisTurn = true

	rec := HistoryRecord{
		Action: ActionHeroAttack,
		Player: p.ID,
		Card:   w.Name(),
		CardID: w.ID,
		Target: target.String(),
		Damage: w.Attack,
	}

	switch target.Kind {
	case TargetHero:
		e.damageHero(opp, w.Attack)
	case TargetMinion:
		defender := target.Minion
		back := defender.Attack
		rec.DamageTaken = back
		e.damageMinion(defender, w.Attack)
		e.damageHero(p, back)
	}
	w.Health--

	g.record(rec)
	e.sweepDead()
	return succeed("%s attacked %s", heroName, target.String())
}

// validateAttackTarget checks that t is the opposing hero or an opposing minion and that
// taunt is respected.
func (e *Engine) validateAttackTarget(opp *Player, t Target) (Result, bool) {
	switch t.Kind {
	case TargetHero:
		if t.Player != opp.ID {
			return reject(KindInvalidTarget, "Invalid target: can only attack the opposing hero"), false
		}
	case TargetMinion:
		if t.Minion == nil || !opp.OnBattlefield(t.Minion) {
			return reject(KindInvalidTarget, "Invalid target: minion is not on the opposing battlefield"), false
		}
	default:
		return reject(KindInvalidTarget, "Invalid target"), false
	}

	if opp.HasTaunt() && (t.Kind != TargetMinion || !t.Minion.Taunt) {
		return reject(KindTauntBlocks, "Invalid target: a minion with taunt must be attacked first"), false
	}
	return Result{}, true
}
