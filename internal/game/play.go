package game

import "github.com/peterkuimelis/ccgx/internal/log"

// PlayCard plays a card from the current player's hand, paying its cost.
//
// Minions enter the battlefield unable to attack until their controller's next turn.
// Spells deal their damage to target (required when the card needs one; either hero or
// any minion in play). Weapons are equipped; a second weapon is rejected while one is
// equipped. Hero power cards cannot be played from hand.
func (e *Engine) PlayCard(card *CardInstance, target *Target) Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()

	if card == nil || !p.InHand(card) {
		return reject(KindNotInHand, "Card is not in %s's hand", p.Name)
	}
	if p.CurrentMana < card.Cost() {
		return reject(KindInsufficientMana, "Insufficient mana: %s costs %d, %d available", card.Name(), card.Cost(), p.CurrentMana)
	}

	switch card.Type() {
	case CardTypeMinion:
		if len(p.Battlefield) >= MaxBattlefield {
			return reject(KindBattlefieldFull, "Battlefield is full (%d minions)", MaxBattlefield)
		}
	case CardTypeSpell:
		if card.Card.NeedsTarget && target == nil {
			return reject(KindTargetRequired, "Spell %s requires a target", card.Name())
		}
		if target != nil {
			if res, ok := e.validateSpellTarget(*target); !ok {
				return res
			}
		}
	case CardTypeWeapon:
		if p.Weapon != nil {
			return reject(KindWeaponEquipped, "Weapon already equipped: %s", p.Weapon.Name())
		}
	default:
		return reject(KindUnplayable, "%s cannot be played from hand", card.Name())
	}

	p.RemoveFromHand(card)
	p.CurrentMana -= card.Cost()

	rec := HistoryRecord{
		Action:   ActionPlayCard,
		Player:   p.ID,
		Card:     card.Name(),
		CardID:   card.ID,
		CardType: card.Type().String(),
		Cost:     card.Cost(),
	}

	var res Result
	switch card.Type() {
	case CardTypeMinion:
		card.CanAttack = false
		p.PlaceMinion(card)
		e.log(log.NewPlayMinionEvent(g.TurnNumber, int(p.ID), card.Name(), card.Attack, card.Health))
		res = succeed("%s summoned", card.Name())

	case CardTypeSpell:
		desc := ""
		if target != nil {
			desc = target.String()
			rec.Target = desc
		}
		e.log(log.NewCastSpellEvent(g.TurnNumber, int(p.ID), card.Name(), desc))
		if target != nil && card.Card.Damage > 0 {
			rec.Damage = card.Card.Damage
			e.damageTarget(*target, card.Card.Damage)
		}
		p.SendToGraveyard(card)
		res = succeed("%s cast", card.Name())

	case CardTypeWeapon:
		card.Zone = ZoneWeapon
		p.Weapon = card
		e.log(log.NewEquipWeaponEvent(g.TurnNumber, int(p.ID), card.Name(), card.Attack, card.Health))
		res = succeed("%s equipped", card.Name())
	}

	g.record(rec)
	e.sweepDead()
	return res
}

// validateSpellTarget accepts either hero or any minion currently on a battlefield.
func (e *Engine) validateSpellTarget(t Target) (Result, bool) {
	g := e.State
	switch t.Kind {
	case TargetHero:
		if g.Player(t.Player) == nil {
			return reject(KindInvalidTarget, "Invalid target: no player %d", int(t.Player)), false
		}
	case TargetMinion:
		if t.Minion == nil || g.Controller(t.Minion) == nil {
			return reject(KindInvalidTarget, "Invalid target: minion is not in play"), false
		}
	default:
		return reject(KindInvalidTarget, "Invalid target"), false
	}
	return Result{}, true
}

// UseHeroPower spends HeroPowerCost mana to deal HeroPowerDamage to the opposing hero,
// once per turn. A second use is reported as already used even when mana is also short.
func (e *Engine) UseHeroPower() Result {
	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()
	opp := g.Opponent()

	if p.UsedHeroPower {
		return reject(KindHeroPowerUsed, "Hero power already used this turn")
	}
	if p.CurrentMana < HeroPowerCost {
		return reject(KindInsufficientMana, "Insufficient mana for hero power: costs %d, %d available", HeroPowerCost, p.CurrentMana)
	}

	p.CurrentMana -= HeroPowerCost
	p.UsedHeroPower = true
	e.log(log.NewHeroPowerEvent(g.TurnNumber, int(p.ID), HeroPowerCost))
	e.damageHero(opp, HeroPowerDamage)

	g.record(HistoryRecord{
		Action: ActionUseHeroPower,
		Player: p.ID,
		Cost:   HeroPowerCost,
		Target: HeroTarget(opp.ID).String(),
		Damage: HeroPowerDamage,
	})
	return succeed("Hero power used successfully")
}
