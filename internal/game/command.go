package game

import "fmt"

// CommandType names an engine command.
type CommandType string

const (
	CmdStartTurn    CommandType = "start_turn"
	CmdEndTurn      CommandType = "end_turn"
	CmdDrawCard     CommandType = "draw_card"
	CmdPlayCard     CommandType = "play_card"
	CmdUseHeroPower CommandType = "use_hero_power"
	CmdAttack       CommandType = "attack"
	CmdHeroAttack   CommandType = "hero_attack"
	CmdCheckWin     CommandType = "check_win_condition"
)

// TargetRef is the serializable form of a Target. Kind is "hero" or "minion"; heroes are
// addressed by Player, minions by CardID.
type TargetRef struct {
	Kind   string   `json:"kind"`
	Player PlayerID `json:"player,omitempty"`
	CardID int      `json:"card_id,omitempty"`
}

// HeroRef references the hero of player p.
func HeroRef(p PlayerID) *TargetRef {
	return &TargetRef{Kind: "hero", Player: p}
}

// MinionRef references the minion with instance id.
func MinionRef(id int) *TargetRef {
	return &TargetRef{Kind: "minion", CardID: id}
}

func (r *TargetRef) String() string {
	if r == nil {
		return "none"
	}
	if r.Kind == "hero" {
		return fmt.Sprintf("%s hero", r.Player)
	}
	return fmt.Sprintf("minion #%d", r.CardID)
}

// Command is a serializable engine command, as sent by the web, MCP and CLI front ends.
type Command struct {
	Type       CommandType `json:"type"`
	CardID     int         `json:"card_id,omitempty"`     // play_card: hand card
	AttackerID int         `json:"attacker_id,omitempty"` // attack: own minion
	Target     *TargetRef  `json:"target,omitempty"`
	Desc       string      `json:"desc,omitempty"`
}

// Apply resolves the ids in cmd against the current state and runs the command.
// Unknown ids are reported as failed Results, never as panics.
func (e *Engine) Apply(cmd Command) Result {
	switch cmd.Type {
	case CmdStartTurn:
		return e.StartTurn()
	case CmdEndTurn:
		return e.EndTurn()
	case CmdDrawCard:
		return e.DrawCard()
	case CmdUseHeroPower:
		return e.UseHeroPower()
	case CmdCheckWin:
		if e.CheckWinCondition() {
			return succeed("Game over: %s", e.Summary())
		}
		return succeed("Game continues")
	}

	if res, ok := e.precheck(); !ok {
		return res
	}
	g := e.State
	p := g.CurrentPlayer()

	switch cmd.Type {
	case CmdPlayCard:
		card := p.FindInHand(cmd.CardID)
		if card == nil {
			return reject(KindNotInHand, "Card #%d is not in %s's hand", cmd.CardID, p.Name)
		}
		if cmd.Target == nil {
			return e.PlayCard(card, nil)
		}
		t, res, ok := e.resolveTarget(cmd.Target)
		if !ok {
			return res
		}
		return e.PlayCard(card, &t)

	case CmdAttack:
		attacker := p.FindMinion(cmd.AttackerID)
		if attacker == nil {
			return reject(KindCannotAttack, "Minion #%d is not on %s's battlefield", cmd.AttackerID, p.Name)
		}
		t, res, ok := e.resolveTarget(cmd.Target)
		if !ok {
			return res
		}
		return e.AttackWithMinion(attacker, t)

	case CmdHeroAttack:
		t, res, ok := e.resolveTarget(cmd.Target)
		if !ok {
			return res
		}
		return e.AttackWithHero(t)
	}

	return reject(KindUnknownCommand, "Unknown command %q", string(cmd.Type))
}

func (e *Engine) resolveTarget(ref *TargetRef) (Target, Result, bool) {
	if ref == nil {
		return Target{}, reject(KindTargetRequired, "A target is required"), false
	}
	switch ref.Kind {
	case "hero":
		if e.State.Player(ref.Player) == nil {
			return Target{}, reject(KindInvalidTarget, "Invalid target: no player %d", int(ref.Player)), false
		}
		return HeroTarget(ref.Player), Result{}, true
	case "minion":
		m := e.State.FindMinion(ref.CardID)
		if m == nil {
			return Target{}, reject(KindInvalidTarget, "Invalid target: no minion #%d in play", ref.CardID), false
		}
		return MinionTarget(m), Result{}, true
	}
	return Target{}, reject(KindInvalidTarget, "Invalid target kind %q", ref.Kind), false
}

// --- Legal command enumeration ---

// LegalCommands lists every command the current player may issue right now. Commands in the
// list succeed when applied immediately. End turn is always last while the turn is open; once
// it has ended only start_turn is offered. A finished game has no legal commands.
func (e *Engine) LegalCommands() []Command {
	g := e.State
	if g.GameOver {
		return nil
	}
	if g.TurnEnded {
		return []Command{{Type: CmdStartTurn, Desc: "Start the next turn"}}
	}

	p := g.CurrentPlayer()
	opp := g.Opponent()
	var cmds []Command

	for _, card := range p.Hand {
		if card.Cost() > p.CurrentMana {
			continue
		}
		switch card.Type() {
		case CardTypeMinion:
			if len(p.Battlefield) < MaxBattlefield {
				cmds = append(cmds, Command{Type: CmdPlayCard, CardID: card.ID, Desc: fmt.Sprintf("Play %s", card)})
			}
		case CardTypeWeapon:
			if p.Weapon == nil {
				cmds = append(cmds, Command{Type: CmdPlayCard, CardID: card.ID, Desc: fmt.Sprintf("Equip %s", card)})
			}
		case CardTypeSpell:
			if !card.Card.NeedsTarget {
				cmds = append(cmds, Command{Type: CmdPlayCard, CardID: card.ID, Desc: fmt.Sprintf("Cast %s", card)})
			}
			for _, ref := range spellTargets(g) {
				cmds = append(cmds, Command{
					Type:   CmdPlayCard,
					CardID: card.ID,
					Target: ref,
					Desc:   fmt.Sprintf("Cast %s on %s", card, e.describeRef(ref)),
				})
			}
		}
	}

	targets := attackTargets(opp)
	for _, m := range p.Battlefield {
		if !m.CanAttack || m.Attack <= 0 {
			continue
		}
		for _, ref := range targets {
			cmds = append(cmds, Command{
				Type:       CmdAttack,
				AttackerID: m.ID,
				Target:     ref,
				Desc:       fmt.Sprintf("%s attacks %s", m, e.describeRef(ref)),
			})
		}
	}

	if w := p.Weapon; w != nil && w.Attack > 0 && !p.Hero.AttackedThisTurn {
		for _, ref := range targets {
			cmds = append(cmds, Command{
				Type:   CmdHeroAttack,
				Target: ref,
				Desc:   fmt.Sprintf("%s attacks %s with %s", p.Hero.Name, e.describeRef(ref), w.Name()),
			})
		}
	}

	if !p.UsedHeroPower && p.CurrentMana >= HeroPowerCost {
		cmds = append(cmds, Command{Type: CmdUseHeroPower, Desc: fmt.Sprintf("Hero power (%d mana): 1 damage to %s", HeroPowerCost, opp.Hero.Name)})
	}

	cmds = append(cmds, Command{Type: CmdEndTurn, Desc: "End turn"})
	return cmds
}

// spellTargets lists both heroes and every minion in play.
func spellTargets(g *Game) []*TargetRef {
	refs := []*TargetRef{HeroRef(g.current.Other()), HeroRef(g.current)}
	for _, p := range [2]*Player{g.Opponent(), g.CurrentPlayer()} {
		for _, m := range p.Battlefield {
			refs = append(refs, MinionRef(m.ID))
		}
	}
	return refs
}

// attackTargets lists what may be attacked on opp's side, honouring taunt.
func attackTargets(opp *Player) []*TargetRef {
	if taunts := opp.TauntMinions(); len(taunts) > 0 {
		refs := make([]*TargetRef, 0, len(taunts))
		for _, m := range taunts {
			refs = append(refs, MinionRef(m.ID))
		}
		return refs
	}
	refs := []*TargetRef{HeroRef(opp.ID)}
	for _, m := range opp.Battlefield {
		refs = append(refs, MinionRef(m.ID))
	}
	return refs
}

func (e *Engine) describeRef(ref *TargetRef) string {
	if ref.Kind == "minion" {
		if m := e.State.FindMinion(ref.CardID); m != nil {
			return m.String()
		}
	}
	if ref.Kind == "hero" {
		if p := e.State.Player(ref.Player); p != nil {
			return fmt.Sprintf("%s (hero, %d hp)", p.Hero.Name, p.Hero.Health)
		}
	}
	return ref.String()
}
