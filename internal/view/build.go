package view

import (
	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given player.
// Only that player's hand is revealed.
func BuildStateView(g *game.Game, perspective game.PlayerID) *StateView {
	me := g.Player(perspective)
	if me == nil {
		me = g.CurrentPlayer()
	}
	opp := g.Player(me.ID.Other())

	return &StateView{
		You:        BuildPlayerView(me, true),
		Opponent:   BuildPlayerView(opp, false),
		Turn:       g.TurnNumber,
		Current:    int(g.CurrentID()),
		IsYourTurn: g.CurrentID() == me.ID,
		TurnEnded:  g.TurnEnded,
		GameOver:   g.GameOver,
		Winner:     int(g.Winner),
		Draw:       g.Draw,
	}
}

// BuildPlayerView creates one side of the board. Hand contents are included only when
// revealHand is set.
func BuildPlayerView(p *game.Player, revealHand bool) PlayerView {
	pv := PlayerView{
		ID:             int(p.ID),
		Name:           p.Name,
		HP:             p.Hero.Health,
		MaxHP:          p.Hero.MaxHealth,
		Mana:           p.CurrentMana,
		MaxMana:        p.MaxMana,
		HandCount:      p.HandCount(),
		Battlefield:    make([]CardView, 0, len(p.Battlefield)),
		DeckCount:      p.DeckCount(),
		GraveyardCount: len(p.Graveyard),
		UsedHeroPower:  p.UsedHeroPower,
		HeroAttacked:   p.Hero.AttackedThisTurn,
	}
	if revealHand {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, InstanceView(c))
		}
	}
	for _, m := range p.Battlefield {
		pv.Battlefield = append(pv.Battlefield, InstanceView(m))
	}
	if p.Weapon != nil {
		wv := InstanceView(p.Weapon)
		pv.Weapon = &wv
	}
	return pv
}

// InstanceView describes a runtime card with its current stats.
func InstanceView(ci *game.CardInstance) CardView {
	cv := TemplateView(ci.Card)
	cv.ID = ci.ID
	cv.Attack = ci.Attack
	cv.Health = ci.Health
	cv.Taunt = ci.Taunt
	cv.DivineShield = ci.DivineShield
	cv.CanAttack = ci.CanAttack
	return cv
}

// TemplateView describes a card template.
func TemplateView(c *game.Card) CardView {
	return CardView{
		Name:         c.Name,
		Type:         c.CardType.String(),
		Cost:         c.Cost,
		Attack:       c.Attack,
		Health:       c.Health,
		Damage:       c.Damage,
		Taunt:        c.Taunt,
		DivineShield: c.DivineShield,
		NeedsTarget:  c.NeedsTarget,
		Description:  c.Description,
	}
}

// EventViews converts logged events.
func EventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Player:  e.Player,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return views
}

// ActionViews numbers the engine's legal commands.
func ActionViews(cmds []game.Command) []ActionView {
	views := make([]ActionView, len(cmds))
	for i, c := range cmds {
		views[i] = ActionView{Index: i, Desc: c.Desc, Command: c}
	}
	return views
}
