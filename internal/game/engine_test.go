package game

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/peterkuimelis/ccgx/internal/log"
)

func TestCreateGame(t *testing.T) {
	g := CreateGame("A", "B")

	for _, p := range []*Player{g.Player1, g.Player2} {
		if p.CurrentMana != 1 || p.MaxMana != 1 {
			t.Errorf("%s: expected 1/1 mana, got %d/%d", p.Name, p.CurrentMana, p.MaxMana)
		}
		if p.Hero.Health != StartingHealth {
			t.Errorf("%s: expected hero health %d, got %d", p.Name, StartingHealth, p.Hero.Health)
		}
		if len(p.Battlefield) != 0 || p.Weapon != nil {
			t.Errorf("%s: expected an empty board", p.Name)
		}
	}
	if g.TurnNumber != 1 {
		t.Errorf("expected turn 1, got %d", g.TurnNumber)
	}
	if g.CurrentPlayer().ID != Player1 {
		t.Errorf("expected player 1 to act, got %s", g.CurrentPlayer().ID)
	}
	if g.Opponent().ID != Player2 {
		t.Errorf("expected player 2 as opponent, got %s", g.Opponent().ID)
	}
	if g.GameOver || g.Winner != NoPlayer {
		t.Error("new game should not be over")
	}
}

func TestScenarioNewGameMana(t *testing.T) {
	e, _ := newTestEngine(t)
	if got := e.State.CurrentPlayer().CurrentMana; got != 1 {
		t.Errorf("expected current mana 1, got %d", got)
	}
}

func TestTurnHandoff(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.State

	// First StartTurn opens player 1's turn in place.
	mustSucceed(t, e.StartTurn())
	if g.CurrentID() != Player1 || g.TurnNumber != 1 || g.Player1.MaxMana != 1 {
		t.Fatalf("opening turn: player %s turn %d mana %d", g.CurrentID(), g.TurnNumber, g.Player1.MaxMana)
	}

	steps := []struct {
		player PlayerID
		turn   int
		mana   int
	}{
		{Player2, 1, 2},
		{Player1, 2, 2},
		{Player2, 2, 3},
		{Player1, 3, 3},
	}
	for i, s := range steps {
		passTurn(t, e)
		p := g.CurrentPlayer()
		if p.ID != s.player || g.TurnNumber != s.turn || p.MaxMana != s.mana || p.CurrentMana != s.mana {
			t.Errorf("step %d: got player %s turn %d mana %d/%d, want %s turn %d mana %d",
				i, p.ID, g.TurnNumber, p.CurrentMana, p.MaxMana, s.player, s.turn, s.mana)
		}
	}
}

func TestEndTurnThenStartTurnFromFreshGame(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.State

	mustSucceed(t, e.EndTurn())
	if g.CurrentID() != Player1 || g.TurnNumber != 1 {
		t.Fatal("EndTurn must not move the current player or the turn number")
	}
	mustSucceed(t, e.StartTurn())
	if g.CurrentID() != Player2 {
		t.Fatalf("expected player 2 after handoff, got %s", g.CurrentID())
	}
	if g.Player2.MaxMana != 2 {
		t.Errorf("player 2's first turn should grant 2 mana, got %d", g.Player2.MaxMana)
	}
	if g.TurnNumber != 1 {
		t.Errorf("turn number should not change on handoff to player 2, got %d", g.TurnNumber)
	}
}

func TestStartTurnWithoutEndTurnSwitches(t *testing.T) {
	e, _ := startedEngine(t)
	mustSucceed(t, e.StartTurn())
	if e.State.CurrentID() != Player2 {
		t.Errorf("expected player 2, got %s", e.State.CurrentID())
	}
}

func TestManaCap(t *testing.T) {
	e, _ := startedEngine(t)
	g := e.State
	for i := 0; i < 40; i++ {
		passTurn(t, e)
		for _, p := range []*Player{g.Player1, g.Player2} {
			if p.MaxMana > MaxMana {
				t.Fatalf("cycle %d: %s max mana %d exceeds cap", i, p.Name, p.MaxMana)
			}
		}
	}
	if g.Player1.MaxMana != MaxMana || g.Player2.MaxMana != MaxMana {
		t.Errorf("expected both players capped at %d, got %d and %d", MaxMana, g.Player1.MaxMana, g.Player2.MaxMana)
	}
}

func TestStartTurnResetsTurnState(t *testing.T) {
	e, _ := startedEngine(t)
	g := e.State
	m := summon(e, Player1, vanillaMinion("Raider", 1, 1, 2))
	m.CanAttack = false
	g.Player1.UsedHeroPower = true
	g.Player1.Hero.AttackedThisTurn = true

	passTurn(t, e)
	if m.CanAttack {
		t.Error("player 1's minion must not wake on player 2's turn")
	}
	passTurn(t, e)

	if !m.CanAttack {
		t.Error("minion should be able to attack on its controller's turn")
	}
	if g.Player1.UsedHeroPower {
		t.Error("hero power flag should reset")
	}
	if g.Player1.Hero.AttackedThisTurn {
		t.Error("hero attack flag should reset")
	}
}

func TestTurnEndedRejectsCommands(t *testing.T) {
	e, _ := startedEngine(t)
	card := e.State.GiveCard(Player1, vanillaMinion("Raider", 1, 1, 1))
	mustSucceed(t, e.EndTurn())

	mustFail(t, e.PlayCard(card, nil), KindTurnEnded, "ended")
	mustFail(t, e.UseHeroPower(), KindTurnEnded, "")
	mustFail(t, e.DrawCard(), KindTurnEnded, "")
	mustFail(t, e.AttackWithHero(HeroTarget(Player2)), KindTurnEnded, "")
	mustFail(t, e.EndTurn(), KindTurnEnded, "")

	if !e.State.Player1.InHand(card) {
		t.Error("card should still be in hand")
	}
}

func TestNewEngineDealsOpeningHands(t *testing.T) {
	deck := []*Card{
		vanillaMinion("A", 1, 1, 1),
		vanillaMinion("B", 1, 1, 1),
		vanillaMinion("C", 1, 1, 1),
		vanillaMinion("D", 1, 1, 1),
		vanillaMinion("E", 1, 1, 1),
	}
	e := NewEngine(EngineConfig{Player1: "A", Player2: "B", Deck1: deck, Deck2: fillerDeck(10), NoShuffle: true})
	g := e.State

	if got := cardNames(g.Player1.Hand); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("expected opening hand A B C, got %v", got)
	}
	if len(g.Player2.Hand) != OpeningHandSecond {
		t.Errorf("expected %d cards for player 2, got %d", OpeningHandSecond, len(g.Player2.Hand))
	}
	if g.Player1.DeckCount() != 2 || g.Player2.DeckCount() != 6 {
		t.Errorf("unexpected deck counts %d, %d", g.Player1.DeckCount(), g.Player2.DeckCount())
	}
	for _, c := range g.Player1.Hand {
		if c.Zone != ZoneHand || c.Owner != Player1 {
			t.Errorf("%s: zone %s owner %s", c, c.Zone, c.Owner)
		}
	}
}

func TestNewEngineSeededShuffleIsDeterministic(t *testing.T) {
	deck := make([]*Card, 0, 20)
	for i := 0; i < 20; i++ {
		deck = append(deck, vanillaMinion(string(rune('A'+i)), 1, 1, 1))
	}
	build := func() []string {
		e := NewEngine(EngineConfig{Deck1: deck, Deck2: deck, Seed: 42})
		return cardNames(e.State.Player1.Hand)
	}
	first, second := build(), build()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed should deal the same hand: %v vs %v", first, second)
	}
}

func TestDrawCard(t *testing.T) {
	e := NewEngine(EngineConfig{Deck1: fillerDeck(5), Deck2: fillerDeck(5), NoShuffle: true})
	mustSucceed(t, e.StartTurn())
	p := e.State.Player1

	mustSucceed(t, e.DrawCard())
	if p.HandCount() != 4 || p.DeckCount() != 1 {
		t.Errorf("expected 4 in hand and 1 in deck, got %d and %d", p.HandCount(), p.DeckCount())
	}
	rec := e.State.LastRecord()
	if rec.Action != ActionDrawCard || rec.Card != "Filler" || rec.CardID == 0 {
		t.Errorf("unexpected draw record %+v", rec)
	}
}

func TestFatigue(t *testing.T) {
	e, logger := startedEngine(t)
	p := e.State.Player1

	mustSucceed(t, e.DrawCard())
	mustSucceed(t, e.DrawCard())
	mustSucceed(t, e.DrawCard())

	if p.Hero.Health != StartingHealth-6 {
		t.Errorf("expected 1+2+3 fatigue damage, hero at %d", p.Hero.Health)
	}
	if got := len(logger.EventsOfType(log.EventFatigue)); got != 3 {
		t.Errorf("expected 3 fatigue events, got %d", got)
	}
	if rec := e.State.LastRecord(); rec.Damage != 3 {
		t.Errorf("expected last draw record damage 3, got %d", rec.Damage)
	}
}

func TestOverdrawBurnsCard(t *testing.T) {
	e := NewEngine(EngineConfig{Deck1: fillerDeck(1), NoShuffle: true, OpeningHand1: -1})
	mustSucceed(t, e.StartTurn())
	p := e.State.Player1
	for i := 0; i < MaxHandSize; i++ {
		e.State.GiveCard(Player1, vanillaMinion("Hand", 1, 1, 1))
	}

	mustSucceed(t, e.DrawCard())
	if p.HandCount() != MaxHandSize {
		t.Errorf("hand should stay at %d, got %d", MaxHandSize, p.HandCount())
	}
	if len(p.Graveyard) != 1 || p.Graveyard[0].Name() != "Filler" {
		t.Errorf("burned card should be in the graveyard, got %v", cardNames(p.Graveyard))
	}
}

func TestDrawOnTurnStart(t *testing.T) {
	e := NewEngine(EngineConfig{Deck1: fillerDeck(10), Deck2: fillerDeck(10), NoShuffle: true, DrawOnTurnStart: true})
	g := e.State

	mustSucceed(t, e.StartTurn())
	if g.Player1.HandCount() != OpeningHandFirst {
		t.Errorf("opening turn should not draw, hand %d", g.Player1.HandCount())
	}
	passTurn(t, e)
	if g.Player2.HandCount() != OpeningHandSecond+1 {
		t.Errorf("player 2 should draw on turn start, hand %d", g.Player2.HandCount())
	}
}

func TestScenarioWinCondition(t *testing.T) {
	e, logger := startedEngine(t)
	g := e.State

	g.Opponent().Hero.Health = 0
	if g.GameOver {
		t.Fatal("win detection must not be automatic")
	}
	if !e.CheckWinCondition() {
		t.Fatal("expected the game to be over")
	}
	if !g.GameOver || g.Winner != g.CurrentPlayer().ID {
		t.Errorf("expected winner %s, got %s (over=%v)", g.CurrentPlayer().ID, g.Winner, g.GameOver)
	}
	if g.Draw {
		t.Error("single KO is not a draw")
	}
	if len(logger.EventsOfType(log.EventWin)) != 1 {
		t.Error("expected a win event")
	}
	rec := g.LastRecord()
	if rec.Action != ActionGameOver || rec.Winner != Player1 {
		t.Errorf("unexpected game over record %+v", rec)
	}
	if e.Summary() != "Alice wins" {
		t.Errorf("unexpected summary %q", e.Summary())
	}
}

func TestDamageDoesNotEndGame(t *testing.T) {
	e, _ := startedEngine(t)
	g := e.State
	g.Player2.Hero.Health = 1
	g.Player1.CurrentMana = 2

	mustSucceed(t, e.UseHeroPower())
	if g.Player2.Hero.Health != 0 {
		t.Fatalf("expected hero at 0, got %d", g.Player2.Hero.Health)
	}
	if g.GameOver {
		t.Fatal("game must not end until CheckWinCondition")
	}
	e.CheckWinCondition()
	if g.Winner != Player1 {
		t.Errorf("expected player 1 to win, got %s", g.Winner)
	}
}

func TestPlayer1HeroDeadPlayer2Wins(t *testing.T) {
	e, _ := startedEngine(t)
	e.State.Player1.Hero.Health = -3
	e.CheckWinCondition()
	if e.State.Winner != Player2 {
		t.Errorf("expected player 2 to win, got %s", e.State.Winner)
	}
}

func TestDoubleKnockoutIsDraw(t *testing.T) {
	e, logger := startedEngine(t)
	g := e.State
	g.Player1.Hero.Health = 0
	g.Player2.Hero.Health = -1

	if !e.CheckWinCondition() {
		t.Fatal("expected the game to be over")
	}
	if !g.Draw || g.Winner != NoPlayer {
		t.Errorf("expected a draw, got draw=%v winner=%s", g.Draw, g.Winner)
	}
	if len(logger.EventsOfType(log.EventTie)) != 1 {
		t.Error("expected a tie event")
	}
	if e.Summary() != "Draw: both heroes fell" {
		t.Errorf("unexpected summary %q", e.Summary())
	}
}

func TestCheckWinConditionNoWinner(t *testing.T) {
	e, _ := startedEngine(t)
	before := len(e.State.History)
	if e.CheckWinCondition() {
		t.Fatal("healthy heroes should not end the game")
	}
	if len(e.State.History) != before {
		t.Error("an undecided check must not append history")
	}
	if e.Summary() != "Game in progress" {
		t.Errorf("unexpected summary %q", e.Summary())
	}
}

func TestCheckWinConditionIdempotent(t *testing.T) {
	e, _ := startedEngine(t)
	e.State.Player2.Hero.Health = 0
	e.CheckWinCondition()
	n := len(e.State.History)

	// Healing afterwards must not revive the game.
	e.State.Player2.Hero.Health = 10
	if !e.CheckWinCondition() {
		t.Error("a finished game stays finished")
	}
	if len(e.State.History) != n || e.State.Winner != Player1 {
		t.Error("repeated checks must be no-ops")
	}
}

func TestGameOverRejectsCommands(t *testing.T) {
	e, _ := startedEngine(t)
	g := e.State
	card := g.GiveCard(Player1, vanillaMinion("Raider", 0, 1, 1))
	m := summon(e, Player1, vanillaMinion("Striker", 1, 2, 2))
	equip(e, Player1, testWeapon("Dagger", 1, 1, 2))
	g.Player1.CurrentMana = 5
	g.Player2.Hero.Health = 0
	e.CheckWinCondition()

	mustFail(t, e.PlayCard(card, nil), KindGameOver, "Game is over")
	mustFail(t, e.UseHeroPower(), KindGameOver, "Game is over")
	mustFail(t, e.AttackWithMinion(m, HeroTarget(Player2)), KindGameOver, "Game is over")
	mustFail(t, e.AttackWithHero(HeroTarget(Player2)), KindGameOver, "Game is over")
	mustFail(t, e.EndTurn(), KindGameOver, "Game is over")
	mustFail(t, e.StartTurn(), KindGameOver, "Game is over")
	mustFail(t, e.DrawCard(), KindGameOver, "Game is over")

	if g.Player1.CurrentMana != 5 || !g.Player1.InHand(card) {
		t.Error("rejected commands must not mutate the game")
	}
}

func TestHistoryJSONSchema(t *testing.T) {
	e, _ := startedEngine(t)
	e.State.Player1.CurrentMana = 2
	mustSucceed(t, e.UseHeroPower())

	data, err := json.Marshal(e.State.LastRecord())
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"turn":   float64(1),
		"action": "use_hero_power",
		"player": float64(1),
		"cost":   float64(2),
		"target": "P2 hero",
		"damage": float64(1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hero power record = %v, want %v", got, want)
	}
}

func TestEveryCommandAppendsHistory(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.State

	mustSucceed(t, e.StartTurn())
	card := g.GiveCard(Player1, vanillaMinion("Raider", 1, 1, 1))
	mustSucceed(t, e.PlayCard(card, nil))
	mustSucceed(t, e.EndTurn())

	var actions []string
	for _, r := range g.History {
		actions = append(actions, r.Action)
		if r.Player == NoPlayer {
			t.Errorf("record %+v has no player", r)
		}
	}
	want := []string{ActionStartTurn, ActionPlayCard, ActionEndTurn}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("history actions = %v, want %v", actions, want)
	}
	if len(g.RecordsOf(ActionPlayCard)) != 1 {
		t.Error("expected one play_card record")
	}
}

func TestSetDrawOnTurnStart(t *testing.T) {
	e := NewEngine(EngineConfig{Deck1: fillerDeck(10), Deck2: fillerDeck(10), NoShuffle: true})
	e.SetDrawOnTurnStart(true)
	mustSucceed(t, e.StartTurn())
	passTurn(t, e)
	if e.State.Player2.HandCount() != OpeningHandSecond+1 {
		t.Errorf("expected a draw on turn start, hand %d", e.State.Player2.HandCount())
	}
}
