package game

import "math/rand"

const (
	StartingHealth  = 30
	MaxMana         = 10
	MaxHandSize     = 10
	MaxBattlefield  = 7
	HeroPowerCost   = 2
	HeroPowerDamage = 1
)

// Hero is a player's hero.
type Hero struct {
	Name             string
	Health           int
	MaxHealth        int
	AttackedThisTurn bool
}

// Player represents one player's entire state.
type Player struct {
	ID   PlayerID
	Name string
	Hero *Hero

	CurrentMana int
	MaxMana     int

	Deck        []*CardInstance // top of deck is last element (pop from end)
	Hand        []*CardInstance
	Battlefield []*CardInstance
	Graveyard   []*CardInstance
	Weapon      *CardInstance

	UsedHeroPower bool
	Fatigue       int // damage of the next empty-deck draw minus one
}

func newPlayer(id PlayerID, name string) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Hero:        &Hero{Name: name, Health: StartingHealth, MaxHealth: StartingHealth},
		CurrentMana: 1,
		MaxMana:     1,
	}
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// InHand reports whether the given instance is in this player's hand.
func (p *Player) InHand(card *CardInstance) bool {
	return indexOf(p.Hand, card) >= 0
}

// OnBattlefield reports whether the given instance is on this player's battlefield.
func (p *Player) OnBattlefield(card *CardInstance) bool {
	return indexOf(p.Battlefield, card) >= 0
}

// FindInHand returns the hand card with the given instance ID, or nil.
func (p *Player) FindInHand(id int) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindMinion returns the battlefield minion with the given instance ID, or nil.
func (p *Player) FindMinion(id int) *CardInstance {
	for _, c := range p.Battlefield {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes a card from the hand.
func (p *Player) RemoveFromHand(card *CardInstance) {
	if i := indexOf(p.Hand, card); i >= 0 {
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	}
}

// AddToHand puts a card into the hand. Cards beyond MaxHandSize are burned to the graveyard.
// Returns false if the card was burned.
func (p *Player) AddToHand(card *CardInstance) bool {
	if len(p.Hand) >= MaxHandSize {
		p.SendToGraveyard(card)
		return false
	}
	card.Zone = ZoneHand
	p.Hand = append(p.Hand, card)
	return true
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card (which may have been burned), or nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.AddToHand(card)
	return card
}

// PlaceMinion appends a minion to the battlefield.
func (p *Player) PlaceMinion(card *CardInstance) {
	card.Zone = ZoneBattlefield
	p.Battlefield = append(p.Battlefield, card)
}

// RemoveMinion removes a minion from the battlefield.
func (p *Player) RemoveMinion(card *CardInstance) {
	if i := indexOf(p.Battlefield, card); i >= 0 {
		p.Battlefield = append(p.Battlefield[:i], p.Battlefield[i+1:]...)
	}
}

// SendToGraveyard moves a card to the graveyard.
func (p *Player) SendToGraveyard(card *CardInstance) {
	card.Zone = ZoneGraveyard
	card.CanAttack = false
	p.Graveyard = append(p.Graveyard, card)
}

// TauntMinions returns all battlefield minions with taunt.
func (p *Player) TauntMinions() []*CardInstance {
	var result []*CardInstance
	for _, m := range p.Battlefield {
		if m.Taunt {
			result = append(result, m)
		}
	}
	return result
}

// HasTaunt reports whether any battlefield minion has taunt.
func (p *Player) HasTaunt() bool {
	for _, m := range p.Battlefield {
		if m.Taunt {
			return true
		}
	}
	return false
}

// ShuffleDeck randomizes the deck order.
func (p *Player) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

func indexOf(cards []*CardInstance, card *CardInstance) int {
	if card == nil {
		return -1
	}
	for i, c := range cards {
		if c == card {
			return i
		}
	}
	return -1
}

// --- Game ---

// Game holds the complete state of a match.
type Game struct {
	Player1 *Player
	Player2 *Player

	current    PlayerID
	TurnNumber int // full rounds, starting at 1 with player1

	// TurnEnded is set by EndTurn and cleared by the next StartTurn.
	TurnEnded bool

	GameOver bool
	Winner   PlayerID // NoPlayer until decided, and on a draw
	Draw     bool

	History []HistoryRecord

	started        bool // StartTurn has been called at least once
	player2Started bool // player2 has taken its first turn

	// ID counter for card instances
	nextID int
}

// CreateGame creates a fresh match: both players at one mana crystal, player1 to act, turn 1.
func CreateGame(name1, name2 string) *Game {
	return &Game{
		Player1:    newPlayer(Player1, name1),
		Player2:    newPlayer(Player2, name2),
		current:    Player1,
		TurnNumber: 1,
		Winner:     NoPlayer,
	}
}

// NextID generates a unique card instance ID.
func (g *Game) NextID() int {
	g.nextID++
	return g.nextID
}

// Player returns the player with the given id, or nil.
func (g *Game) Player(id PlayerID) *Player {
	switch id {
	case Player1:
		return g.Player1
	case Player2:
		return g.Player2
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.Player(g.current)
}

// Opponent returns the player waiting for its turn.
func (g *Game) Opponent() *Player {
	return g.Player(g.current.Other())
}

// CurrentID returns the id of the player whose turn it is.
func (g *Game) CurrentID() PlayerID {
	return g.current
}

// CreateCardInstance creates a CardInstance from a Card template, owned by a player.
func (g *Game) CreateCardInstance(card *Card, owner PlayerID) *CardInstance {
	return &CardInstance{
		Card:         card,
		ID:           g.NextID(),
		Owner:        owner,
		Zone:         ZoneDeck,
		Attack:       card.Attack,
		Health:       card.Health,
		Taunt:        card.Taunt,
		DivineShield: card.DivineShield,
	}
}

// GiveCard creates an instance of card and puts it straight into the player's hand.
// It is the hook content loaders and tests use to pre-populate hands.
func (g *Game) GiveCard(id PlayerID, card *Card) *CardInstance {
	ci := g.CreateCardInstance(card, id)
	g.Player(id).AddToHand(ci)
	return ci
}

// FindMinion looks a minion up on either battlefield.
func (g *Game) FindMinion(id int) *CardInstance {
	if m := g.Player1.FindMinion(id); m != nil {
		return m
	}
	return g.Player2.FindMinion(id)
}

// Controller returns the player whose battlefield holds the minion, or nil.
func (g *Game) Controller(minion *CardInstance) *Player {
	if g.Player1.OnBattlefield(minion) {
		return g.Player1
	}
	if g.Player2.OnBattlefield(minion) {
		return g.Player2
	}
	return nil
}
