package game

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed decks/default.yaml
var defaultDecks []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Cards []CardDef   `yaml:"cards" json:"cards,omitempty" validate:"dive"`
	Decks []DeckEntry `yaml:"decks" json:"decks" validate:"required,min=1,dive"`
}

// CardDef defines a custom card inline in a deck file.
type CardDef struct {
	Name         string `yaml:"name" json:"name" validate:"required"`
	Description  string `yaml:"description" json:"description,omitempty"`
	Cost         int    `yaml:"cost" json:"cost" validate:"gte=0,lte=10"`
	Type         string `yaml:"type" json:"type" validate:"required,oneof=minion spell weapon Minion Spell Weapon"`
	Attack       int    `yaml:"attack" json:"attack,omitempty" validate:"gte=0"`
	Health       int    `yaml:"health" json:"health,omitempty" validate:"gte=0"`
	Taunt        bool   `yaml:"taunt" json:"taunt,omitempty"`
	DivineShield bool   `yaml:"divine_shield" json:"divine_shield,omitempty"`
	Damage       int    `yaml:"damage" json:"damage,omitempty" validate:"gte=0"`
	NeedsTarget  bool   `yaml:"needs_target" json:"needs_target,omitempty"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name" json:"name" validate:"required"`
	Cards []CardEntry `yaml:"cards" json:"cards" validate:"required,min=1,dive"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Count int    `yaml:"count" json:"count" validate:"gte=1,lte=30"`
}

// Template builds the card template for a custom definition.
func (d CardDef) Template() (*Card, error) {
	ct, err := ParseCardType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", d.Name, err)
	}
	c := &Card{
		Name:         d.Name,
		Description:  d.Description,
		Cost:         d.Cost,
		CardType:     ct,
		Attack:       d.Attack,
		Health:       d.Health,
		Taunt:        d.Taunt,
		DivineShield: d.DivineShield,
		Damage:       d.Damage,
		NeedsTarget:  d.NeedsTarget,
	}
	if ct != CardTypeSpell && c.Health < 1 {
		return nil, fmt.Errorf("card %q: %s needs health of at least 1", d.Name, ct)
	}
	return c, nil
}

// ParseDeckYAML decodes and validates a deck file.
func ParseDeckYAML(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	if err := validate.Struct(&df); err != nil {
		return nil, fmt.Errorf("invalid deck file: %w", err)
	}
	return &df, nil
}

// LoadDeckFile reads a deck file from disk. An empty path loads the built-in decks.
func LoadDeckFile(path string) (*DeckFile, error) {
	if path == "" {
		return DefaultDeckFile()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return ParseDeckYAML(data)
}

// DefaultDeckFile returns the built-in decks.
func DefaultDeckFile() (*DeckFile, error) {
	return ParseDeckYAML(defaultDecks)
}

// lookup resolves a card name against the file's custom cards first, then the registry.
func (df *DeckFile) lookup(name string) (*Card, error) {
	for _, def := range df.Cards {
		if def.Name == name {
			return def.Template()
		}
	}
	return LookupCard(name)
}

// Build expands a deck entry into its card list, one template per copy.
func (df *DeckFile) Build(deck DeckEntry) ([]*Card, error) {
	var cards []*Card
	for _, entry := range deck.Cards {
		for i := 0; i < entry.Count; i++ {
			c, err := df.lookup(entry.Name)
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", deck.Name, err)
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// Names returns the deck names in file order.
func (df *DeckFile) Names() []string {
	names := make([]string, len(df.Decks))
	for i, d := range df.Decks {
		names[i] = d.Name
	}
	return names
}

// All expands every deck in the file, keyed by deck name.
func (df *DeckFile) All() (map[string][]*Card, error) {
	decks := make(map[string][]*Card, len(df.Decks))
	for _, deck := range df.Decks {
		cards, err := df.Build(deck)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the file.
func (df *DeckFile) DeckByNumber(n int) (string, []*Card, error) {
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	deck := df.Decks[n-1]
	cards, err := df.Build(deck)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}
