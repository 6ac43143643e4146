package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDeckFile(t *testing.T) {
	df, err := DefaultDeckFile()
	if err != nil {
		t.Fatal(err)
	}
	names := df.Names()
	if len(names) != 2 || names[0] != "Vanguard" || names[1] != "Pyromancer" {
		t.Fatalf("unexpected deck names %v", names)
	}

	decks, err := df.All()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(decks["Vanguard"]); got != 28 {
		t.Errorf("expected 28 cards in Vanguard, got %d", got)
	}
	if got := len(decks["Pyromancer"]); got != 30 {
		t.Errorf("expected 30 cards in Pyromancer, got %d", got)
	}

	// Custom cards defined in the file resolve before the registry.
	var whelp *Card
	for _, c := range decks["Vanguard"] {
		if c.Name == "Ember Whelp" {
			whelp = c
			break
		}
	}
	if whelp == nil || whelp.CardType != CardTypeMinion || whelp.Attack != 2 || whelp.Health != 3 || whelp.Cost != 2 {
		t.Errorf("unexpected custom card %+v", whelp)
	}
}

func TestDeckCopiesAreIndependent(t *testing.T) {
	df, err := DefaultDeckFile()
	if err != nil {
		t.Fatal(err)
	}
	_, cards, err := df.DeckByNumber(1)
	if err != nil {
		t.Fatal(err)
	}
	if cards[0] == cards[1] {
		t.Error("each copy should get its own template")
	}
}

func TestLoadDeckFileFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := `
decks:
  - name: Tiny
    cards:
      - name: Bog Raider
        count: 3
      - name: Firebolt
        count: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	df, err := LoadDeckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	name, cards, err := df.DeckByNumber(1)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Tiny" || len(cards) != 4 {
		t.Errorf("expected Tiny with 4 cards, got %s with %d", name, len(cards))
	}
	if cards[3].CardType != CardTypeSpell || !cards[3].NeedsTarget {
		t.Errorf("expected Firebolt last, got %+v", cards[3])
	}

	all, err := df.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all["Tiny"]) != 4 {
		t.Errorf("expected 4 cards, got %d", len(all["Tiny"]))
	}

	if _, _, err := df.DeckByNumber(2); err == nil {
		t.Error("expected an error for a missing deck number")
	}
}

func TestLoadDeckFileEmptyPathUsesDefaults(t *testing.T) {
	df, err := LoadDeckFile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(df.Decks) != 2 {
		t.Errorf("expected the built-in decks, got %d", len(df.Decks))
	}
}

func TestLoadDeckFileMissing(t *testing.T) {
	_, err := LoadDeckFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read deck file") {
		t.Errorf("expected a read error, got %v", err)
	}
}

func TestParseDeckYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "decks: [", "parse deck YAML"},
		{"no decks", "cards: []", "invalid deck file"},
		{"zero count", "decks:\n  - name: D\n    cards:\n      - {name: Bog Raider, count: 0}\n", "invalid deck file"},
		{"unnamed deck", "decks:\n  - cards:\n      - {name: Bog Raider, count: 1}\n", "invalid deck file"},
		{"bad card type", "cards:\n  - {name: X, type: hero_power, cost: 2}\ndecks:\n  - name: D\n    cards:\n      - {name: X, count: 1}\n", "invalid deck file"},
		{"negative cost", "cards:\n  - {name: X, type: spell, cost: -1}\ndecks:\n  - name: D\n    cards:\n      - {name: X, count: 1}\n", "invalid deck file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeckYAML([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestBuildUnknownCard(t *testing.T) {
	df, err := ParseDeckYAML([]byte("decks:\n  - name: D\n    cards:\n      - {name: Nobody, count: 1}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := df.DeckByNumber(1); err == nil || !strings.Contains(err.Error(), "Nobody") {
		t.Errorf("expected an unknown card error, got %v", err)
	}
	if _, err := df.All(); err == nil {
		t.Error("expected All to fail on the unknown card")
	}
}

func TestCustomMinionNeedsHealth(t *testing.T) {
	_, err := CardDef{Name: "Ghost", Type: "minion", Cost: 1, Attack: 1}.Template()
	if err == nil {
		t.Error("a minion without health should be rejected")
	}
}

func TestLookupCard(t *testing.T) {
	c, err := LookupCard("Shieldbearer")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Taunt || c.CardType != CardTypeMinion {
		t.Errorf("unexpected card %+v", c)
	}
	if _, err := LookupCard("Nobody"); err == nil {
		t.Error("expected an error for an unknown card")
	}
}

func TestCatalog(t *testing.T) {
	cards := Catalog()
	if len(cards) != len(CardRegistry) {
		t.Fatalf("expected %d cards, got %d", len(CardRegistry), len(cards))
	}
	for i := 1; i < len(cards); i++ {
		if cards[i].Cost < cards[i-1].Cost {
			t.Errorf("catalog not sorted by cost at %d", i)
		}
	}
	for name, ctor := range CardRegistry {
		if ctor().Name != name {
			t.Errorf("registry key %q builds %q", name, ctor().Name)
		}
	}
}

func TestParseCardType(t *testing.T) {
	for _, ct := range []CardType{CardTypeMinion, CardTypeSpell, CardTypeWeapon, CardTypeHeroPower} {
		got, err := ParseCardType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseCardType(%q) = %v, %v", ct.String(), got, err)
		}
	}
	if _, err := ParseCardType("land"); err == nil {
		t.Error("expected an error for an unknown type")
	}
}
