// Package view converts engine state into JSON views for renderers and AI callers.
package view

import "github.com/peterkuimelis/ccgx/internal/game"

// Message types for the JSON protocol over the websocket bridge.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "state", "result", "error"

	GameID  string       `json:"game_id,omitempty"`
	State   *StateView   `json:"state,omitempty"`
	Result  *game.Result `json:"result,omitempty"`
	Events  []EventView  `json:"events,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered legal command.
type ActionView struct {
	Index   int          `json:"index"`
	Desc    string       `json:"desc"`
	Command game.Command `json:"command"`
}

// CardView describes a card in hand, in play or in a catalog.
type CardView struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Cost         int    `json:"cost"`
	Attack       int    `json:"attack,omitempty"`
	Health       int    `json:"health,omitempty"`
	Damage       int    `json:"damage,omitempty"`
	Taunt        bool   `json:"taunt,omitempty"`
	DivineShield bool   `json:"divine_shield,omitempty"`
	NeedsTarget  bool   `json:"needs_target,omitempty"`
	CanAttack    bool   `json:"can_attack,omitempty"`
	Description  string `json:"description,omitempty"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Current    int        `json:"current"`
	IsYourTurn bool       `json:"is_your_turn"`
	TurnEnded  bool       `json:"turn_ended"`
	GameOver   bool       `json:"game_over"`
	Winner     int        `json:"winner,omitempty"`
	Draw       bool       `json:"draw,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	HP             int        `json:"hp"`
	MaxHP          int        `json:"max_hp"`
	Mana           int        `json:"mana"`
	MaxMana        int        `json:"max_mana"`
	HandCount      int        `json:"hand_count"`
	Hand           []CardView `json:"hand,omitempty"` // only for "you"
	Battlefield    []CardView `json:"battlefield"`
	Weapon         *CardView  `json:"weapon,omitempty"`
	DeckCount      int        `json:"deck_count"`
	GraveyardCount int        `json:"graveyard_count"`
	UsedHeroPower  bool       `json:"used_hero_power"`
	HeroAttacked   bool       `json:"hero_attacked"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "new_game", "join", "command", "action", "state"

	// For "join"
	GameID string `json:"game_id,omitempty"`

	// For "new_game" (1-indexed deck numbers, 0 for the configured default)
	Deck1 int `json:"deck1,omitempty"`
	Deck2 int `json:"deck2,omitempty"`

	// For "command"
	Command *game.Command `json:"command,omitempty"`

	// For "action": index into the last ActionView list
	Index int `json:"index,omitempty"`
}
