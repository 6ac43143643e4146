// Package config loads runtime settings for the ccgx binaries.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Decks   DecksConfig   `mapstructure:"decks" validate:"required"`
	Game    GameConfig    `mapstructure:"game" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

// ServerConfig configures the web UI server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Port int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}

// DecksConfig selects the deck file and each seat's deck (1-indexed).
// An empty File means the built-in decks.
type DecksConfig struct {
	File    string `mapstructure:"file"`
	Player1 int    `mapstructure:"player1" validate:"gte=1"`
	Player2 int    `mapstructure:"player2" validate:"gte=1"`
}

// GameConfig holds engine options for new games. A non-zero OpeningHand sets player 1's
// opening hand; player 2 draws one card more.
type GameConfig struct {
	Player1Name     string `mapstructure:"player1_name" validate:"required"`
	Player2Name     string `mapstructure:"player2_name" validate:"required"`
	DrawOnTurnStart bool   `mapstructure:"draw_on_turn_start"`
	OpeningHand     int    `mapstructure:"opening_hand" validate:"gte=0,lte=10"`
	Seed            int64  `mapstructure:"seed"`
	NoShuffle       bool   `mapstructure:"no_shuffle"`
}

// SessionConfig bounds the number of concurrent games and how long idle ones live.
type SessionConfig struct {
	MaxGames    int           `mapstructure:"max_games" validate:"gte=1"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// Address returns the listen address for the web server.
func (s ServerConfig) Address() string {
	if s.Addr != "" {
		return s.Addr
	}
	return ":" + strconv.Itoa(s.Port)
}
