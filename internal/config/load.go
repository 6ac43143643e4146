package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CCGX_SERVER_PORT.
const EnvPrefix = "CCGX"

// Load builds a Config from defaults, an optional YAML file and CCGX_* environment
// variables, in increasing order of precedence. An empty path skips the file; a
// named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "")
	v.SetDefault("server.port", 8080)

	v.SetDefault("decks.file", "")
	v.SetDefault("decks.player1", 1)
	v.SetDefault("decks.player2", 2)

	v.SetDefault("game.player1_name", "Player 1")
	v.SetDefault("game.player2_name", "Player 2")
	v.SetDefault("game.draw_on_turn_start", true)
	v.SetDefault("game.opening_hand", 0)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.no_shuffle", false)

	v.SetDefault("session.max_games", 64)
	v.SetDefault("session.idle_timeout", "30m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
