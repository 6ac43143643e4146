package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/config"
	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/log"
	"github.com/peterkuimelis/ccgx/internal/repl"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	decksFile := flag.String("decks", "", "path to decks YAML file (default: built-in decks)")
	deck1 := flag.Int("deck1", 0, "deck number for player 1")
	deck2 := flag.Int("deck2", 0, "deck number for player 2")
	p1 := flag.String("p1", "", "player 1 name")
	p2 := flag.String("p2", "", "player 2 name")
	seed := flag.Int64("seed", 0, "shuffle seed (0 for random)")
	listDecks := flag.Bool("list", false, "list the available decks and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *decksFile != "" {
		cfg.Decks.File = *decksFile
	}
	if *deck1 != 0 {
		cfg.Decks.Player1 = *deck1
	}
	if *deck2 != 0 {
		cfg.Decks.Player2 = *deck2
	}
	if *p1 != "" {
		cfg.Game.Player1Name = *p1
	}
	if *p2 != "" {
		cfg.Game.Player2Name = *p2
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	df, err := game.LoadDeckFile(cfg.Decks.File)
	if err != nil {
		logger.Fatal("failed to load decks", zap.Error(err))
	}

	if *listDecks {
		decks, err := df.All()
		if err != nil {
			logger.Fatal("invalid deck file", zap.Error(err))
		}
		for i, name := range df.Names() {
			fmt.Printf("  %d) %s (%d cards)\n", i+1, name, len(decks[name]))
		}
		return
	}

	name1, cards1, err := df.DeckByNumber(cfg.Decks.Player1)
	if err != nil {
		logger.Fatal("invalid deck for player 1", zap.Error(err))
	}
	name2, cards2, err := df.DeckByNumber(cfg.Decks.Player2)
	if err != nil {
		logger.Fatal("invalid deck for player 2", zap.Error(err))
	}

	engineCfg := game.EngineConfig{
		Player1:         cfg.Game.Player1Name,
		Player2:         cfg.Game.Player2Name,
		Deck1:           cards1,
		Deck2:           cards2,
		Logger:          log.NewTextLogger(os.Stdout),
		Seed:            cfg.Game.Seed,
		NoShuffle:       cfg.Game.NoShuffle,
		DrawOnTurnStart: cfg.Game.DrawOnTurnStart,
	}
	if n := cfg.Game.OpeningHand; n > 0 {
		engineCfg.OpeningHand1, engineCfg.OpeningHand2 = n, n+1
	}

	fmt.Printf("%s (%s) vs %s (%s)\n", cfg.Game.Player1Name, name1, cfg.Game.Player2Name, name2)
	e := game.NewEngine(engineCfg)
	e.StartTurn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repl.New(e, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("repl stopped", zap.Error(err))
		os.Exit(1)
	}
}
