package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/config"
	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/session"
	"github.com/peterkuimelis/ccgx/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	decksFile := flag.String("decks", "", "path to decks YAML file (default: built-in decks)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
		cfg.Server.Addr = ""
	}
	if *decksFile != "" {
		cfg.Decks.File = *decksFile
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
	games, err := session.NewManager(session.OptionsFromConfig(cfg, df), logger)
	if err != nil {
		logger.Fatal("failed to create session manager", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go games.Run(ctx, time.Minute)

	addr := cfg.Server.Address()
	logger.Info("ccgx web UI", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)))
	if err := web.NewServer(games, logger).ListenAndServe(ctx, addr); err != nil {
		logger.Error("web server stopped", zap.Error(err))
		os.Exit(1)
	}
}
