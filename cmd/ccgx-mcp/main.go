package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/config"
	"github.com/peterkuimelis/ccgx/internal/game"
	ccgxmcp "github.com/peterkuimelis/ccgx/internal/mcp"
	"github.com/peterkuimelis/ccgx/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	decks := flag.String("decks", "", "path to decks YAML file (default: built-in decks)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *decks != "" {
		cfg.Decks.File = *decks
	}

	// stdout carries the MCP protocol; the logger writes to stderr.
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

	s := server.NewMCPServer("ccgx", "1.0.0", server.WithToolCapabilities(false))
	ccgxmcp.NewHandler(games, logger).RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
