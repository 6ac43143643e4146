// Package mcp exposes the rules engine as MCP tools so an AI caller can play a game.
package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/ccgx/internal/game"
	"github.com/peterkuimelis/ccgx/internal/session"
	"github.com/peterkuimelis/ccgx/internal/view"
)

// Handler serves the game tools. Games live in the session manager; the handler only
// remembers which seat the caller plays in each game.
type Handler struct {
	games  *session.Manager
	logger *zap.Logger

	mu    sync.Mutex
	seats map[string]seat
	last  string // most recent game, used when a tool call omits game_id
}

// NewHandler creates a tool handler backed by games.
func NewHandler(games *session.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		games:  games,
		logger: logger,
		seats:  make(map[string]seat),
	}
}

// RegisterTools adds all game tools to the MCP server.
func (h *Handler) RegisterTools(s *server.MCPServer) {
	s.AddTool(newGameTool(), h.handleNewGame)
	s.AddTool(getStateTool(), h.handleGetState)
	s.AddTool(takeActionTool(), h.handleTakeAction)
	s.AddTool(playCardTool(), h.handlePlayCard)
	s.AddTool(attackTool(), h.handleAttack)
	s.AddTool(heroAttackTool(), h.handleHeroAttack)
	s.AddTool(useHeroPowerTool(), h.handleUseHeroPower)
	s.AddTool(endTurnTool(), h.handleEndTurn)
	s.AddTool(checkWinTool(), h.handleCheckWin)
	s.AddTool(getHistoryTool(), h.handleGetHistory)
}

// --- Tool definitions ---

func gameIDOption() mcp.ToolOption {
	return mcp.WithString("game_id", mcp.Description("Game to act in. Defaults to the most recently created game."))
}

func targetOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("target_kind", mcp.Enum("hero", "minion"), mcp.Description("What to target: a hero or a minion")),
		mcp.WithNumber("target_player", mcp.Description("For hero targets: 1 or 2. Defaults to the opposing hero.")),
		mcp.WithNumber("target_id", mcp.Description("For minion targets: the minion's card id from the state view")),
	}
}

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new card battle. Returns the game id, the initial state and the legal actions. "+
			"With opponent 'bot' a built-in autopilot plays the other seat; with 'self' you play both seats."),
		mcp.WithNumber("seat", mcp.Description("Which player you are: 1 = goes first (default), 2 = goes second")),
		mcp.WithString("opponent", mcp.Enum(OpponentBot, OpponentSelf), mcp.Description("Who plays the other seat (default bot)")),
		mcp.WithNumber("deck", mcp.Description("Your deck number (1-indexed, see the deck file)")),
		mcp.WithNumber("opponent_deck", mcp.Description("The other seat's deck number")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible game")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state, events since the last call and the legal actions. Read-only."),
		gameIDOption(),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Take an action from the legal actions list by its index."),
		gameIDOption(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the actions list")),
	)
}

func playCardTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Play a card from your hand: summon a minion, cast a spell or equip a weapon. " +
			"Damage spells that need a target take target_kind plus target_player or target_id."),
		gameIDOption(),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Card id of the hand card")),
	}
	return mcp.NewTool("play_card", append(opts, targetOptions()...)...)
}

func attackTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Attack with one of your minions. Minions cannot attack the turn they are summoned, " +
			"and taunt minions must be attacked first."),
		gameIDOption(),
		mcp.WithNumber("attacker_id", mcp.Required(), mcp.Description("Card id of your attacking minion")),
	}
	return mcp.NewTool("attack", append(opts, targetOptions()...)...)
}

func heroAttackTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Attack with your hero using the equipped weapon. Once per turn; costs one durability."),
		gameIDOption(),
	}
	return mcp.NewTool("hero_attack", append(opts, targetOptions()...)...)
}

func useHeroPowerTool() mcp.Tool {
	return mcp.NewTool("use_hero_power",
		mcp.WithDescription("Use the hero power: 2 mana, 1 damage to the enemy hero, once per turn."),
		gameIDOption(),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. Against the bot, its whole turn is played before this returns; "+
			"in self play the other seat's turn is started."),
		gameIDOption(),
	)
}

func checkWinTool() mcp.Tool {
	return mcp.NewTool("check_win",
		mcp.WithDescription("Check whether a hero has fallen and report the outcome."),
		gameIDOption(),
	)
}

func getHistoryTool() mcp.Tool {
	return mcp.NewTool("get_history",
		mcp.WithDescription("Get the full action history of the game as JSON records. Read-only."),
		gameIDOption(),
	)
}

// --- Tool handlers ---

func (h *Handler) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	player := game.PlayerID(request.GetInt("seat", 1))
	if player != game.Player1 && player != game.Player2 {
		return mcp.NewToolResultError("seat must be 1 or 2"), nil
	}
	opponent := request.GetString("opponent", OpponentBot)
	if opponent != OpponentBot && opponent != OpponentSelf {
		return mcp.NewToolResultErrorf("opponent must be %q or %q", OpponentBot, OpponentSelf), nil
	}
	deck := request.GetInt("deck", 0)
	oppDeck := request.GetInt("opponent_deck", 0)
	if deck < 0 || oppDeck < 0 {
		return mcp.NewToolResultError("deck numbers must be >= 1"), nil
	}

	req := session.NewGameRequest{Deck1: deck, Deck2: oppDeck, Seed: int64(request.GetInt("seed", 0))}
	if player == game.Player2 {
		req.Deck1, req.Deck2 = oppDeck, deck
	}

	h.pruneSeats()
	g, err := h.games.Create(req)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	s := seat{player: player}
	if opponent == OpponentBot {
		s.bot = NewAutopilot(player.Other())
	}
	h.mu.Lock()
	h.seats[g.ID] = s
	h.last = g.ID
	h.mu.Unlock()

	h.logger.Info("mcp game started",
		zap.String("game_id", g.ID),
		zap.Int("seat", int(player)),
		zap.String("opponent", opponent),
	)

	events := view.EventViews(g.Events())
	if s.bot != nil && player == game.Player2 {
		events = append(events, s.bot.PlayTurn(g)...)
	}
	return mcp.NewToolResultText(respondJSON(buildResponse(g, s, nil, events))), nil
}

func (h *Handler) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	resp := buildResponse(g, s, nil, view.EventViews(g.Events()))
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	actions := g.Actions()
	if len(actions) == 0 {
		return mcp.NewToolResultError("No actions available: the game is over."), nil
	}
	index := request.GetInt("index", -1)
	if index < 0 || index >= len(actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(actions)-1), nil
	}
	return h.apply(g, s, actions[index].Command), nil
}

func (h *Handler) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	cmd := game.Command{Type: game.CmdPlayCard, CardID: request.GetInt("card_id", 0)}
	cmd.Target = h.targetArg(g, request)
	return h.apply(g, s, cmd), nil
}

func (h *Handler) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	cmd := game.Command{Type: game.CmdAttack, AttackerID: request.GetInt("attacker_id", 0)}
	cmd.Target = h.targetArg(g, request)
	return h.apply(g, s, cmd), nil
}

func (h *Handler) handleHeroAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	cmd := game.Command{Type: game.CmdHeroAttack, Target: h.targetArg(g, request)}
	return h.apply(g, s, cmd), nil
}

func (h *Handler) handleUseHeroPower(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.simple(request, game.CmdUseHeroPower), nil
}

func (h *Handler) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.simple(request, game.CmdEndTurn), nil
}

func (h *Handler) handleCheckWin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.simple(request, game.CmdCheckWin), nil
}

func (h *Handler) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, _, errResult := h.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	data, err := json.Marshal(g.History())
	if err != nil {
		return mcp.NewToolResultErrorf("marshal history: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// --- Helpers ---

func (h *Handler) simple(request mcp.CallToolRequest, t game.CommandType) *mcp.CallToolResult {
	g, s, errResult := h.lookup(request)
	if errResult != nil {
		return errResult
	}
	return h.apply(g, s, game.Command{Type: t})
}

// apply runs cmd for the caller. A successful end_turn also plays or opens the other
// seat's turn so the caller is always handed back a turn it can act in.
func (h *Handler) apply(g *session.Game, s seat, cmd game.Command) *mcp.CallToolResult {
	if s.bot != nil && cmd.Type != game.CmdCheckWin {
		if st := g.State(s.player); !st.GameOver && !st.IsYourTurn {
			return mcp.NewToolResultErrorf("It is not your turn (you are player %d).", int(s.player))
		}
	}

	res, evs := g.Apply(cmd)
	events := view.EventViews(evs)

	if res.Success && cmd.Type == game.CmdEndTurn {
		if s.bot != nil {
			events = append(events, s.bot.PlayTurn(g)...)
		} else {
			_, evs = g.Apply(game.Command{Type: game.CmdStartTurn})
			events = append(events, view.EventViews(evs)...)
		}
	}

	resp := buildResponse(g, s, &res, events)
	if resp.GameOver && cmd.Type != game.CmdCheckWin {
		h.logger.Info("mcp game over", zap.String("game_id", g.ID), zap.String("summary", resp.Summary))
	}
	if !res.Success {
		return mcp.NewToolResultError(respondJSON(resp))
	}
	return mcp.NewToolResultText(respondJSON(resp))
}

// lookup resolves the game_id argument (or the most recent game) to a live game.
func (h *Handler) lookup(request mcp.CallToolRequest) (*session.Game, seat, *mcp.CallToolResult) {
	id := request.GetString("game_id", "")

	h.mu.Lock()
	if id == "" {
		id = h.last
	}
	s, known := h.seats[id]
	h.mu.Unlock()

	if id == "" {
		return nil, seat{}, mcp.NewToolResultError("No game is running. Use new_game first.")
	}
	g, err := h.games.Get(id)
	if err != nil {
		return nil, seat{}, mcp.NewToolResultErrorf("Unknown game: %v", err)
	}
	if !known {
		s = seat{player: game.Player1}
	}
	return g, s, nil
}

// targetArg builds a target reference from the target_* arguments, or nil when none was given.
func (h *Handler) targetArg(g *session.Game, request mcp.CallToolRequest) *game.TargetRef {
	switch request.GetString("target_kind", "") {
	case "hero":
		p := game.PlayerID(request.GetInt("target_player", 0))
		if p == game.NoPlayer {
			p = game.PlayerID(g.State(game.NoPlayer).Current).Other()
		}
		return game.HeroRef(p)
	case "minion":
		return game.MinionRef(request.GetInt("target_id", 0))
	case "":
		return nil
	default:
		return &game.TargetRef{Kind: request.GetString("target_kind", "")}
	}
}

// pruneSeats forgets games the session manager has reaped.
func (h *Handler) pruneSeats() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.seats {
		if _, err := h.games.Get(id); err != nil {
			delete(h.seats, id)
			if h.last == id {
				h.last = ""
			}
		}
	}
}
