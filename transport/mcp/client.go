package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hashfront/skirmish-server/game/engine"
	"github.com/hashfront/skirmish-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Skirmish Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Skirmish - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Capture the enemy headquarters, eliminate every opposing army, or hold the
highest total strength when the round limit runs out.

HOW A TURN WORKS:
Slots act in order. On your turn each unit may move once and act once
(attack or capture); acting seals the unit for the round. Factories queue
one unit per round for gold, and queued units deploy at the start of your
next turn if the factory tile is clear.

UNITS:
- infantry: cheap, captures buildings, the only unit that crosses mountains
- tank: heavy hitter, gains extra movement along roads
- ranger: fires at range 2-3 but only if it has not moved this round

AVAILABLE TOOLS:
- list_templates / get_template: browse the map pool
- create_session / join_session / list_sessions: session management
- game_state: full board view for a session
- move_unit, attack, capture, build_unit, end_turn, resign: play the game

Every action tool takes an 'address' parameter identifying the player;
the same address must be used consistently within a session.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
	addressProp := map[string]interface{}{
		"type":        "string",
		"description": "Player address performing the action",
	}

	// Template pool
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_templates",
		Description: "List available map templates",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListTemplates)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_template",
		Description: "Get the full definition of a map template",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"template_id": map[string]interface{}{
					"type":        "string",
					"description": "Template ID to retrieve",
				},
			},
			Required: []string{"template_id"},
		},
	}, c.handleGetTemplate)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session from a map template. The creator takes a slot immediately",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"template_id": map[string]interface{}{
					"type":        "string",
					"description": "Template to play on",
				},
				"address": addressProp,
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Session name (optional, defaults to the template name)",
				},
				"slot": map[string]interface{}{
					"type":        "integer",
					"description": "Slot the creator takes (optional, defaults to 1)",
				},
				"round_limit": map[string]interface{}{
					"type":        "integer",
					"description": "Round limit (optional)",
				},
			},
			Required: []string{"template_id", "address"},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_session",
		Description: "Take a free slot in a lobby session. The game starts once every slot is filled",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
				"slot": map[string]interface{}{
					"type":        "integer",
					"description": "Slot to take",
				},
			},
			Required: []string{"session_id", "address", "slot"},
		},
	}, c.handleJoinSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the full game state of a session, including a board rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	// Game actions
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_unit",
		Description: "Move a unit along a path of adjacent tiles. Each unit moves at most once per round",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
				"unit_id": map[string]interface{}{
					"type":        "integer",
					"description": "Unit to move",
				},
				"path": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Ordered tiles to step through, each adjacent to the previous",
				},
			},
			Required: []string{"session_id", "address", "unit_id", "path"},
		},
	}, c.handleMoveUnit)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "attack",
		Description: "Attack an enemy unit. Adjacent defenders strike back if they survive",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
				"unit_id": map[string]interface{}{
					"type":        "integer",
					"description": "Attacking unit",
				},
				"target_id": map[string]interface{}{
					"type":        "integer",
					"description": "Enemy unit to attack",
				},
			},
			Required: []string{"session_id", "address", "unit_id", "target_id"},
		},
	}, c.handleAttack)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "capture",
		Description: "Progress the capture of the building under a unit. Two ticks flip ownership",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
				"unit_id": map[string]interface{}{
					"type":        "integer",
					"description": "Capturing unit (must be standing on the building)",
				},
			},
			Required: []string{"session_id", "address", "unit_id"},
		},
	}, c.handleCapture)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "build_unit",
		Description: "Queue a unit at one of your factories. It deploys at the start of your next turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Factory X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Factory Y coordinate",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"infantry", "tank", "ranger"},
					"description": "Unit kind to build",
				},
			},
			Required: []string{"session_id", "address", "x", "y", "kind"},
		},
	}, c.handleBuildUnit)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_turn",
		Description: "End the current turn and hand play to the next slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
			},
			Required: []string{"session_id", "address"},
		},
	}, c.handleEndTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resign",
		Description: "Concede the game for the caller's slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"address":    addressProp,
			},
			Required: []string{"session_id", "address"},
		},
	}, c.handleResign)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path, address string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if address != "" {
		req.Header.Set("X-Player-Address", address)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var templates []service.TemplateInfo
	err := c.apiCall("GET", "/api/templates", "", nil, &templates)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Map Templates (%d):\n\n", len(templates))
	for _, tpl := range templates {
		result += fmt.Sprintf("- %s: %s (%dx%d, %d players)\n",
			tpl.ID, tpl.Name, tpl.Width, tpl.Height, tpl.Slots)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	templateID, _ := args["template_id"].(string)

	var tpl engine.MapTemplate
	err := c.apiCall("GET", fmt.Sprintf("/api/templates/%s", templateID), "", nil, &tpl)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatTemplate(&tpl)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	address, _ := args["address"].(string)

	req := service.CreateSessionRequest{}
	req.TemplateID, _ = args["template_id"].(string)
	req.Name, _ = args["name"].(string)
	if slot, ok := args["slot"].(float64); ok {
		req.Slot = int(slot)
	}
	if limit, ok := args["round_limit"].(float64); ok {
		req.RoundLimit = int(limit)
	}

	var info service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", address, req, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nName: %s\nTemplate: %s\nSlots filled: %d/%d\n",
		info.ID, info.Name, info.TemplateID, info.JoinedCount, info.SlotCount)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleJoinSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)
	slot := 0
	if v, ok := args["slot"].(float64); ok {
		slot = int(v)
	}

	body := map[string]int{"slot": slot}

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/join", sessionID), address, body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sessions []service.SessionInfo
	err := c.apiCall("GET", "/api/sessions", "", nil, &sessions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		result += fmt.Sprintf("- %s %q phase=%s round=%d slots=%d/%d (created %s)\n",
			s.ID, s.Name, s.Phase, s.Round, s.JoinedCount, s.SlotCount,
			s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var view service.GameView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), "", nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameView(&view)), nil
}

func (c *Client) handleMoveUnit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)
	unitID := intArg(args, "unit_id")

	pathRaw, _ := args["path"].([]interface{})
	path := make([]map[string]int, 0, len(pathRaw))
	for _, step := range pathRaw {
		if m, ok := step.(map[string]interface{}); ok {
			x, _ := m["x"].(float64)
			y, _ := m["y"].(float64)
			path = append(path, map[string]int{"x": int(x), "y": int(y)})
		}
	}

	body := map[string]interface{}{
		"unit_id": unitID,
		"path":    path,
	}

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), address, body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)

	body := map[string]interface{}{
		"unit_id":   intArg(args, "unit_id"),
		"target_id": intArg(args, "target_id"),
	}

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/attack", sessionID), address, body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleCapture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)

	body := map[string]interface{}{
		"unit_id": intArg(args, "unit_id"),
	}

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/capture", sessionID), address, body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleBuildUnit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)
	kind, _ := args["kind"].(string)

	body := map[string]interface{}{
		"x":    intArg(args, "x"),
		"y":    intArg(args, "y"),
		"kind": kind,
	}

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/build", sessionID), address, body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/end-turn", sessionID), address, nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleResign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	address, _ := args["address"].(string)

	var result service.ActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/resign", sessionID), address, nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

// intArg reads a JSON number argument as an int.
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatTemplate(tpl *engine.MapTemplate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\nName: %s\nSize: %dx%d\nPlayers: %d\n\n",
		tpl.ID, tpl.Name, tpl.Width, tpl.Height, tpl.SlotCount())

	b.WriteString("Buildings:\n")
	for _, bl := range tpl.Buildings {
		owner := "neutral"
		if bl.Owner > 0 {
			owner = fmt.Sprintf("slot %d", bl.Owner)
		}
		fmt.Fprintf(&b, "- %s at (%d,%d), %s\n", bl.Kind, bl.X, bl.Y, owner)
	}

	if len(tpl.Units) > 0 {
		b.WriteString("\nStarting units:\n")
		for _, u := range tpl.Units {
			fmt.Fprintf(&b, "- %s at (%d,%d), slot %d\n", u.Kind, u.X, u.Y, u.Owner)
		}
	}

	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, e := range result.Events {
			b.WriteString("- " + formatEvent(e) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(formatGameView(result.Game))
	return b.String()
}

func formatEvent(e engine.Event) string {
	switch e.Type {
	case engine.EventUnitMoved:
		return fmt.Sprintf("unit %d moved (%d,%d) to (%d,%d)",
			e.UnitID, e.From.X, e.From.Y, e.Pos.X, e.Pos.Y)
	case engine.EventUnitAttacked:
		verb := "attacked"
		if e.Counter {
			verb = "countered"
		}
		return fmt.Sprintf("unit %d %s unit %d: %s for %d damage",
			e.UnitID, verb, e.TargetID, e.Outcome, e.Damage)
	case engine.EventUnitDied:
		return fmt.Sprintf("unit %d destroyed", e.UnitID)
	case engine.EventUnitBuilt:
		return fmt.Sprintf("slot %d queued a %s, %d gold left", e.Slot, e.UnitKind, e.Gold)
	case engine.EventUnitSpawned:
		return fmt.Sprintf("%s deployed at (%d,%d) for slot %d", e.UnitKind, e.Pos.X, e.Pos.Y, e.Slot)
	case engine.EventCaptureProgressed:
		return fmt.Sprintf("capture at (%d,%d) progressed to %d", e.Pos.X, e.Pos.Y, e.Progress)
	case engine.EventBuildingCaptured:
		return fmt.Sprintf("slot %d captured the %s at (%d,%d)", e.Slot, e.Building, e.Pos.X, e.Pos.Y)
	case engine.EventIncomeCollected:
		return fmt.Sprintf("slot %d collected income, %d gold", e.Slot, e.Gold)
	case engine.EventTurnEnded:
		return fmt.Sprintf("slot %d ended the turn", e.Slot)
	case engine.EventPlayerResigned:
		return fmt.Sprintf("slot %d resigned", e.Slot)
	case engine.EventPlayerEliminated:
		return fmt.Sprintf("slot %d eliminated", e.Slot)
	case engine.EventGameOver:
		return fmt.Sprintf("game over: slot %d wins (%s)", e.Winner, e.Reason)
	default:
		return string(e.Type)
	}
}

func formatGameView(view *service.GameView) string {
	if view == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s %q\nPhase: %s | Round: %d/%d | Current slot: %d\n\n",
		view.ID, view.Name, view.Phase, view.Round, view.RoundLimit, view.CurrentSlot)

	b.WriteString(renderBoard(view))

	b.WriteString("\nSlots:\n")
	for _, slot := range view.Slots {
		status := "alive"
		if !slot.Alive {
			status = "out"
		}
		if !slot.Joined {
			status = "open"
		}
		fmt.Fprintf(&b, "- slot %d (%s): %s, %d gold, %d units, HQs=%d cities=%d factories=%d\n",
			slot.Slot, slot.Controller, status, slot.Gold, slot.Units,
			slot.HQs, slot.Cities, slot.Factories)
	}

	if len(view.Units) > 0 {
		b.WriteString("\nUnits:\n")
		units := append([]engine.Unit(nil), view.Units...)
		sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
		for _, u := range units {
			fmt.Fprintf(&b, "- #%d %s slot=%d at (%d,%d) hp=%d\n",
				u.ID, u.Kind, u.Owner, u.Pos.X, u.Pos.Y, u.HP)
		}
	}

	if view.Phase == engine.PhaseFinished {
		fmt.Fprintf(&b, "\nGAME OVER: slot %d wins (%s)\n", view.Winner, view.WinReason)
	}

	return b.String()
}

// renderBoard draws the terrain with building and unit overlays. Units win
// over buildings, buildings over terrain.
func renderBoard(view *service.GameView) string {
	if view.Height == 0 || view.Width == 0 {
		return ""
	}

	grid := make([][]byte, view.Height)
	for y := 0; y < view.Height; y++ {
		grid[y] = make([]byte, view.Width)
		for x := 0; x < view.Width; x++ {
			grid[y][x] = terrainChar(view.Terrain[y][x])
		}
	}
	for _, bl := range view.Buildings {
		grid[bl.Pos.Y][bl.Pos.X] = buildingChar(bl.Kind, bl.Owner)
	}
	for _, u := range view.Units {
		grid[u.Pos.Y][u.Pos.X] = unitChar(u.Kind, u.Owner)
	}

	var b strings.Builder
	for y := 0; y < view.Height; y++ {
		b.Write(grid[y])
		b.WriteString("\n")
	}
	b.WriteString(`
Legend: . grass  = road  - dirt road  t tree  ^ mountain  ~ water
        H/C/F owned HQ/city/factory (lowercase neutral)
        I/T/R infantry/tank/ranger (lowercase for even slots)
`)
	return b.String()
}

func terrainChar(kind engine.TileKind) byte {
	switch kind {
	case engine.TileGrass:
		return '.'
	case engine.TileRoad:
		return '='
	case engine.TileDirtRoad:
		return '-'
	case engine.TileTree:
		return 't'
	case engine.TileMountain:
		return '^'
	case engine.TileWater:
		return '~'
	default:
		return '?'
	}
}

func buildingChar(kind engine.BuildingKind, owner int) byte {
	var ch byte
	switch kind {
	case engine.BuildingHQ:
		ch = 'H'
	case engine.BuildingCity:
		ch = 'C'
	case engine.BuildingFactory:
		ch = 'F'
	default:
		return '?'
	}
	if owner == 0 {
		return ch + ('a' - 'A')
	}
	return ch
}

func unitChar(kind engine.UnitKind, owner int) byte {
	var ch byte
	switch kind {
	case engine.UnitInfantry:
		ch = 'I'
	case engine.UnitTank:
		ch = 'T'
	case engine.UnitRanger:
		ch = 'R'
	default:
		return '?'
	}
	if owner%2 == 0 {
		return ch + ('a' - 'A')
	}
	return ch
}
