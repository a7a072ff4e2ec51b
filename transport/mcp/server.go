package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/KazooBoye/Scribble/client"
)

// Server wraps a game client in an MCP server. A background loop ticks
// the client so inbound messages keep flowing while an agent thinks.
type Server struct {
	client    *client.Client
	mcpServer *server.MCPServer
	tickRate  time.Duration
}

// NewServer creates an MCP server around a connected client.
func NewServer(c *client.Client, tickRate time.Duration) *Server {
	if tickRate <= 0 {
		tickRate = 16 * time.Millisecond
	}
	s := &Server{
		client:   c,
		tickRate: tickRate,
	}
	s.initMCPServer()
	return s
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Scribble",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Scribble - MCP Interface

A real-time drawing-and-guessing game. Players take turns drawing a
secret word while everyone else guesses it in chat.

GETTING STARTED:
Call play_now with a username to join a public game, or create_room /
join_room for private rooms. Then poll game_state to follow the round.

WHEN GUESSING:
The word mask in game_state shows the word's shape. Send guesses with
send_chat; correct guesses score points.

WHEN DRAWING:
game_state shows the word to draw when you hold the brush. Use
draw_stroke to draw line segments on the 700x500 canvas and
clear_canvas to start over. Colors are palette indices 0-9
(black, white, red, green, blue, yellow, orange, purple, pink, brown).

AVAILABLE TOOLS:
- game_state: Current phase, roster, scores, chat, and round info
- play_now: Register and join a public game
- create_room: Register and create a private room
- join_room: Register and join a private room by code
- send_chat: Send a chat message or word guess
- draw_stroke: Draw one line segment (drawer only)
- clear_canvas: Wipe the canvas (drawer only)
- return_home: Leave the post-game screen`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: phase, roster, scores, chat log, and round info",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play_now",
		Description: "Register with a username and join a public game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Display name, at most 20 characters",
				},
			},
			Required: []string{"username"},
		},
	}, s.handlePlayNow)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Register with a username and create a private room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Display name, at most 20 characters",
				},
			},
			Required: []string{"username"},
		},
	}, s.handleCreateRoom)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "join_room",
		Description: "Register with a username and join a private room by its 6-character code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Display name, at most 20 characters",
				},
				"room_code": map[string]interface{}{
					"type":        "string",
					"description": "6-character room code",
				},
			},
			Required: []string{"username", "room_code"},
		},
	}, s.handleJoinRoom)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "send_chat",
		Description: "Send a chat message; during a round this doubles as a word guess",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Chat text or guess",
				},
			},
			Required: []string{"message"},
		},
	}, s.handleSendChat)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "draw_stroke",
		Description: "Draw one line segment on the canvas. Only works while holding the brush",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x1": map[string]interface{}{
					"type":        "number",
					"description": "Start X, 0-700",
				},
				"y1": map[string]interface{}{
					"type":        "number",
					"description": "Start Y, 0-500",
				},
				"x2": map[string]interface{}{
					"type":        "number",
					"description": "End X, 0-700",
				},
				"y2": map[string]interface{}{
					"type":        "number",
					"description": "End Y, 0-500",
				},
				"color": map[string]interface{}{
					"type":        "number",
					"description": "Palette index 0-9",
				},
			},
			Required: []string{"x1", "y1", "x2", "y2"},
		},
	}, s.handleDrawStroke)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_canvas",
		Description: "Wipe the shared canvas. Only works while holding the brush",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleClearCanvas)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "return_home",
		Description: "Leave the post-game screen and return to the landing state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleReturnHome)
}

// GetMCPServer returns the underlying MCP server for serving.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the tick loop and serves MCP over stdio until the
// context is canceled or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(s.tickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.client.Tick()
			}
		}
	}()

	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.client.Tick()
	return mcp.NewToolResultText(formatSnapshot(s.client.Snapshot())), nil
}

func (s *Server) handlePlayNow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	username, _ := args["username"].(string)

	if err := s.client.PlayNow(username); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Joining a public game as " + username + ". Poll game_state to follow the handshake."), nil
}

func (s *Server) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	username, _ := args["username"].(string)

	if err := s.client.CreateRoom(username); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Creating a private room as " + username + ". The room code appears in game_state."), nil
}

func (s *Server) handleJoinRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	username, _ := args["username"].(string)
	roomCode, _ := args["room_code"].(string)

	if err := s.client.JoinRoom(username, roomCode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Joining room %s as %s.", strings.ToUpper(roomCode), username)), nil
}

func (s *Server) handleSendChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	message, _ := args["message"].(string)

	if err := s.client.SendChat(message); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Sent: " + message), nil
}

func (s *Server) handleDrawStroke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	x1, _ := args["x1"].(float64)
	y1, _ := args["y1"].(float64)
	x2, _ := args["x2"].(float64)
	y2, _ := args["y2"].(float64)
	if color, ok := args["color"].(float64); ok {
		s.client.SetColor(int(color))
	}

	snap := s.client.Snapshot()
	if !snap.IsDrawer || !snap.CanvasEnabled {
		return mcp.NewToolResultError("you are not the drawer right now"), nil
	}

	s.client.PointerDown(x1, y1)
	s.client.PointerMove(x2, y2)
	s.client.PointerUp()

	return mcp.NewToolResultText(fmt.Sprintf("Drew segment (%.0f,%.0f)-(%.0f,%.0f).", x1, y1, x2, y2)), nil
}

func (s *Server) handleClearCanvas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.client.Snapshot()
	if !snap.IsDrawer || !snap.CanvasEnabled {
		return mcp.NewToolResultError("you are not the drawer right now"), nil
	}
	if err := s.client.ClearCanvas(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Canvas cleared."), nil
}

func (s *Server) handleReturnHome(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.client.ReturnHome()
	return mcp.NewToolResultText("Returned to the landing screen."), nil
}

// formatSnapshot renders a snapshot as agent-readable text.
func formatSnapshot(snap client.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phase: %s\n", snap.Phase)
	fmt.Fprintf(&b, "Status: %s\n", snap.Status)
	if !snap.Connected {
		b.WriteString("Connection: DOWN\n")
	}
	if snap.Reconnecting {
		b.WriteString("Connection: reconnecting\n")
	}
	if snap.RoomCode != "" {
		fmt.Fprintf(&b, "Room: %s\n", snap.RoomCode)
	}

	if snap.Round > 0 {
		fmt.Fprintf(&b, "Round: %d/%d\n", snap.Round, snap.TotalRounds)
	}
	if snap.Timer > 0 {
		fmt.Fprintf(&b, "Time remaining: %ds\n", snap.Timer)
	}
	if snap.Countdown > 0 {
		fmt.Fprintf(&b, "Next round in: %ds\n", snap.Countdown)
	}

	if snap.IsDrawer {
		fmt.Fprintf(&b, "You are DRAWING. Word: %s\n", snap.WordToDraw)
		fmt.Fprintf(&b, "Canvas: %d segments drawn\n", len(snap.Segments))
	} else if snap.Round > 0 {
		fmt.Fprintf(&b, "You are guessing. Word mask: %s\n", snap.WordMask)
	}

	if len(snap.Players) > 0 {
		b.WriteString("\nPlayers:\n")
		for _, p := range snap.Players {
			marker := ""
			if p.IsDrawing {
				marker = " [drawing]"
			}
			if !p.Online {
				marker += " [offline]"
			}
			fmt.Fprintf(&b, "- %s: %d points%s\n", p.Username, p.Score, marker)
		}
	}

	if len(snap.Chat) > 0 {
		b.WriteString("\nChat:\n")
		for _, line := range snap.Chat {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}
