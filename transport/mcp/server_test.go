package mcp

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KazooBoye/Scribble/client"
	"github.com/KazooBoye/Scribble/protocol"
	"github.com/KazooBoye/Scribble/transport"
)

// loopTransport is an in-memory transport double.
type loopTransport struct {
	mu        sync.Mutex
	connected bool
	sent      [][]byte
	receiver  transport.Receiver
}

func (l *loopTransport) Connect(host string, port int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = true
	return nil
}

func (l *loopTransport) Send(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, data)
	return nil
}

func (l *loopTransport) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

func (l *loopTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = false
	return nil
}

func (l *loopTransport) SetReceiver(fn transport.Receiver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receiver = fn
}

func (l *loopTransport) push(t *testing.T, msgType protocol.MsgType, payload any) {
	t.Helper()
	raw, err := protocol.Encode(msgType, payload)
	if err != nil {
		t.Fatalf("encode push: %v", err)
	}
	l.mu.Lock()
	fn := l.receiver
	l.mu.Unlock()
	fn(raw)
}

func newTestServer(t *testing.T) (*Server, *loopTransport, *client.Client) {
	t.Helper()
	lt := &loopTransport{}
	c := client.New(lt, client.Options{Host: "localhost", Port: 9090})
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return NewServer(c, 16*time.Millisecond), lt, c
}

func TestNewServer(t *testing.T) {
	s, _, _ := newTestServer(t)

	if s.mcpServer == nil {
		t.Error("MCP server not initialized")
	}
	if s.GetMCPServer() == nil {
		t.Error("GetMCPServer() returned nil")
	}
}

func TestHandlePlayNow(t *testing.T) {
	s, _, _ := newTestServer(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "play_now",
			Arguments: map[string]interface{}{"username": "agent"},
		},
	}
	result, err := s.handlePlayNow(context.Background(), request)
	if err != nil {
		t.Fatalf("handlePlayNow() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handlePlayNow() returned tool error: %+v", result)
	}
}

func TestHandlePlayNowRejectsBadUsername(t *testing.T) {
	s, _, _ := newTestServer(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "play_now",
			Arguments: map[string]interface{}{"username": "   "},
		},
	}
	result, err := s.handlePlayNow(context.Background(), request)
	if err != nil {
		t.Fatalf("handlePlayNow() error = %v", err)
	}
	if !result.IsError {
		t.Error("blank username accepted")
	}
}

func TestHandleJoinRoomRejectsBadCode(t *testing.T) {
	s, _, _ := newTestServer(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "join_room",
			Arguments: map[string]interface{}{
				"username":  "agent",
				"room_code": "nope",
			},
		},
	}
	result, err := s.handleJoinRoom(context.Background(), request)
	if err != nil {
		t.Fatalf("handleJoinRoom() error = %v", err)
	}
	if !result.IsError {
		t.Error("bad room code accepted")
	}
}

func TestHandleDrawStrokeRequiresBrush(t *testing.T) {
	s, _, _ := newTestServer(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "draw_stroke",
			Arguments: map[string]interface{}{
				"x1": 1.0, "y1": 1.0, "x2": 2.0, "y2": 2.0,
			},
		},
	}
	result, err := s.handleDrawStroke(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDrawStroke() error = %v", err)
	}
	if !result.IsError {
		t.Error("stroke accepted without the brush")
	}
}

func TestGameStateReflectsRound(t *testing.T) {
	s, lt, c := newTestServer(t)

	lt.push(t, protocol.MsgRegisterAck, protocol.RegisterAckPayload{
		PlayerID: 1, SessionToken: "tok", Username: "agent",
	})
	lt.push(t, protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomID: 1, RoomCode: "ROOM01",
		Players: []protocol.Player{{PlayerID: 1, Username: "agent"}},
	})
	lt.push(t, protocol.MsgGameStart, protocol.RoundStartPayload{
		Round: 1, TotalRounds: 3, WordMask: "_ _ _",
		Players: []protocol.Player{
			{PlayerID: 1, Username: "agent"},
			{PlayerID: 2, Username: "peer", IsDrawing: true},
		},
	})
	c.Tick()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_state",
			Arguments: map[string]interface{}{},
		},
	}
	result, err := s.handleGameState(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGameState() error = %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Phase: playing", "ROOM01", "Round: 1/3", "Word mask: _ _ _", "peer: 0 points [drawing]"} {
		if !strings.Contains(text, want) {
			t.Errorf("game_state output missing %q:\n%s", want, text)
		}
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want text", result.Content[0])
	}
	return text.Text
}
