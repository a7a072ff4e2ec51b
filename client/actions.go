package client

import (
	"errors"

	"github.com/KazooBoye/Scribble/protocol"
	"github.com/KazooBoye/Scribble/validate"
)

var (
	// ErrNotConnected is returned by actions that need a live connection.
	ErrNotConnected = errors.New("client: not connected")

	// ErrNotInRoom is returned by room-scoped actions used outside a room.
	ErrNotInRoom = errors.New("client: not in a room")
)

// PlayNow registers the player and asks the server for automatic
// matchmaking. The server answers with RoomJoined or RoomCreated once a
// seat is found.
func (c *Client) PlayNow(username string) error {
	username, err := validate.Username(username)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}

	c.session.SetUsername(username)
	c.sendLocked(protocol.MsgRegister, protocol.RegisterPayload{Username: username})
	// Room id zero asks the server to pick or create a public room.
	c.sendLocked(protocol.MsgJoinRoom, protocol.JoinRoomPayload{})
	c.status = "Finding a game..."
	return nil
}

// CreateRoom registers the player and requests a private room. The room
// code arrives in the RoomCreated reply.
func (c *Client) CreateRoom(username string) error {
	username, err := validate.Username(username)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}

	c.session.SetUsername(username)
	c.sendLocked(protocol.MsgRegister, protocol.RegisterPayload{Username: username})
	c.sendLocked(protocol.MsgCreateRoom, nil)
	c.status = "Creating room..."
	return nil
}

// JoinRoom registers the player and joins a private room by code. Codes
// are case-insensitive; the canonical uppercase form goes on the wire.
func (c *Client) JoinRoom(username, code string) error {
	username, err := validate.Username(username)
	if err != nil {
		return err
	}
	code, err = validate.RoomCode(code)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}

	c.session.SetUsername(username)
	c.sendLocked(protocol.MsgRegister, protocol.RegisterPayload{Username: username})
	c.sendLocked(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code})
	c.status = "Joining room " + code + "..."
	return nil
}

// SendChat sends a chat line, which doubles as a guess while a round is
// running. The drawer's chat is suppressed locally so the word cannot
// leak.
func (c *Client) SendChat(text string) error {
	if text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}
	if !c.session.InRoom() {
		return ErrNotInRoom
	}
	if c.engine.IsDrawer() {
		return nil
	}

	c.sendLocked(protocol.MsgChat, protocol.ChatPayload{Message: text})
	return nil
}

// ClearCanvas wipes the shared canvas. Only the current drawer may clear.
func (c *Client) ClearCanvas() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}
	if !c.engine.IsDrawer() || !c.engine.CanvasEnabled() {
		return nil
	}

	c.engine.Canvas().Clear()
	c.sendLocked(protocol.MsgClearCanvas, nil)
	return nil
}

// ReturnHome leaves the post-game screen and resets everything local to
// a fresh landing state. The server learns of the departure through its
// own timeout, not from us.
func (c *Client) ReturnHome() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.ClearRoom()
	c.engine.ResetToLanding()
	c.status = "Welcome back!"
}

// Resume attempts to restore a previous session from the token store.
// It returns session.ErrNotRegistered when there is nothing to resume.
func (c *Client) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Restore(); err != nil {
		return err
	}
	if !c.connected {
		return ErrNotConnected
	}

	c.reconnecting = true
	c.status = "Resuming session..."
	c.sendLocked(protocol.MsgReconnectReq, protocol.ReconnectRequestPayload{
		SessionToken: c.session.Token(),
	})
	return nil
}
