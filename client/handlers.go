package client

import (
	"fmt"
	"time"

	"github.com/KazooBoye/Scribble/game/canvas"
	"github.com/KazooBoye/Scribble/protocol"
)

// registerHandlers binds every server message the client understands.
// Handlers run from Tick under the client mutex; they use the *Locked
// helpers directly.
func (c *Client) registerHandlers() {
	c.router.Register(protocol.MsgPing, c.handlePing)
	c.router.Register(protocol.MsgRegisterAck, c.handleRegisterAck)
	c.router.Register(protocol.MsgRoomCreated, c.handleRoomCreated)
	c.router.Register(protocol.MsgRoomJoined, c.handleRoomJoined)
	c.router.Register(protocol.MsgRoomFull, c.handleRoomFull)
	c.router.Register(protocol.MsgRoomNotFound, c.handleRoomNotFound)
	c.router.Register(protocol.MsgGameStart, c.handleGameStart)
	c.router.Register(protocol.MsgRoundStart, c.handleRoundStart)
	c.router.Register(protocol.MsgYourTurn, c.handleYourTurn)
	c.router.Register(protocol.MsgWordToDraw, c.handleWordToDraw)
	c.router.Register(protocol.MsgChat, c.handleChat)
	c.router.Register(protocol.MsgChatBroadcast, c.handleChat)
	c.router.Register(protocol.MsgGuessCorrect, c.handleGuessCorrect)
	c.router.Register(protocol.MsgGuessWrong, c.handleGuessWrong)
	c.router.Register(protocol.MsgTimerUpdate, c.handleTimerUpdate)
	c.router.Register(protocol.MsgCountdownUpdate, c.handleCountdownUpdate)
	c.router.Register(protocol.MsgRoundEnd, c.handleRoundEnd)
	c.router.Register(protocol.MsgGameEnd, c.handleGameEnd)
	c.router.Register(protocol.MsgPlayerJoin, c.handlePlayerJoin)
	c.router.Register(protocol.MsgPlayerLeave, c.handlePlayerLeave)
	c.router.Register(protocol.MsgScoreUpdate, c.handleScoreUpdate)
	c.router.Register(protocol.MsgReconnectOK, c.handleReconnectOK)
	c.router.Register(protocol.MsgReconnectFail, c.handleReconnectFail)
	c.router.Register(protocol.MsgError, c.handleError)
	c.router.Register(protocol.MsgStroke, c.handleStroke)
	c.router.Register(protocol.MsgClearCanvas, c.handleClearCanvas)
	c.router.Register(protocol.MsgUndo, c.handleUndo)
}

// handlePing answers the server's heartbeat. The client never pings on
// its own.
func (c *Client) handlePing(protocol.Message) {
	c.sendLocked(protocol.MsgPong, nil)
}

func (c *Client) handleRegisterAck(m protocol.Message) {
	var p protocol.RegisterAckPayload
	if !c.decode(m, &p) {
		return
	}
	c.session.ApplyRegisterAck(p)
}

func (c *Client) handleRoomCreated(m protocol.Message) {
	var p protocol.RoomCreatedPayload
	if !c.decode(m, &p) {
		return
	}
	c.session.SetRoom(p.RoomID, p.RoomCode)
	c.engine.ApplyRoomCreated()
	c.status = "Room created: " + p.RoomCode
}

func (c *Client) handleRoomJoined(m protocol.Message) {
	var p protocol.RoomJoinedPayload
	if !c.decode(m, &p) {
		return
	}
	c.session.SetRoom(p.RoomID, p.RoomCode)
	c.engine.ApplyRoomJoined(p.Players)
	c.status = "Waiting for players..."
}

func (c *Client) handleRoomFull(protocol.Message) {
	c.session.ClearRoom()
	c.engine.AbortToLanding()
	c.engine.AppendSystem("Room is full, try another one")
	c.status = "Room is full!"
}

func (c *Client) handleRoomNotFound(protocol.Message) {
	c.session.ClearRoom()
	c.engine.AbortToLanding()
	c.engine.AppendSystem("Room not found, check the code")
	c.status = "Room not found!"
}

func (c *Client) handleGameStart(m protocol.Message) {
	var p protocol.RoundStartPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.StartRound(p, c.session.SelfID(), true)
}

func (c *Client) handleRoundStart(m protocol.Message) {
	var p protocol.RoundStartPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.StartRound(p, c.session.SelfID(), false)
}

func (c *Client) handleYourTurn(protocol.Message) {
	c.engine.GrantTurn()
}

func (c *Client) handleWordToDraw(m protocol.Message) {
	var p protocol.WordToDrawPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.SetWordToDraw(p.Word)
}

func (c *Client) handleChat(m protocol.Message) {
	var p protocol.ChatPayload
	if !c.decode(m, &p) {
		return
	}
	username := p.Username
	if username == "" {
		username = "Unknown"
	}
	c.engine.AppendChat(username, p.Message)
}

func (c *Client) handleGuessCorrect(m protocol.Message) {
	var p protocol.GuessCorrectPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.AppendSystem(fmt.Sprintf("%s guessed correctly! +%d", p.Username, p.Score))
	c.engine.ApplyGuessCorrect(p.PlayerID, p.Score)
}

// handleGuessWrong exists so wrong guesses are not logged as unknown
// messages. The server broadcasts them as chat separately.
func (c *Client) handleGuessWrong(protocol.Message) {}

func (c *Client) handleTimerUpdate(m protocol.Message) {
	var p protocol.TimerUpdatePayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.SetTimer(p.TimeRemaining)
}

func (c *Client) handleCountdownUpdate(m protocol.Message) {
	var p protocol.CountdownUpdatePayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.SetCountdown(p.Countdown)
}

func (c *Client) handleRoundEnd(m protocol.Message) {
	var p protocol.RoundEndPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.EndRound(p.Word, p.Players)
}

func (c *Client) handleGameEnd(m protocol.Message) {
	var p protocol.GameEndPayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.EndGame(p.Players)
}

func (c *Client) handlePlayerJoin(m protocol.Message) {
	var p protocol.PlayerJoinPayload
	if !c.decode(m, &p) {
		return
	}
	if p.Player != nil {
		c.engine.ApplyPlayerJoin(*p.Player)
	}
}

func (c *Client) handlePlayerLeave(m protocol.Message) {
	var p protocol.PlayerLeavePayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.ApplyPlayerLeave(p.PlayerID, p.Username)
}

func (c *Client) handleScoreUpdate(m protocol.Message) {
	var p protocol.ScoreUpdatePayload
	if !c.decode(m, &p) {
		return
	}
	c.engine.ApplyScoreUpdate(p.PlayerID, p.Score)
}

func (c *Client) handleReconnectOK(m protocol.Message) {
	var p protocol.ReconnectOKPayload
	if !c.decode(m, &p) {
		return
	}

	c.connected = true
	c.reconnecting = false
	c.fallbackAt = time.Time{}
	c.status = "Reconnected successfully!"

	if p.RoomID != 0 {
		c.session.SetRoom(p.RoomID, p.RoomCode)
		c.engine.ApplyRoomJoined(p.Players)
	} else if p.Players != nil {
		c.engine.SetPlayers(p.Players)
	}
	if p.State != "" {
		c.engine.RestorePhase(p.State)
	}
	c.log.Info().Int("room_id", p.RoomID).Str("state", p.State).Msg("session restored")
}

func (c *Client) handleReconnectFail(m protocol.Message) {
	var p protocol.ReconnectFailPayload
	if !c.decode(m, &p) {
		return
	}

	c.reconnecting = false
	c.fallbackAt = time.Time{}
	c.session.Invalidate()
	c.engine.ResetToLanding()
	c.status = "Reconnection failed: " + p.Error
	c.log.Warn().Str("error", p.Error).Msg("reconnect rejected, session invalidated")
}

func (c *Client) handleError(m protocol.Message) {
	var p protocol.ErrorPayload
	if !c.decode(m, &p) {
		return
	}
	c.status = "Error: " + p.Message
}

func (c *Client) handleStroke(m protocol.Message) {
	var p protocol.StrokePayload
	if !c.decode(m, &p) {
		return
	}
	// The server excludes the sender from stroke broadcasts; everything
	// arriving here is someone else's drawing.
	c.engine.Canvas().Apply(canvas.Segment{
		X1: p.X1, Y1: p.Y1,
		X2: p.X2, Y2: p.Y2,
		Color:     p.Color,
		Thickness: p.Thickness,
	})
}

func (c *Client) handleClearCanvas(protocol.Message) {
	c.engine.Canvas().Clear()
}

// handleUndo is a reserved slot: the type exists in the protocol but has
// no defined behavior yet on either side.
func (c *Client) handleUndo(protocol.Message) {}
