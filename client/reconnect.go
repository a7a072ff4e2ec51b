package client

import (
	"time"

	"github.com/KazooBoye/Scribble/game/engine"
	"github.com/KazooBoye/Scribble/protocol"
)

// superviseLocked runs once per tick and owns the reconnect lifecycle:
// it notices a lost connection, launches at most one recovery attempt
// per disconnect, and falls back to the landing phase a short while
// after an attempt fails so the failure status stays readable.
//
// The fallback deadline is armed only when re-establishing the
// transport fails. An attempt that connects and sends its request waits
// for the server's verdict indefinitely; there is no handshake timeout.
func (c *Client) superviseLocked(now time.Time) {
	if !c.fallbackAt.IsZero() {
		if now.Before(c.fallbackAt) {
			return
		}
		c.fallbackAt = time.Time{}
		c.engine.ResetToLanding()
		c.status = "Connection lost"
		c.log.Warn().Msg("giving up on this connection, returning to landing")
		return
	}

	if c.connected && !c.tr.IsConnected() {
		c.connected = false
		c.log.Warn().Msg("connection lost")
		if c.reconnecting {
			// The attempt's own connection died before a verdict arrived.
			c.reconnecting = false
			c.fallbackAt = now.Add(c.fallbackDelay)
			c.status = "Failed to reconnect"
			return
		}
		c.status = "Connection lost"
	}

	if c.connected || c.reconnecting {
		return
	}
	if c.session.Token() == "" {
		// Nothing to resume; the user starts over from the landing screen.
		return
	}
	if phase := c.engine.Phase(); phase != engine.PhaseWaiting && phase != engine.PhasePlaying {
		return
	}

	c.reconnecting = true
	c.status = "Connection lost, reconnecting..."
	go c.attemptReconnect(c.session.Token())
}

// attemptReconnect dials and sends exactly one ReconnectRequest. It runs
// off the tick goroutine because Connect blocks. The verdict arrives as a
// normal inbound message; a dial or send failure arms the fallback
// deadline instead of retrying.
func (c *Client) attemptReconnect(token string) {
	if err := c.tr.Connect(c.host, c.port); err != nil {
		c.log.Warn().Err(err).Msg("reconnect dial failed")
		c.failAttempt()
		return
	}

	raw, err := protocol.Encode(protocol.MsgReconnectReq, protocol.ReconnectRequestPayload{
		SessionToken: token,
	})
	if err != nil {
		c.log.Error().Err(err).Msg("encode reconnect request")
		c.failAttempt()
		return
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	if err := c.tr.Send(raw); err != nil {
		c.log.Warn().Err(err).Msg("send reconnect request")
		c.failAttempt()
	}
}

func (c *Client) failAttempt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.reconnecting = false
	c.fallbackAt = c.now().Add(c.fallbackDelay)
	c.status = "Failed to reconnect"
}
