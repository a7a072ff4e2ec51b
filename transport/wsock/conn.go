package wsock

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/transport"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer. The server
	// pings inside this window.
	readWait = 60 * time.Second

	// Maximum inbound message size.
	maxMessageSize = 64 * 1024

	dialTimeout = 5 * time.Second
)

var (
	ErrAlreadyConnected = errors.New("transport already connected")
	ErrNotConnected     = errors.New("transport not connected")
)

// Conn is a WebSocket connection to the game server. It satisfies
// transport.Transport.
type Conn struct {
	path string

	mu        sync.Mutex
	ws        *websocket.Conn
	connected bool
	receiver  transport.Receiver
	log       zerolog.Logger
}

// New returns an unconnected WebSocket transport that will dial the given
// URL path, e.g. "/ws".
func New(path string) *Conn {
	return &Conn{path: path, log: logger.New("transport")}
}

// SetReceiver installs the delivery callback. Must be called before Connect.
func (c *Conn) SetReceiver(fn transport.Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receiver = fn
}

// Connect dials the server and starts the read pump.
func (c *Conn) Connect(host string, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return ErrAlreadyConnected
	}

	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		Path:   c.path,
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	ws, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}

	connID := uuid.NewString()
	c.ws = ws
	c.connected = true
	c.log = logger.New("transport").With().Str("conn_id", connID).Logger()
	c.log.Info().Str("url", u.String()).Msg("connected")

	go c.readPump(ws, c.log)
	return nil
}

// Send writes one text message.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		c.teardownLocked()
		return fmt.Errorf("websocket send: %w", err)
	}
	return nil
}

// IsConnected reports whether the connection is up.
func (c *Conn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears the connection down.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	return nil
}

func (c *Conn) teardownLocked() {
	if c.ws != nil {
		c.ws.Close()
		c.ws = nil
	}
	c.connected = false
}

// readPump delivers inbound messages until the connection dies, then marks
// the transport disconnected. The logger is passed in because a reconnect
// rewrites c.log while an old pump may still be draining.
func (c *Conn) readPump(ws *websocket.Conn, log zerolog.Logger) {
	defer func() {
		c.mu.Lock()
		if c.ws == ws {
			c.teardownLocked()
		}
		c.mu.Unlock()
	}()

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPingHandler(func(appData string) error {
		ws.SetReadDeadline(time.Now().Add(readWait))
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		return ws.WriteMessage(websocket.PongMessage, []byte(appData))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read")
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(readWait))

		c.mu.Lock()
		receiver := c.receiver
		c.mu.Unlock()
		if receiver != nil {
			receiver(data)
		}
	}
}
