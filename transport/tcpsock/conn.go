package tcpsock

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/transport"
)

const (
	dialTimeout = 5 * time.Second

	// maxFrameSize guards against a corrupt length prefix. The server's
	// own buffer is 4 KiB; anything near this limit is garbage.
	maxFrameSize = 64 * 1024
)

var (
	ErrAlreadyConnected = errors.New("transport already connected")
	ErrNotConnected     = errors.New("transport not connected")
)

// Conn is a length-prefixed TCP connection to the game server.
// It satisfies transport.Transport.
type Conn struct {
	mu        sync.Mutex
	conn      net.Conn
	connected bool
	receiver  transport.Receiver
	log       zerolog.Logger
}

// New returns an unconnected TCP transport.
func New() *Conn {
	return &Conn{log: logger.New("transport")}
}

// SetReceiver installs the delivery callback. Must be called before Connect.
func (c *Conn) SetReceiver(fn transport.Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receiver = fn
}

// Connect dials the server and starts the read goroutine. Safe to call
// again after a connection loss.
func (c *Conn) Connect(host string, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return ErrAlreadyConnected
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	connID := uuid.NewString()
	c.conn = conn
	c.connected = true
	c.log = logger.New("transport").With().Str("conn_id", connID).Logger()
	c.log.Info().Str("addr", addr).Msg("connected")

	go c.readLoop(conn, c.log)
	return nil
}

// Send writes one frame: length prefix then payload.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}

	frame := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[4:], data)

	if _, err := c.conn.Write(frame); err != nil {
		c.teardownLocked()
		return fmt.Errorf("tcp send: %w", err)
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
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

// readLoop reassembles frames and delivers complete payloads. It owns the
// read side of conn; any read error ends the loop and marks the transport
// disconnected. The logger is passed in because a reconnect rewrites c.log
// while an old loop may still be draining.
func (c *Conn) readLoop(conn net.Conn, log zerolog.Logger) {
	defer func() {
		c.mu.Lock()
		// A newer connection may already have replaced this one.
		if c.conn == conn {
			c.teardownLocked()
		}
		c.mu.Unlock()
	}()

	header := make([]byte, 4)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			if !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("read frame header")
			}
			return
		}

		size := binary.BigEndian.Uint32(header)
		if size == 0 || size > maxFrameSize {
			log.Error().Uint32("size", size).Msg("bad frame length, dropping connection")
			return
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(conn, payload); err != nil {
			log.Warn().Err(err).Msg("read frame payload")
			return
		}

		c.mu.Lock()
		receiver := c.receiver
		c.mu.Unlock()
		if receiver != nil {
			receiver(payload)
		}
	}
}
