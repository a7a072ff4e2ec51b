package client

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/game/canvas"
	"github.com/KazooBoye/Scribble/game/engine"
	"github.com/KazooBoye/Scribble/game/session"
	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/protocol"
	"github.com/KazooBoye/Scribble/transport"
)

// inboundQueueSize bounds the decoded-message queue between the delivery
// goroutine and Tick. At 60 ticks per second this only fills if the
// consumer stops ticking.
const inboundQueueSize = 256

// DefaultFallbackDelay is how long a failed reconnect stays on screen
// before the client gives up and returns to the landing phase.
const DefaultFallbackDelay = 2 * time.Second

// Options configures a Client.
type Options struct {
	Host string
	Port int

	// FallbackDelay overrides DefaultFallbackDelay when positive.
	FallbackDelay time.Duration

	// TokenStore, when non-nil, persists the session token across process
	// restarts.
	TokenStore *session.TokenStore
}

// Client is the protocol engine facade. See the package comment for the
// threading model.
type Client struct {
	mu sync.Mutex

	tr      transport.Transport
	router  *Router
	inbound chan protocol.Message

	session *session.Manager
	engine  *engine.Engine

	host          string
	port          int
	fallbackDelay time.Duration

	connected    bool
	reconnecting bool
	fallbackAt   time.Time // zero when no fallback is pending

	status string

	// Stroke input state for the local drawer.
	drawing      bool
	lastX, lastY float64
	colorIndex   int

	log zerolog.Logger
	now func() time.Time
}

// New wires a client around a transport. The transport must not be
// connected yet; New installs the delivery callback.
func New(tr transport.Transport, opts Options) *Client {
	fallback := opts.FallbackDelay
	if fallback <= 0 {
		fallback = DefaultFallbackDelay
	}

	var mgr *session.Manager
	if opts.TokenStore != nil {
		mgr = session.NewManagerWithStore(opts.TokenStore)
	} else {
		mgr = session.NewManager()
	}

	c := &Client{
		tr:            tr,
		router:        NewRouter(),
		inbound:       make(chan protocol.Message, inboundQueueSize),
		session:       mgr,
		engine:        engine.New(),
		host:          opts.Host,
		port:          opts.Port,
		fallbackDelay: fallback,
		status:        "Connecting...",
		log:           logger.New("client"),
		now:           time.Now,
	}

	c.registerHandlers()
	tr.SetReceiver(c.deliver)
	return c
}

// deliver runs on the transport's read goroutine: decode, enqueue, return.
// Game state is never touched here.
func (c *Client) deliver(raw []byte) {
	msg, ok := c.router.DecodeRaw(raw)
	if !ok {
		return
	}
	select {
	case c.inbound <- msg:
	default:
		c.log.Warn().Stringer("type", msg.Type).Msg("inbound queue full, dropping message")
	}
}

// Connect establishes the initial connection.
func (c *Client) Connect() error {
	err := c.tr.Connect(c.host, c.port)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.connected = false
		c.status = "Failed to connect to " + c.host
		return err
	}
	c.connected = true
	c.status = "Connected to " + c.host + "!"
	return nil
}

// Close tears down the transport.
func (c *Client) Close() error {
	return c.tr.Close()
}

// Tick drains the inbound queue and runs reconnect supervision. The
// consumer calls it once per frame; it never blocks on network I/O.
func (c *Client) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drainLocked()
	c.superviseLocked(c.now())
}

func (c *Client) drainLocked() {
	for {
		select {
		case msg := <-c.inbound:
			c.router.Dispatch(msg)
		default:
			return
		}
	}
}

// sendLocked encodes and sends fire-and-forget. A failed send marks the
// connection down; supervision reacts on the next tick.
func (c *Client) sendLocked(t protocol.MsgType, payload any) {
	raw, err := protocol.Encode(t, payload)
	if err != nil {
		c.log.Error().Stringer("type", t).Err(err).Msg("encode outbound message")
		return
	}
	if err := c.tr.Send(raw); err != nil {
		c.log.Warn().Stringer("type", t).Err(err).Msg("send failed, marking disconnected")
		c.connected = false
	}
}

// decode unmarshals a payload, dropping the message on failure.
func (c *Client) decode(m protocol.Message, v any) bool {
	if err := protocol.DecodeInto(m, v); err != nil {
		c.router.noteDecodeError(err)
		return false
	}
	return true
}

// Status returns the current human-readable status line.
func (c *Client) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Router exposes the message router, mainly for dispatch statistics.
func (c *Client) Router() *Router { return c.router }

// Snapshot is a consistent copy of everything the render layer needs for
// one frame.
type Snapshot struct {
	Phase        engine.Phase
	Status       string
	Connected    bool
	Reconnecting bool

	RoomCode string
	Players  []protocol.Player
	Chat     []string

	Round       int
	TotalRounds int
	WordMask    string
	WordToDraw  string
	Timer       int
	Countdown   int

	IsDrawer      bool
	CanvasEnabled bool
	ColorIndex    int
	Segments      []canvas.Segment
}

// Snapshot captures the current client state under the mutex.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Phase:         c.engine.Phase(),
		Status:        c.status,
		Connected:     c.connected,
		Reconnecting:  c.reconnecting,
		RoomCode:      c.session.RoomCode(),
		Players:       c.engine.Players(),
		Chat:          c.engine.Chat(),
		Round:         c.engine.Round(),
		TotalRounds:   c.engine.TotalRounds(),
		WordMask:      c.engine.WordMask(),
		WordToDraw:    c.engine.WordToDraw(),
		Timer:         c.engine.Timer(),
		Countdown:     c.engine.Countdown(),
		IsDrawer:      c.engine.IsDrawer(),
		CanvasEnabled: c.engine.CanvasEnabled(),
		ColorIndex:    c.colorIndex,
		Segments:      c.engine.Canvas().Segments(),
	}
}
