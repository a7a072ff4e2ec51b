package client

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/protocol"
)

// Handler consumes one decoded message. Handlers registered with a Router
// are invoked from Client.Tick under the client mutex and may mutate
// shared client state freely.
type Handler func(protocol.Message)

// Router maps message types to handlers. Registration and lookup share one
// lock because handlers can be re-bound while the delivery goroutine is
// decoding; the last registration for a type wins.
type Router struct {
	mu       sync.RWMutex
	handlers map[protocol.MsgType]Handler

	decodeErrors int
	unknownCount int

	log zerolog.Logger
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[protocol.MsgType]Handler),
		log:      logger.New("router"),
	}
}

// Register binds a handler to a message type, replacing any previous
// binding.
func (r *Router) Register(t protocol.MsgType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

// DecodeRaw decodes a wire frame. Malformed frames are dropped: logged,
// counted, never propagated.
func (r *Router) DecodeRaw(raw []byte) (protocol.Message, bool) {
	msg, err := protocol.Decode(raw)
	if err != nil {
		r.noteDecodeError(err)
		return protocol.Message{}, false
	}
	return msg, true
}

// Dispatch routes a decoded message to its handler. Messages with no
// registered handler are silently ignored; unknown future types must not
// break the client.
func (r *Router) Dispatch(m protocol.Message) {
	r.mu.RLock()
	h, ok := r.handlers[m.Type]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		r.unknownCount++
		r.mu.Unlock()
		r.log.Debug().Stringer("type", m.Type).Msg("no handler, message ignored")
		return
	}
	h(m)
}

// DispatchRaw decodes and routes one wire frame.
func (r *Router) DispatchRaw(raw []byte) {
	if msg, ok := r.DecodeRaw(raw); ok {
		r.Dispatch(msg)
	}
}

func (r *Router) noteDecodeError(err error) {
	r.mu.Lock()
	r.decodeErrors++
	r.mu.Unlock()

	var decErr *protocol.DecodeError
	if errors.As(err, &decErr) {
		r.log.Warn().Stringer("type", decErr.Type).Err(decErr.Err).Msg("dropping malformed message")
	} else {
		r.log.Warn().Err(err).Msg("dropping malformed message")
	}
}

// DecodeErrors returns how many inbound messages were dropped as
// malformed.
func (r *Router) DecodeErrors() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.decodeErrors
}

// UnknownDrops returns how many messages arrived with no handler bound.
func (r *Router) UnknownDrops() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unknownCount
}
