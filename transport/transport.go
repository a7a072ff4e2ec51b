// Package transport defines the connection contract the protocol engine
// drives. The engine treats the connection as a black box: it connects,
// sends encoded frames, and receives whole inbound frames through a
// delivery callback invoked once per message from the transport's read
// goroutine. Framing, socket I/O, and connection establishment live
// entirely behind this interface.
package transport

// Receiver is invoked once per received message with the complete frame
// payload. It runs on the transport's read goroutine, concurrent with the
// consumer's main loop.
type Receiver func(data []byte)

// Transport is a persistent client connection to the game server.
//
// Implementations must deliver reliable-channel messages in arrival order
// and must flip IsConnected to false as soon as the connection is lost, so
// the reconnect supervisor can notice without an extra probe.
type Transport interface {
	// Connect establishes the connection. It may be called again after a
	// connection loss; calling it while connected is an error.
	Connect(host string, port int) error

	// Send writes one message frame. It is safe for concurrent use and
	// never blocks on the consumer's main loop beyond the socket write.
	Send(data []byte) error

	// IsConnected reports whether the connection is currently up.
	IsConnected() bool

	// Close tears the connection down. Closing a closed transport is a
	// no-op.
	Close() error

	// SetReceiver installs the delivery callback. Must be called before
	// Connect.
	SetReceiver(fn Receiver)
}
