// Package client is the protocol engine that drives a Scribble game
// session over a transport.Transport. It wires the message router, the
// session manager, the game engine, stroke synchronization, and the
// reconnect supervisor into one facade the rendering layer talks to.
//
// Threading model:
//
// There are exactly two paths into the client. The transport's delivery
// goroutine decodes each inbound frame and enqueues the decoded message on
// a buffered queue; it never touches game state. The consumer's main loop
// calls Tick once per frame, which drains the queue, applies each message
// through the router, and runs reconnect supervision, all under the single
// client mutex. User actions (PlayNow, SendChat, pointer events, ...) take
// the same mutex. Outbound sends are fire-and-forget: a send failure marks
// the connection down and is picked up by the next Tick.
//
// Rendering is pull-based: the render layer calls Snapshot each frame and
// draws from the copy, never holding client state across frames.
package client
