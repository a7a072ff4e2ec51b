// Package wsock implements the WebSocket transport used when the server is
// reached through its web front end. Each text message carries one JSON
// envelope; WebSocket framing replaces the raw TCP length prefix. The read
// pump mirrors the server's gorilla conventions: read limit, read deadline
// refreshed by control pongs, and write deadlines on every send.
package wsock
