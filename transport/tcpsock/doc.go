// Package tcpsock implements the TCP transport for the Scribble server's
// native protocol: each frame is a 4-byte big-endian length prefix followed
// by the JSON envelope. A dedicated read goroutine reassembles frames and
// hands each complete payload to the delivery callback.
package tcpsock
