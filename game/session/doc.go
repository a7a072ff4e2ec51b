// Package session owns the client's identity with the game server: player
// id, username, the opaque session token issued at registration, and the
// room currently joined.
//
// Token lifecycle:
//
// No token is valid before a RegisterAck is applied. Once set, the token
// survives every round and room transition and is cleared in exactly one
// place: a failed reconnect. Anything that needs identity checks
// Registered() first and is rejected locally until the ack arrives.
//
// The optional TokenStore persists identity to disk so a restarted client
// can resume its session while the server still holds it (the server keeps
// disconnected sessions for five minutes).
//
// Like the engine, the manager carries no internal lock; the client
// serializes all access under its state mutex.
package session
