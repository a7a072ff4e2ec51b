// Package engine implements the client-side game state machine for the
// Scribble drawing-and-guessing game.
//
// The engine package implements:
//   - The four-phase lifecycle (Landing, Waiting, Playing, Ended) with an
//     explicit transition table
//   - Roster tracking in server-sent order with drawer derivation
//   - Round bookkeeping: counters, word mask, and the secret word when the
//     local player draws
//   - Score application: deltas from correct guesses, absolute overwrites
//     from score updates
//   - The capacity-bounded chat log
//   - Ownership of the shared canvas surface
//
// All state is server-authoritative: the engine never predicts, it only
// folds inbound payloads into local state. The one exception is the local
// echo of the player's own strokes, which the client applies directly.
//
// Concurrency:
//
// The engine is not internally locked. The client serializes every call
// under its single state mutex, both message application from the inbound
// queue and reads taken by the render snapshot.
package engine
