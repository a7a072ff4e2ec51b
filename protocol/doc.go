// Package protocol defines the wire protocol spoken between the Scribble
// client and server.
//
// Every message is a JSON envelope:
//
//	{"type": <int>, "data": {...}}
//
// The type tag is a closed enumeration (MsgType) shared with the server.
// Control messages occupy 0-31 and travel over the reliable, ordered
// channel. Stroke messages occupy 100-102 and are designed for a
// loss-tolerant channel: dropping one costs a visual artifact, nothing more.
//
// The package provides the envelope codec (Encode/Decode), one typed payload
// struct per message type, and DecodeInto for validating a payload against
// its struct. Malformed input is reported as *DecodeError; callers drop the
// message and keep going, a bad payload must never take the client down.
package protocol
