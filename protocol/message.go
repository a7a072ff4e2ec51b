package protocol

import (
	"encoding/json"
	"fmt"
)

// Message is a decoded wire envelope. Data holds the raw payload object;
// callers decode it into the payload struct for the type via DecodeInto.
// A Message is immutable once decoded.
type Message struct {
	Type MsgType         `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeError reports a malformed inbound payload. The policy for it is
// drop-and-log: the router records the error and continues, it never
// propagates past dispatch.
type DecodeError struct {
	Type MsgType // zero when the envelope itself was unreadable
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode marshals a payload into a wire envelope of the given type.
// A nil payload encodes as an empty object, the form the server expects
// for bodyless messages like Pong and CreateRoom.
func Encode(t MsgType, payload any) ([]byte, error) {
	data := json.RawMessage("{}")
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		data = raw
	}
	return json.Marshal(Message{Type: t, Data: data})
}

// Decode parses a wire envelope. The type tag is required; a missing tag or
// unparseable JSON yields a *DecodeError. The payload is kept raw, unknown
// types pass through untouched so the router can ignore them.
func Decode(raw []byte) (Message, error) {
	var env struct {
		Type *int            `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, &DecodeError{Err: err}
	}
	if env.Type == nil {
		return Message{}, &DecodeError{Err: fmt.Errorf("missing type tag")}
	}
	data := env.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return Message{Type: MsgType(*env.Type), Data: data}, nil
}

// DecodeInto unmarshals a message payload into the typed struct for its
// message type. Failures come back as *DecodeError carrying the type tag.
func DecodeInto(m Message, v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return &DecodeError{Type: m.Type, Err: err}
	}
	return nil
}
