package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		msgType MsgType
		payload any
	}{
		{"register", MsgRegister, RegisterPayload{Username: "Alice"}},
		{"join by code", MsgJoinRoom, JoinRoomPayload{RoomCode: "AB12CD"}},
		{"quick match", MsgJoinRoom, JoinRoomPayload{RoomID: 0}},
		{"pong empty", MsgPong, nil},
		{"stroke", MsgStroke, StrokePayload{X1: 1.5, Y1: 2, X2: 3, Y2: 4.25, Color: 7, Thickness: 5}},
		{"reconnect", MsgReconnectReq, ReconnectRequestPayload{SessionToken: "tok1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.msgType, tt.payload)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			msg, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if msg.Type != tt.msgType {
				t.Errorf("Expected type %v, got %v", tt.msgType, msg.Type)
			}

			// Re-encoding the decoded message must reproduce the envelope.
			again, err := Decode(raw)
			if err != nil {
				t.Fatalf("Second decode failed: %v", err)
			}
			if !reflect.DeepEqual(msg, again) {
				t.Errorf("Decode is not deterministic: %+v vs %+v", msg, again)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "this is not json"},
		{"missing type", `{"data":{}}`},
		{"type wrong kind", `{"type":"register","data":{}}`},
		{"truncated", `{"type":2,"data":{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			if err == nil {
				t.Fatal("Expected error for malformed input")
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Errorf("Expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestDecodeUnknownTypePassesThrough(t *testing.T) {
	msg, err := Decode([]byte(`{"type":999,"data":{"future":"field"}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if msg.Type != MsgType(999) {
		t.Errorf("Expected type 999, got %v", msg.Type)
	}
}

func TestDecodeMissingDataDefaultsToEmptyObject(t *testing.T) {
	msg, err := Decode([]byte(`{"type":1}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(msg.Data) != "{}" {
		t.Errorf("Expected empty object payload, got %q", msg.Data)
	}
}

func TestDecodeIntoFieldValidation(t *testing.T) {
	msg, err := Decode([]byte(`{"type":3,"data":{"player_id":1,"session_token":"tok1"}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	var ack RegisterAckPayload
	if err := DecodeInto(msg, &ack); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if ack.PlayerID != 1 || ack.SessionToken != "tok1" {
		t.Errorf("Unexpected payload: %+v", ack)
	}
}

func TestDecodeIntoTypeMismatch(t *testing.T) {
	msg, err := Decode([]byte(`{"type":3,"data":{"player_id":"not-a-number"}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	var ack RegisterAckPayload
	err = DecodeInto(msg, &ack)
	if err == nil {
		t.Fatal("Expected error for mismatched field type")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Expected *DecodeError, got %T", err)
	}
	if decErr.Type != MsgRegisterAck {
		t.Errorf("Expected type tag %v on error, got %v", MsgRegisterAck, decErr.Type)
	}
}

func TestPlayerOnlineDefaultsTrue(t *testing.T) {
	msg, err := Decode([]byte(`{"type":7,"data":{"room_id":5,"room_code":"AB12CD","players":[{"player_id":1,"username":"Alice","score":0,"is_drawing":false},{"player_id":2,"username":"Bob","online":false}]}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	var joined RoomJoinedPayload
	if err := DecodeInto(msg, &joined); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if len(joined.Players) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(joined.Players))
	}
	if !joined.Players[0].Online {
		t.Error("Omitted online field should default to true")
	}
	if joined.Players[1].Online {
		t.Error("Explicit online=false should be preserved")
	}
}

func TestStrokeThicknessDefault(t *testing.T) {
	msg, err := Decode([]byte(`{"type":100,"data":{"x1":0,"y1":0,"x2":10,"y2":10,"color":2}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	var stroke StrokePayload
	if err := DecodeInto(msg, &stroke); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if stroke.Thickness != 3 {
		t.Errorf("Expected default thickness 3, got %d", stroke.Thickness)
	}
}

func TestMsgTypeString(t *testing.T) {
	if got := MsgStroke.String(); got != "stroke" {
		t.Errorf("Expected \"stroke\", got %q", got)
	}
	if got := MsgType(999).String(); got != "type(999)" {
		t.Errorf("Expected \"type(999)\", got %q", got)
	}
}
