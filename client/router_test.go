package client

import (
	"sync"
	"testing"

	"github.com/KazooBoye/Scribble/protocol"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()

	var got protocol.MsgType
	r.Register(protocol.MsgChat, func(m protocol.Message) {
		got = m.Type
	})

	raw, err := protocol.Encode(protocol.MsgChat, protocol.ChatPayload{Message: "hi"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	r.DispatchRaw(raw)

	if got != protocol.MsgChat {
		t.Errorf("handler saw type %v, want %v", got, protocol.MsgChat)
	}
}

func TestRouterLastRegistrationWins(t *testing.T) {
	r := NewRouter()

	first, second := 0, 0
	r.Register(protocol.MsgPing, func(protocol.Message) { first++ })
	r.Register(protocol.MsgPing, func(protocol.Message) { second++ })

	r.Dispatch(protocol.Message{Type: protocol.MsgPing})

	if first != 0 {
		t.Errorf("replaced handler ran %d times, want 0", first)
	}
	if second != 1 {
		t.Errorf("current handler ran %d times, want 1", second)
	}
}

func TestRouterUnknownTypeIgnored(t *testing.T) {
	r := NewRouter()
	r.Register(protocol.MsgChat, func(protocol.Message) {
		t.Error("chat handler ran for an unrelated type")
	})

	r.Dispatch(protocol.Message{Type: protocol.MsgType(999)})

	if got := r.UnknownDrops(); got != 1 {
		t.Errorf("UnknownDrops() = %d, want 1", got)
	}
}

func TestRouterMalformedFrameDropped(t *testing.T) {
	r := NewRouter()

	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{"data":{}}`),
		[]byte(`{"type":"chat","data":{}}`),
		[]byte(``),
	}
	for _, raw := range cases {
		if _, ok := r.DecodeRaw(raw); ok {
			t.Errorf("DecodeRaw(%q) accepted a malformed frame", raw)
		}
	}
	if got := r.DecodeErrors(); got != len(cases) {
		t.Errorf("DecodeErrors() = %d, want %d", got, len(cases))
	}
}

func TestRouterConcurrentRegisterAndDispatch(t *testing.T) {
	r := NewRouter()
	raw, err := protocol.Encode(protocol.MsgPing, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register(protocol.MsgPing, func(protocol.Message) {})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.DispatchRaw(raw)
			}
		}()
	}
	wg.Wait()
}
