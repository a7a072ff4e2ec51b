package wsock

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// startTestServer upgrades one connection and hands it to the test.
func startTestServer(t *testing.T) (host string, port int, conns chan *websocket.Conn) {
	t.Helper()

	conns = make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- ws
	}))
	t.Cleanup(srv.Close)

	hostStr, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("Failed to split addr: %v", err)
	}
	p, _ := strconv.Atoi(portStr)
	return hostStr, p, conns
}

func TestConnectSendReceive(t *testing.T) {
	host, port, conns := startTestServer(t)

	received := make(chan []byte, 4)
	c := New("/")
	c.SetReceiver(func(data []byte) { received <- data })

	if err := c.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	if !c.IsConnected() {
		t.Error("Expected connected after Connect")
	}

	server := <-conns
	defer server.Close()

	if err := c.Send([]byte(`{"type":2,"data":{"username":"Alice"}}`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	server.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := server.ReadMessage()
	if err != nil {
		t.Fatalf("Server read failed: %v", err)
	}
	if string(got) != `{"type":2,"data":{"username":"Alice"}}` {
		t.Errorf("Unexpected message: %s", got)
	}

	if err := server.WriteMessage(websocket.TextMessage, []byte(`{"type":0,"data":{}}`)); err != nil {
		t.Fatalf("Server write failed: %v", err)
	}
	select {
	case data := <-received:
		if string(data) != `{"type":0,"data":{}}` {
			t.Errorf("Unexpected delivery: %s", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Delivery callback never fired")
	}
}

func TestSendNotConnected(t *testing.T) {
	c := New("/")
	if err := c.Send([]byte("x")); err != ErrNotConnected {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}

func TestDoubleConnect(t *testing.T) {
	host, port, conns := startTestServer(t)

	c := New("/")
	if err := c.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()
	server := <-conns
	defer server.Close()

	if err := c.Connect(host, port); err != ErrAlreadyConnected {
		t.Errorf("Expected ErrAlreadyConnected, got %v", err)
	}
}

func TestServerCloseMarksDisconnected(t *testing.T) {
	host, port, conns := startTestServer(t)

	c := New("/")
	if err := c.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	server := <-conns
	server.Close()

	deadline := time.Now().Add(2 * time.Second)
	for c.IsConnected() {
		if time.Now().After(deadline) {
			t.Fatal("Transport never noticed the closed connection")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
