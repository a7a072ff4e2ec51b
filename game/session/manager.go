package session

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/protocol"
)

var (
	ErrNotRegistered = errors.New("not registered with the server")
	ErrNoStore       = errors.New("no token store configured")
)

// Session is the client's identity and room membership. RoomID and
// RoomCode are set only while the client is in a room; the zero values
// mean "no room".
type Session struct {
	PlayerID int    `json:"player_id"`
	Username string `json:"username"`
	Token    string `json:"session_token"`
	RoomID   int    `json:"room_id"`
	RoomCode string `json:"room_code"`
}

// Manager tracks the session through the registration and room handshakes.
type Manager struct {
	s     Session
	store *TokenStore
	log   zerolog.Logger
}

// NewManager returns a manager with no identity.
func NewManager() *Manager {
	return &Manager{log: logger.New("session")}
}

// NewManagerWithStore returns a manager that persists identity through the
// given token store.
func NewManagerWithStore(store *TokenStore) *Manager {
	return &Manager{store: store, log: logger.New("session")}
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session { return m.s }

// Registered reports whether a RegisterAck has been applied and the token
// is still valid.
func (m *Manager) Registered() bool { return m.s.Token != "" }

// SelfID returns the local player id. Only meaningful once Registered.
func (m *Manager) SelfID() int { return m.s.PlayerID }

// Token returns the session token, empty until RegisterAck.
func (m *Manager) Token() string { return m.s.Token }

// RoomCode returns the current room's code, empty outside a room.
func (m *Manager) RoomCode() string { return m.s.RoomCode }

// InRoom reports whether the client currently belongs to a room.
func (m *Manager) InRoom() bool { return m.s.RoomID != 0 }

// SetUsername records the name the user registered with.
func (m *Manager) SetUsername(name string) { m.s.Username = name }

// Username returns the registered display name.
func (m *Manager) Username() string { return m.s.Username }

// ApplyRegisterAck installs the server-issued identity. The ack may echo a
// normalized username; when it does, the echo wins.
func (m *Manager) ApplyRegisterAck(p protocol.RegisterAckPayload) {
	m.s.PlayerID = p.PlayerID
	m.s.Token = p.SessionToken
	if p.Username != "" {
		m.s.Username = p.Username
	}
	m.log.Info().Int("player_id", p.PlayerID).Str("username", m.s.Username).Msg("registered")

	if m.store != nil {
		if err := m.store.Save(m.s); err != nil {
			m.log.Warn().Err(err).Msg("persist session token")
		}
	}
}

// SetRoom records room membership from RoomCreated, RoomJoined, or
// ReconnectSuccess.
func (m *Manager) SetRoom(roomID int, roomCode string) {
	m.s.RoomID = roomID
	m.s.RoomCode = roomCode
}

// ClearRoom drops room membership. Identity is untouched.
func (m *Manager) ClearRoom() {
	m.s.RoomID = 0
	m.s.RoomCode = ""
}

// Invalidate clears the session token after a failed reconnect. The next
// play requires a fresh registration.
func (m *Manager) Invalidate() {
	m.s.Token = ""
	m.s.PlayerID = 0
	m.ClearRoom()
	m.log.Info().Msg("session token invalidated")

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("clear persisted session token")
		}
	}
}

// Restore loads a previously persisted identity, if any. Returns
// ErrNoStore when no store is configured and ErrNotRegistered when the
// store holds nothing usable.
func (m *Manager) Restore() error {
	if m.store == nil {
		return ErrNoStore
	}
	s, err := m.store.Load()
	if err != nil {
		return err
	}
	if s.Token == "" {
		return ErrNotRegistered
	}
	m.s.PlayerID = s.PlayerID
	m.s.Username = s.Username
	m.s.Token = s.Token
	m.log.Info().Int("player_id", s.PlayerID).Msg("restored persisted session")
	return nil
}
