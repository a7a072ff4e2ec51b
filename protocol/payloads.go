package protocol

import "encoding/json"

// Player is a roster entry as sent by the server. The roster order is the
// server's order and is preserved everywhere on the client.
type Player struct {
	PlayerID  int    `json:"player_id"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	IsDrawing bool   `json:"is_drawing"`
	Online    bool   `json:"online"`
}

// UnmarshalJSON defaults Online to true when the server omits the field.
// Only reconnection-aware payloads bother to send it.
func (p *Player) UnmarshalJSON(data []byte) error {
	type alias Player
	aux := struct {
		Online *bool `json:"online"`
		*alias
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Online = aux.Online == nil || *aux.Online
	return nil
}

// Register / RegisterAck (2/3)

type RegisterPayload struct {
	Username string `json:"username"`
}

type RegisterAckPayload struct {
	PlayerID     int    `json:"player_id"`
	SessionToken string `json:"session_token"`
	Username     string `json:"username,omitempty"`
}

// JoinRoom (4). RoomID 0 means quick-match; a 6-character RoomCode targets a
// private room. Exactly one of the two is meaningful per request.
type JoinRoomPayload struct {
	RoomID   int    `json:"room_id,omitempty"`
	RoomCode string `json:"room_code,omitempty"`
}

// RoomCreated / RoomJoined (6/7)

type RoomCreatedPayload struct {
	RoomID   int    `json:"room_id"`
	RoomCode string `json:"room_code"`
}

type RoomJoinedPayload struct {
	RoomID   int      `json:"room_id"`
	RoomCode string   `json:"room_code"`
	Players  []Player `json:"players"`
}

// GameStart / RoundStart (10/13). Word is present only when the recipient is
// the round's drawer; everyone else sees only the mask.
type RoundStartPayload struct {
	Round       int      `json:"round"`
	TotalRounds int      `json:"total_rounds"`
	WordMask    string   `json:"word_mask"`
	Word        string   `json:"word,omitempty"`
	Players     []Player `json:"players"`
}

// WordToDraw (12)
type WordToDrawPayload struct {
	Word string `json:"word"`
}

// Chat / ChatBroadcast (14/15)
type ChatPayload struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

// GuessCorrect (16). Score is a delta to add to the player's total.
type GuessCorrectPayload struct {
	PlayerID int    `json:"player_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// TimerUpdate / CountdownUpdate (18/19)

type TimerUpdatePayload struct {
	TimeRemaining int `json:"time_remaining"`
}

type CountdownUpdatePayload struct {
	Countdown int `json:"countdown"`
}

// RoundEnd / GameEnd (20/21)

type RoundEndPayload struct {
	Word    string   `json:"word"`
	Players []Player `json:"players"`
}

type GameEndPayload struct {
	Players []Player `json:"players"`
}

// PlayerJoin / PlayerLeave (22/23)

type PlayerJoinPayload struct {
	Player *Player `json:"player"`
}

type PlayerLeavePayload struct {
	PlayerID int    `json:"player_id"`
	Username string `json:"username"`
}

// ScoreUpdate (24). Score is the player's new absolute total.
type ScoreUpdatePayload struct {
	PlayerID int `json:"player_id"`
	Score    int `json:"score"`
}

// Reconnect handshake (25-27). ReconnectOKPayload.State carries the server's
// room phase label ("WAITING"/"PLAYING") for restoring the local phase.
type ReconnectRequestPayload struct {
	SessionToken string `json:"session_token"`
}

type ReconnectOKPayload struct {
	RoomID   int      `json:"room_id,omitempty"`
	RoomCode string   `json:"room_code,omitempty"`
	Players  []Player `json:"players,omitempty"`
	State    string   `json:"state,omitempty"`
}

type ReconnectFailPayload struct {
	Error string `json:"error"`
}

// Error (28)
type ErrorPayload struct {
	Message string `json:"message"`
}

// Stroke (100). Coordinates are canvas-local. Thickness defaults to 3 when
// the sender omits it.
type StrokePayload struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Color     int     `json:"color"`
	Thickness int     `json:"thickness"`
}

// UnmarshalJSON applies the thickness default.
func (s *StrokePayload) UnmarshalJSON(data []byte) error {
	type alias StrokePayload
	aux := struct {
		Thickness *int `json:"thickness"`
		*alias
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Thickness == nil {
		s.Thickness = 3
	} else {
		s.Thickness = *aux.Thickness
	}
	return nil
}
