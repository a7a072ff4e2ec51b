package protocol

import "fmt"

// MsgType identifies a wire message. Values must match the server's
// protocol enumeration exactly.
type MsgType int

// Control messages (reliable channel, 0-31).
const (
	MsgPing            MsgType = 0
	MsgPong            MsgType = 1
	MsgRegister        MsgType = 2
	MsgRegisterAck     MsgType = 3
	MsgJoinRoom        MsgType = 4
	MsgCreateRoom      MsgType = 5
	MsgRoomCreated     MsgType = 6
	MsgRoomJoined      MsgType = 7
	MsgRoomFull        MsgType = 8
	MsgRoomNotFound    MsgType = 9
	MsgGameStart       MsgType = 10
	MsgYourTurn        MsgType = 11
	MsgWordToDraw      MsgType = 12
	MsgRoundStart      MsgType = 13
	MsgChat            MsgType = 14
	MsgChatBroadcast   MsgType = 15
	MsgGuessCorrect    MsgType = 16
	MsgGuessWrong      MsgType = 17
	MsgTimerUpdate     MsgType = 18
	MsgCountdownUpdate MsgType = 19
	MsgRoundEnd        MsgType = 20
	MsgGameEnd         MsgType = 21
	MsgPlayerJoin      MsgType = 22
	MsgPlayerLeave     MsgType = 23
	MsgScoreUpdate     MsgType = 24
	MsgReconnectReq    MsgType = 25
	MsgReconnectOK     MsgType = 26
	MsgReconnectFail   MsgType = 27
	MsgError           MsgType = 28
	MsgDisconnect      MsgType = 29

	// Host control (30+). The client never sends these today.
	MsgHostStartGame  MsgType = 30
	MsgHostKickPlayer MsgType = 31
)

// Stroke messages (loss-tolerant channel, 100+).
const (
	MsgStroke      MsgType = 100
	MsgClearCanvas MsgType = 101
	// MsgUndo is reserved in the enumeration. No handler exists on either
	// side yet; the client decodes and ignores it.
	MsgUndo MsgType = 102
)

var msgTypeNames = map[MsgType]string{
	MsgPing:            "ping",
	MsgPong:            "pong",
	MsgRegister:        "register",
	MsgRegisterAck:     "register_ack",
	MsgJoinRoom:        "join_room",
	MsgCreateRoom:      "create_room",
	MsgRoomCreated:     "room_created",
	MsgRoomJoined:      "room_joined",
	MsgRoomFull:        "room_full",
	MsgRoomNotFound:    "room_not_found",
	MsgGameStart:       "game_start",
	MsgYourTurn:        "your_turn",
	MsgWordToDraw:      "word_to_draw",
	MsgRoundStart:      "round_start",
	MsgChat:            "chat",
	MsgChatBroadcast:   "chat_broadcast",
	MsgGuessCorrect:    "guess_correct",
	MsgGuessWrong:      "guess_wrong",
	MsgTimerUpdate:     "timer_update",
	MsgCountdownUpdate: "countdown_update",
	MsgRoundEnd:        "round_end",
	MsgGameEnd:         "game_end",
	MsgPlayerJoin:      "player_join",
	MsgPlayerLeave:     "player_leave",
	MsgScoreUpdate:     "score_update",
	MsgReconnectReq:    "reconnect_request",
	MsgReconnectOK:     "reconnect_success",
	MsgReconnectFail:   "reconnect_fail",
	MsgError:           "error",
	MsgDisconnect:      "disconnect",
	MsgHostStartGame:   "host_start_game",
	MsgHostKickPlayer:  "host_kick_player",
	MsgStroke:          "stroke",
	MsgClearCanvas:     "clear_canvas",
	MsgUndo:            "undo",
}

// String returns a stable lowercase name for log output. Unknown values
// render as "type(<n>)" so forward-compatible drops stay readable in logs.
func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}
