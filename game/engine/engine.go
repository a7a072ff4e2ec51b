package engine

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/KazooBoye/Scribble/game/canvas"
	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/protocol"
)

// MaxChatLog bounds the chat log; appending past it evicts the oldest
// entry first.
const MaxChatLog = 50

const defaultWordMask = "_ _ _ _"

// Engine folds server messages and user actions into the client's view of
// the game. See the package comment for the concurrency contract.
type Engine struct {
	phase   Phase
	players []protocol.Player

	round       int
	totalRounds int
	wordMask    string
	wordToDraw  string

	isDrawer      bool
	canvasEnabled bool

	timer     int
	countdown int

	chat   []string
	canvas *canvas.Surface

	log zerolog.Logger
}

// New returns an engine in the landing phase with an empty canvas.
func New() *Engine {
	return &Engine{
		phase:    PhaseLanding,
		wordMask: defaultWordMask,
		canvas:   canvas.New(canvas.DefaultWidth, canvas.DefaultHeight),
		log:      logger.New("engine"),
	}
}

// Transition applies an event to the phase machine. Illegal transitions
// are logged and ignored.
func (e *Engine) Transition(ev Event) bool {
	next, ok := e.phase.Next(ev)
	if !ok {
		e.log.Debug().Stringer("phase", e.phase).Stringer("event", ev).Msg("ignoring invalid transition")
		return false
	}
	e.phase = next
	return true
}

// Accessors. Slice-returning ones copy so the render layer can hold the
// result across ticks.

func (e *Engine) Phase() Phase            { return e.phase }
func (e *Engine) Round() int              { return e.round }
func (e *Engine) TotalRounds() int        { return e.totalRounds }
func (e *Engine) WordMask() string        { return e.wordMask }
func (e *Engine) WordToDraw() string      { return e.wordToDraw }
func (e *Engine) IsDrawer() bool          { return e.isDrawer }
func (e *Engine) CanvasEnabled() bool     { return e.canvasEnabled }
func (e *Engine) Timer() int              { return e.timer }
func (e *Engine) Countdown() int          { return e.countdown }
func (e *Engine) Canvas() *canvas.Surface { return e.canvas }

func (e *Engine) Players() []protocol.Player {
	out := make([]protocol.Player, len(e.players))
	copy(out, e.players)
	return out
}

func (e *Engine) Chat() []string {
	out := make([]string, len(e.chat))
	copy(out, e.chat)
	return out
}

// DeriveDrawer reports whether the roster marks selfID as the current
// drawer. This is the single source of truth for drawer status.
func DeriveDrawer(players []protocol.Player, selfID int) bool {
	for _, p := range players {
		if p.PlayerID == selfID && p.IsDrawing {
			return true
		}
	}
	return false
}

// ApplyRoomCreated moves Landing to Waiting for a freshly created room.
func (e *Engine) ApplyRoomCreated() {
	e.Transition(EventRoomCreated)
}

// ApplyRoomJoined moves Landing to Waiting and installs the room roster.
func (e *Engine) ApplyRoomJoined(players []protocol.Player) {
	e.Transition(EventRoomJoined)
	e.players = players
}

// StartRound applies a GameStart or RoundStart payload. Both reset the
// round surface: clear the canvas, forget the previous word, rebuild the
// roster, and re-derive drawer status for selfID. The secret word is taken
// from the payload only when present; the server omits it for guessers and
// the client never reconstructs it from the mask.
func (e *Engine) StartRound(p protocol.RoundStartPayload, selfID int, gameStart bool) {
	if gameStart {
		e.Transition(EventGameStart)
		e.countdown = 0
	} else {
		e.Transition(EventRoundStart)
	}

	e.round = p.Round
	e.totalRounds = p.TotalRounds
	if p.WordMask != "" {
		e.wordMask = p.WordMask
	} else {
		e.wordMask = defaultWordMask
	}
	if p.Players != nil {
		e.players = p.Players
	}

	e.canvas.Clear()
	e.wordToDraw = ""
	e.isDrawer = DeriveDrawer(e.players, selfID)
	e.canvasEnabled = e.isDrawer
	if e.isDrawer {
		e.wordToDraw = p.Word
	}

	e.log.Info().
		Int("round", e.round).
		Int("total_rounds", e.totalRounds).
		Bool("is_drawer", e.isDrawer).
		Msg("round started")
}

// GrantTurn marks the local player as the drawer outside the roster-scan
// path (YourTurn message).
func (e *Engine) GrantTurn() {
	e.isDrawer = true
	e.canvasEnabled = true
}

// SetWordToDraw installs the secret word delivered by a dedicated
// WordToDraw message and enables the canvas.
func (e *Engine) SetWordToDraw(word string) {
	e.wordToDraw = word
	e.canvasEnabled = true
}

// EndRound reveals the round's word in the chat log, strips drawer status,
// and refreshes the roster when the payload carries one.
func (e *Engine) EndRound(word string, players []protocol.Player) {
	if players != nil {
		e.players = players
	}
	e.AppendSystem(fmt.Sprintf("Round ended! Word: %s", word))
	e.wordToDraw = ""
	e.isDrawer = false
	e.canvasEnabled = false
}

// EndGame moves to Ended and sorts the final roster by score, descending.
// The sort is stable so tied players keep the server-given order.
func (e *Engine) EndGame(players []protocol.Player) {
	e.Transition(EventGameEnd)
	if players != nil {
		e.players = players
	}
	sort.SliceStable(e.players, func(i, j int) bool {
		return e.players[i].Score > e.players[j].Score
	})
	e.canvasEnabled = false
	e.isDrawer = false
}

// ApplyGuessCorrect adds a score delta to the matching roster entry.
func (e *Engine) ApplyGuessCorrect(playerID, delta int) {
	for i := range e.players {
		if e.players[i].PlayerID == playerID {
			e.players[i].Score += delta
			return
		}
	}
}

// ApplyScoreUpdate overwrites the matching roster entry's score with an
// absolute value.
func (e *Engine) ApplyScoreUpdate(playerID, score int) {
	for i := range e.players {
		if e.players[i].PlayerID == playerID {
			e.players[i].Score = score
			return
		}
	}
}

// ApplyPlayerJoin appends a player to the roster and notes it in chat.
func (e *Engine) ApplyPlayerJoin(p protocol.Player) {
	e.players = append(e.players, p)
	e.AppendSystem(fmt.Sprintf("%s joined", p.Username))
}

// ApplyPlayerLeave removes a player from the roster and notes it in chat.
func (e *Engine) ApplyPlayerLeave(playerID int, username string) {
	kept := e.players[:0]
	for _, p := range e.players {
		if p.PlayerID != playerID {
			kept = append(kept, p)
		}
	}
	e.players = kept
	e.AppendSystem(fmt.Sprintf("%s left", username))
}

// SetPlayers replaces the roster wholesale (reconnect restore).
func (e *Engine) SetPlayers(players []protocol.Player) {
	e.players = players
}

// RestorePhase forces the phase from a server room-state label after a
// successful reconnect. This bypasses the transition table on purpose: the
// server is authoritative about where the room already is.
func (e *Engine) RestorePhase(label string) {
	if phase, ok := ParsePhaseLabel(label); ok {
		e.phase = phase
	}
}

// AppendChat records a player chat line, evicting the oldest line once the
// log is full.
func (e *Engine) AppendChat(username, message string) {
	e.appendLine(fmt.Sprintf("%s: %s", username, message))
}

// AppendSystem records a system notice. The "* " prefix is what the render
// layer keys dimmed styling off.
func (e *Engine) AppendSystem(message string) {
	e.appendLine("* " + message)
}

func (e *Engine) appendLine(line string) {
	e.chat = append(e.chat, line)
	if len(e.chat) > MaxChatLog {
		e.chat = e.chat[len(e.chat)-MaxChatLog:]
	}
}

// AbortToLanding returns to the landing phase without dropping the chat
// log. Used when a join attempt is rejected before a room was entered, so
// the rejection notice stays visible.
func (e *Engine) AbortToLanding() {
	e.phase = PhaseLanding
}

// SetTimer records the round's remaining seconds.
func (e *Engine) SetTimer(seconds int) { e.timer = seconds }

// SetCountdown records the pre-round countdown.
func (e *Engine) SetCountdown(seconds int) { e.countdown = seconds }

// ResetToLanding drops all room-scoped state and returns to the landing
// phase: roster, chat log, round info, canvas, and drawer status. Used for
// the user's return-home action and for forced fallbacks (room rejections,
// failed reconnects). The server is not notified.
func (e *Engine) ResetToLanding() {
	e.phase = PhaseLanding
	e.players = nil
	e.chat = nil
	e.round = 0
	e.totalRounds = 0
	e.wordMask = defaultWordMask
	e.wordToDraw = ""
	e.isDrawer = false
	e.canvasEnabled = false
	e.timer = 0
	e.countdown = 0
	e.canvas.Clear()
}
