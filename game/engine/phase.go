package engine

// Phase is the client's position in the game lifecycle.
type Phase int

const (
	PhaseLanding Phase = iota
	PhaseWaiting
	PhasePlaying
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLanding:
		return "landing"
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is something that may move the phase machine: an inbound message
// or an explicit user action.
type Event int

const (
	EventRoomCreated Event = iota
	EventRoomJoined
	EventGameStart
	EventRoundStart
	EventGameEnd
	EventReturnHome
)

func (e Event) String() string {
	switch e {
	case EventRoomCreated:
		return "room_created"
	case EventRoomJoined:
		return "room_joined"
	case EventGameStart:
		return "game_start"
	case EventRoundStart:
		return "round_start"
	case EventGameEnd:
		return "game_end"
	case EventReturnHome:
		return "return_home"
	default:
		return "unknown"
	}
}

// transitions is the complete from-phase x event table. Anything absent is
// an invalid transition and leaves the phase untouched.
var transitions = map[Phase]map[Event]Phase{
	PhaseLanding: {
		EventRoomCreated: PhaseWaiting,
		EventRoomJoined:  PhaseWaiting,
	},
	PhaseWaiting: {
		EventGameStart: PhasePlaying,
	},
	PhasePlaying: {
		EventRoundStart: PhasePlaying, // re-entrant, next round of the same game
		EventGameEnd:    PhaseEnded,
	},
	PhaseEnded: {
		EventReturnHome: PhaseLanding,
	},
}

// Next returns the phase reached from p by ev and whether the transition
// is legal.
func (p Phase) Next(ev Event) (Phase, bool) {
	next, ok := transitions[p][ev]
	return next, ok
}

// ParsePhaseLabel maps a server-sent room state label to a local phase.
// The server only ever reports rooms as waiting, playing, or ended.
func ParsePhaseLabel(label string) (Phase, bool) {
	switch label {
	case "WAITING":
		return PhaseWaiting, true
	case "PLAYING":
		return PhasePlaying, true
	case "ENDED":
		return PhaseEnded, true
	default:
		return PhaseLanding, false
	}
}
