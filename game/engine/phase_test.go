package engine

import "testing"

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name  string
		from  Phase
		event Event
		want  Phase
		legal bool
	}{
		{"landing room created", PhaseLanding, EventRoomCreated, PhaseWaiting, true},
		{"landing room joined", PhaseLanding, EventRoomJoined, PhaseWaiting, true},
		{"waiting game start", PhaseWaiting, EventGameStart, PhasePlaying, true},
		{"playing round start re-entrant", PhasePlaying, EventRoundStart, PhasePlaying, true},
		{"playing game end", PhasePlaying, EventGameEnd, PhaseEnded, true},
		{"ended return home", PhaseEnded, EventReturnHome, PhaseLanding, true},

		{"landing game start illegal", PhaseLanding, EventGameStart, PhaseLanding, false},
		{"waiting round start illegal", PhaseWaiting, EventRoundStart, PhaseWaiting, false},
		{"waiting return home illegal", PhaseWaiting, EventReturnHome, PhaseWaiting, false},
		{"playing room joined illegal", PhasePlaying, EventRoomJoined, PhasePlaying, false},
		{"ended game start illegal", PhaseEnded, EventGameStart, PhaseEnded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.from.Next(tt.event)
			if ok != tt.legal {
				t.Fatalf("Expected legal=%v, got %v", tt.legal, ok)
			}
			if ok && next != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, next)
			}
		})
	}
}

func TestEngineIgnoresInvalidTransition(t *testing.T) {
	e := New()
	if e.Transition(EventGameStart) {
		t.Error("GameStart from Landing must be rejected")
	}
	if e.Phase() != PhaseLanding {
		t.Errorf("Phase must stay Landing, got %v", e.Phase())
	}
}

func TestParsePhaseLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Phase
		ok    bool
	}{
		{"WAITING", PhaseWaiting, true},
		{"PLAYING", PhasePlaying, true},
		{"ENDED", PhaseEnded, true},
		{"LOBBY", PhaseLanding, false},
		{"", PhaseLanding, false},
	}

	for _, tt := range tests {
		got, ok := ParsePhaseLabel(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePhaseLabel(%q) = (%v, %v), want (%v, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}
