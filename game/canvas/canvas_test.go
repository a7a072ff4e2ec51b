package canvas

import "testing"

func TestApplyPreservesOrder(t *testing.T) {
	s := New(DefaultWidth, DefaultHeight)

	s.Apply(Segment{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: 1, Thickness: 5})
	s.Apply(Segment{X1: 10, Y1: 10, X2: 20, Y2: 5, Color: 2, Thickness: 5})

	segs := s.Segments()
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if segs[0].Color != 1 || segs[1].Color != 2 {
		t.Errorf("Segments out of order: %+v", segs)
	}
}

func TestClear(t *testing.T) {
	s := New(DefaultWidth, DefaultHeight)
	s.Apply(Segment{X2: 1, Y2: 1})
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected empty surface after Clear, got %d segments", s.Len())
	}
}

func TestSegmentsReturnsCopy(t *testing.T) {
	s := New(DefaultWidth, DefaultHeight)
	s.Apply(Segment{Color: 3})

	segs := s.Segments()
	segs[0].Color = 9

	if s.Segments()[0].Color != 3 {
		t.Error("Mutating the returned slice must not affect the surface")
	}
}

func TestContains(t *testing.T) {
	s := New(700, 500)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 350, 250, true},
		{"origin", 0, 0, true},
		{"far corner", 700, 500, true},
		{"left of bounds", -1, 250, false},
		{"below bounds", 350, 501, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPaletteColor(t *testing.T) {
	if got := PaletteColor(2); got != (Color{255, 0, 0}) {
		t.Errorf("Expected red at index 2, got %+v", got)
	}
	if got := PaletteColor(-1); got != (Color{0, 0, 0}) {
		t.Errorf("Expected black for negative index, got %+v", got)
	}
	if got := PaletteColor(10); got != (Color{0, 0, 0}) {
		t.Errorf("Expected black for out-of-range index, got %+v", got)
	}
}
