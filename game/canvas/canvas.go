package canvas

// Default canvas dimensions, shared with the server's stroke bounds.
const (
	DefaultWidth  = 700
	DefaultHeight = 500
)

// DefaultThickness is the fixed brush width for locally drawn strokes.
const DefaultThickness = 5

// Color is an RGB palette entry.
type Color struct {
	R, G, B uint8
}

// Palette is the shared drawing palette. Stroke messages carry an index
// into this table, never raw color values.
var Palette = [10]Color{
	{0, 0, 0},       // black
	{255, 255, 255}, // white
	{255, 0, 0},     // red
	{0, 255, 0},     // green
	{0, 0, 255},     // blue
	{255, 255, 0},   // yellow
	{255, 165, 0},   // orange
	{128, 0, 128},   // purple
	{255, 192, 203}, // pink
	{139, 69, 19},   // brown
}

// PaletteColor returns the palette entry for an index, clamping anything
// out of range to black.
func PaletteColor(index int) Color {
	if index < 0 || index >= len(Palette) {
		return Palette[0]
	}
	return Palette[index]
}

// Segment is one incremental line of freehand drawing in canvas-local
// coordinates.
type Segment struct {
	X1, Y1    float64
	X2, Y2    float64
	Color     int
	Thickness int
}

// Surface is the shared drawing surface. It is not internally locked; the
// client serializes all access under its state mutex.
type Surface struct {
	width    float64
	height   float64
	segments []Segment
}

// New returns an empty surface with the given bounds.
func New(width, height float64) *Surface {
	return &Surface{width: width, height: height}
}

// Apply appends one segment in arrival order.
func (s *Surface) Apply(seg Segment) {
	s.segments = append(s.segments, seg)
}

// Clear wipes the surface.
func (s *Surface) Clear() {
	s.segments = nil
}

// Segments returns a copy of the applied segments, oldest first.
func (s *Surface) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of applied segments.
func (s *Surface) Len() int {
	return len(s.segments)
}

// Contains reports whether a canvas-local point is inside the surface.
func (s *Surface) Contains(x, y float64) bool {
	return x >= 0 && x <= s.width && y >= 0 && y <= s.height
}

// Size returns the surface bounds.
func (s *Surface) Size() (width, height float64) {
	return s.width, s.height
}
