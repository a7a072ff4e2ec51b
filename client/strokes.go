package client

import (
	"github.com/KazooBoye/Scribble/game/canvas"
	"github.com/KazooBoye/Scribble/protocol"
)

// SetColor selects the brush color for subsequent strokes. Out-of-range
// indices clamp to black.
func (c *Client) SetColor(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(canvas.Palette) {
		index = 0
	}
	c.colorIndex = index
}

// Color returns the selected palette index.
func (c *Client) Color() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colorIndex
}

// PointerDown begins a stroke at a canvas-local point. Nothing is drawn
// or sent until the pointer moves.
func (c *Client) PointerDown(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.canDrawLocked(x, y) {
		return
	}
	c.drawing = true
	c.lastX, c.lastY = x, y
}

// PointerMove extends the active stroke. Each movement produces exactly
// one segment: applied locally for immediate feedback and sent to the
// server for broadcast.
func (c *Client) PointerMove(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.drawing {
		return
	}
	if !c.canDrawLocked(x, y) {
		// The pointer left the canvas mid-stroke; end the stroke rather
		// than drawing a line to an out-of-bounds point.
		c.drawing = false
		return
	}

	seg := canvas.Segment{
		X1: c.lastX, Y1: c.lastY,
		X2: x, Y2: y,
		Color:     c.colorIndex,
		Thickness: canvas.DefaultThickness,
	}
	c.engine.Canvas().Apply(seg)
	c.sendLocked(protocol.MsgStroke, protocol.StrokePayload{
		X1: seg.X1, Y1: seg.Y1,
		X2: seg.X2, Y2: seg.Y2,
		Color:     seg.Color,
		Thickness: seg.Thickness,
	})
	c.lastX, c.lastY = x, y
}

// PointerUp ends the active stroke.
func (c *Client) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawing = false
}

// canDrawLocked gates stroke input: only the current drawer may draw,
// only while the canvas is enabled, and only inside its bounds.
func (c *Client) canDrawLocked(x, y float64) bool {
	if !c.connected {
		return false
	}
	if !c.engine.IsDrawer() || !c.engine.CanvasEnabled() {
		return false
	}
	return c.engine.Canvas().Contains(x, y)
}
