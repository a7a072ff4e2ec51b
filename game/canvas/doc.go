// Package canvas holds the shared drawing model: an ordered list of stroke
// segments plus the fixed 10-color palette. The package stores geometry
// only; turning segments into pixels belongs to the rendering layer.
//
// Segments are applied in arrival order with no reconciliation. Losing a
// segment from the loss-tolerant channel leaves a visual gap, nothing more,
// so the only destructive operation is a full Clear.
package canvas
